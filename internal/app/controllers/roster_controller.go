package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/app/services"
	"github.com/ejmancilla/sigms/internal/middleware"
)

// RosterController handles officer roster endpoints
type RosterController struct {
	rosterService *services.RosterService
	logger        zerolog.Logger
}

// NewRosterController creates a new RosterController
func NewRosterController(rosterService *services.RosterService, logger zerolog.Logger) *RosterController {
	return &RosterController{
		rosterService: rosterService,
		logger:        logger,
	}
}

// Replace swaps the actor's group roster for the submitted set.
func (c *RosterController) Replace(ctx *gin.Context) {
	var req dto.ReplaceRosterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	actor := middleware.CurrentAccount(ctx)
	if err := c.rosterService.Replace(ctx.Request.Context(), actor, req.Officers); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Roster updated"})
}

// List returns a group's officer roster.
func (c *RosterController) List(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	group := ctx.Query("group")

	officers, err := c.rosterService.List(ctx.Request.Context(), actor, group)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.RosterResponse{Officers: make([]dto.OfficerResponse, 0, len(officers))}
	for _, o := range officers {
		resp.Group = o.Group
		resp.Officers = append(resp.Officers, dto.ToOfficerResponse(o))
	}
	if resp.Group == "" && actor != nil {
		resp.Group = actor.Group
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp))
}
