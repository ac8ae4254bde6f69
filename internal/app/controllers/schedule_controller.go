package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/app/services"
	"github.com/ejmancilla/sigms/internal/middleware"
)

// ScheduleController handles event and meeting request endpoints
type ScheduleController struct {
	schedulingService *services.SchedulingService
	logger            zerolog.Logger
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(schedulingService *services.SchedulingService, logger zerolog.Logger) *ScheduleController {
	return &ScheduleController{
		schedulingService: schedulingService,
		logger:            logger,
	}
}

// Submit files a pending event or meeting request for the actor's group.
func (c *ScheduleController) Submit(ctx *gin.Context) {
	var req dto.SubmitScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	actor := middleware.CurrentAccount(ctx)
	request, err := c.schedulingService.Submit(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.ToScheduleResponse(request)))
}

// Decide records a superadmin approve or reject with optional feedback.
func (c *ScheduleController) Decide(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.DecideScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	actor := middleware.CurrentAccount(ctx)
	if err := c.schedulingService.Decide(ctx.Request.Context(), actor, id, req.Action, req.Feedback); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Request " + req.Action + "d"})
}

// List returns the schedule requests visible to the actor.
func (c *ScheduleController) List(ctx *gin.Context) {
	var query dto.ScheduleListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	actor := middleware.CurrentAccount(ctx)
	requests, err := c.schedulingService.ListVisible(ctx.Request.Context(), actor, &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(toScheduleList(requests)))
}

// PendingQueue returns all undecided requests for superadmin review.
func (c *ScheduleController) PendingQueue(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	requests, err := c.schedulingService.PendingQueue(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(toScheduleList(requests)))
}

func toScheduleList(requests []*models.ScheduleRequest) dto.ScheduleListResponse {
	resp := dto.ScheduleListResponse{
		Requests: make([]dto.ScheduleResponse, 0, len(requests)),
		Total:    len(requests),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, dto.ToScheduleResponse(r))
	}
	return resp
}
