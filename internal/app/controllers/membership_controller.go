package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/app/services"
	"github.com/ejmancilla/sigms/internal/middleware"
)

// MembershipController handles application and member endpoints
type MembershipController struct {
	membershipService *services.MembershipService
	logger            zerolog.Logger
}

// NewMembershipController creates a new MembershipController
func NewMembershipController(membershipService *services.MembershipService, logger zerolog.Logger) *MembershipController {
	return &MembershipController{
		membershipService: membershipService,
		logger:            logger,
	}
}

// Register files a pending membership application. Public; no auto-login.
func (c *MembershipController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	if err := c.membershipService.Register(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse{
		Message: "Application submitted and awaiting approval",
	})
}

// Transition applies approve/reject/reconsider to an application.
func (c *MembershipController) Transition(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	actor := middleware.CurrentAccount(ctx)
	if err := c.membershipService.Transition(ctx.Request.Context(), actor, id, req.Action); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Application " + req.Action + "d"})
}

// DeleteApplication removes a rejected application.
func (c *MembershipController) DeleteApplication(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	actor := middleware.CurrentAccount(ctx)
	if err := c.membershipService.DeleteApplication(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Application deleted"})
}

// ListMembers returns the visible members, narrowed by query filters.
func (c *MembershipController) ListMembers(ctx *gin.Context) {
	var query dto.MemberListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	actor := middleware.CurrentAccount(ctx)
	members, err := c.membershipService.ListMembers(ctx.Request.Context(), actor, &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.MemberListResponse{Members: make([]dto.AccountResponse, 0, len(members)), Total: len(members)}
	for _, m := range members {
		resp.Members = append(resp.Members, dto.ToAccountResponse(m))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp))
}

// ReviewQueue returns the actor's group applications in a given status,
// newest first. Defaults to pending.
func (c *MembershipController) ReviewQueue(ctx *gin.Context) {
	statusStr := ctx.DefaultQuery("status", string(models.StatusPending))
	status, err := models.ParseMembershipStatus(statusStr)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	actor := middleware.CurrentAccount(ctx)
	applications, err := c.membershipService.ReviewQueue(ctx.Request.Context(), actor, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(toAccountResponses(applications)))
}

// PendingApplications returns every pending application system-wide.
// Read-only: no decision endpoint exists at this scope.
func (c *MembershipController) PendingApplications(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	applications, err := c.membershipService.PendingApplications(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(toAccountResponses(applications)))
}

// FilterOptions returns the distinct values available for member filters.
func (c *MembershipController) FilterOptions(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	options, err := c.membershipService.FilterOptions(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(options))
}

// Profile returns the authenticated account.
func (c *MembershipController) Profile(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.ToAccountResponse(actor)))
}

// UpdateProfile applies a self-service profile edit.
func (c *MembershipController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	actor := middleware.CurrentAccount(ctx)
	if err := c.membershipService.UpdateProfile(ctx.Request.Context(), actor, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Profile updated"})
}

func toAccountResponses(accounts []*models.Account) []dto.AccountResponse {
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.ToAccountResponse(a))
	}
	return out
}

// pathID parses the :id path parameter, responding 400 itself on failure.
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "ID must be a number"))
		return 0, false
	}
	return id, true
}
