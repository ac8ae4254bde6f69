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

// DashboardController serves the per-role landing view
type DashboardController struct {
	dashboardService *services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Dashboard dispatches on the authenticated account's role.
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)

	var (
		board interface{}
		err   error
	)
	switch actor.Role {
	case models.RoleStudent:
		board, err = c.dashboardService.StudentDashboard(ctx.Request.Context(), actor)
	case models.RoleAdmin:
		board, err = c.dashboardService.AdminDashboard(ctx.Request.Context(), actor)
	case models.RoleSuperadmin:
		board, err = c.dashboardService.SuperadminDashboard(ctx.Request.Context(), actor)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(board))
}
