package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/app/reports"
	"github.com/ejmancilla/sigms/internal/app/services"
	"github.com/ejmancilla/sigms/internal/middleware"
)

// ReportController handles report generation and download endpoints
type ReportController struct {
	reportService *services.ReportService
	renderer      reports.Renderer
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, renderer reports.Renderer, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		renderer:      renderer,
		logger:        logger,
	}
}

// MemberList serves the filterable member listing for the actor's group.
func (c *ReportController) MemberList(ctx *gin.Context) {
	var query dto.MemberListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}
	actor := middleware.CurrentAccount(ctx)
	c.respond(ctx, func() (*reports.Bundle, error) {
		return c.reportService.MemberList(ctx.Request.Context(), actor, &query)
	}, "member-list")
}

// OfficersList serves the officer roster report.
func (c *ReportController) OfficersList(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	c.respond(ctx, func() (*reports.Bundle, error) {
		return c.reportService.OfficersList(ctx.Request.Context(), actor)
	}, "officers")
}

// EventsReport serves the group schedule report.
func (c *ReportController) EventsReport(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	c.respond(ctx, func() (*reports.Bundle, error) {
		return c.reportService.EventsReport(ctx.Request.Context(), actor)
	}, "events")
}

// StatisticsReport serves the group statistics report.
func (c *ReportController) StatisticsReport(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	c.respond(ctx, func() (*reports.Bundle, error) {
		return c.reportService.StatisticsReport(ctx.Request.Context(), actor)
	}, "statistics")
}

// MemberDatabase serves the system-wide member database report.
func (c *ReportController) MemberDatabase(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	c.respond(ctx, func() (*reports.Bundle, error) {
		return c.reportService.CompleteMemberDatabase(ctx.Request.Context(), actor)
	}, "member-database")
}

// AllEvents serves the system-wide schedule report.
func (c *ReportController) AllEvents(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	c.respond(ctx, func() (*reports.Bundle, error) {
		return c.reportService.AllEvents(ctx.Request.Context(), actor)
	}, "all-events")
}

// ComparativeStatistics serves the per-group comparison report.
func (c *ReportController) ComparativeStatistics(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	c.respond(ctx, func() (*reports.Bundle, error) {
		return c.reportService.ComparativeStatistics(ctx.Request.Context(), actor)
	}, "sig-comparison")
}

// SystemReport serves the executive overview report.
func (c *ReportController) SystemReport(ctx *gin.Context) {
	actor := middleware.CurrentAccount(ctx)
	c.respond(ctx, func() (*reports.Bundle, error) {
		return c.reportService.SystemReport(ctx.Request.Context(), actor)
	}, "system-report")
}

// respond builds the bundle and either returns it as JSON
// (?format=json) or streams the rendered document as a download.
func (c *ReportController) respond(ctx *gin.Context, build func() (*reports.Bundle, error), filename string) {
	bundle, err := build()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if ctx.Query("format") == "json" {
		ctx.JSON(http.StatusOK, dto.NewStructuredResponse(bundle))
		return
	}

	data, contentType, err := c.renderer.Render(bundle)
	if err != nil {
		c.logger.Error().Err(err).Str("report", filename).Msg("Report rendering failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	disposition := fmt.Sprintf("attachment; filename=%s-%s.%s",
		filename, bundle.GeneratedAt.Format("2006-01-02"), c.renderer.FileExtension())
	ctx.Header("Content-Disposition", disposition)
	ctx.Data(http.StatusOK, contentType, data)
}
