package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ejmancilla/sigms/internal/app/controllers"
	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	membershipController *controllers.MembershipController,
	scheduleController *controllers.ScheduleController,
	rosterController *controllers.RosterController,
	reportController *controllers.ReportController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public routes: login and self-service application.
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/register", membershipController.Register)
	}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/dashboard", dashboardController.Dashboard)
		authenticated.GET("/profile", membershipController.Profile)
		authenticated.PUT("/profile", membershipController.UpdateProfile)
		authenticated.POST("/auth/change-password", authController.ChangePassword)

		// Role-scoped reads: the services narrow results further.
		authenticated.GET("/members", membershipController.ListMembers)
		authenticated.GET("/members/filters", membershipController.FilterOptions)
		authenticated.GET("/schedules", scheduleController.List)
		authenticated.GET("/officers", rosterController.List)

		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/applications", membershipController.ReviewQueue)
			admin.POST("/applications/:id/transition", membershipController.Transition)
			admin.DELETE("/applications/:id", membershipController.DeleteApplication)

			admin.POST("/schedules", scheduleController.Submit)
			admin.PUT("/officers", rosterController.Replace)

			adminReports := admin.Group("/reports")
			{
				adminReports.GET("/members", reportController.MemberList)
				adminReports.GET("/officers", reportController.OfficersList)
				adminReports.GET("/events", reportController.EventsReport)
				adminReports.GET("/statistics", reportController.StatisticsReport)
			}
		}

		superadmin := authenticated.Group("")
		superadmin.Use(authMiddleware.RoleRequired(models.RoleSuperadmin))
		{
			superadmin.GET("/applications/all", membershipController.PendingApplications)
			superadmin.GET("/schedules/pending", scheduleController.PendingQueue)
			superadmin.POST("/schedules/:id/decide", scheduleController.Decide)

			superadminReports := superadmin.Group("/reports")
			{
				superadminReports.GET("/member-database", reportController.MemberDatabase)
				superadminReports.GET("/all-events", reportController.AllEvents)
				superadminReports.GET("/sig-comparison", reportController.ComparativeStatistics)
				superadminReports.GET("/system", reportController.SystemReport)
			}
		}
	}
}
