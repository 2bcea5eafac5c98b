package routes

import (
	"time"

	"courtflow/handlers"
	"courtflow/middleware"
	"courtflow/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the HTTP surface.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterCaseRoutes(r, hb)
	RegisterRescheduleRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}

// RegisterUserRoutes registers account registration and push-token upkeep.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.PUT("/fcm-token", middleware.JWTAuthMiddleware(hb.UserRepo), hb.User.UpdateFCMTokenHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterCaseRoutes registers case filing, lookup, the war-room gate and
// juror applications.
func RegisterCaseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cases")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleAttorney, models.RoleAdmin), hb.Case.CreateCaseHandler)
		api.GET("/:id", hb.Case.GetCaseHandler)
		api.GET("/:id/window", hb.Case.CaseWindowHandler)
		api.POST("/:id/applications", middleware.RequireRole(models.RoleJuror), hb.Case.SubmitApplicationHandler)
		api.GET("/:id/applications", middleware.RequireRole(models.RoleAttorney, models.RoleAdmin), hb.Case.ListApplicationsHandler)
	}
}

// RegisterRescheduleRoutes registers both negotiation flows.
func RegisterRescheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reschedule")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/requests", middleware.RequireRole(models.RoleAttorney), hb.Reschedule.CreateRequestHandler)
		api.POST("/requests/:id/approve", middleware.RequireRole(models.RoleAdmin), hb.Reschedule.ApproveRequestHandler)
		api.POST("/requests/:id/reject", middleware.RequireRole(models.RoleAdmin), hb.Reschedule.RejectRequestHandler)
		api.POST("/proposals", middleware.RequireRole(models.RoleAdmin), hb.Reschedule.ProposeSlotsHandler)
		api.POST("/proposals/confirm", middleware.RequireRole(models.RoleAttorney), hb.Reschedule.ConfirmSlotHandler)
		api.POST("/proposals/withdraw", middleware.RequireRole(models.RoleAdmin), hb.Reschedule.WithdrawProposalHandler)
	}
}

// RegisterAdminRoutes registers operational endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.Use(middleware.RequireRole(models.RoleAdmin))
		api.POST("/reminders/tick", hb.Admin.TickHandler)
	}
}
