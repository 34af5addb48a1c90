package routes

import (
	"canteen-queue-api/handlers"
	"canteen-queue-api/middleware"
	"canteen-queue-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Menu & canteens (students scan a QR, no account needed)
		public.GET("/menu", handlers.GetMenu)
		public.GET("/canteens", handlers.ListCanteens)
		public.POST("/canteens", handlers.RegisterCanteen)
		public.GET("/canteens/:id", handlers.GetCanteen)

		// Token issuance & live queue views
		public.POST("/tokens", handlers.CreateToken)
		public.POST("/orders/online", handlers.CreateOnlineOrder)
		public.GET("/tokens/:id", handlers.GetTokenStatus)
		public.GET("/canteens/:id/position/:tokenId", handlers.GetQueuePosition)
		public.GET("/canteens/:id/queue/campus", handlers.GetCampusQueue)
		public.GET("/canteens/:id/queue/online", handlers.GetOnlineQueue)

		// Payment gateway proxy for the checkout widget
		public.POST("/payments/orders", handlers.CreatePaymentOrder)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Staff routes ───────────────────────────────────────────────
	staff := r.Group("/api/staff")
	staff.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleStaff, models.RoleAdmin))
	{
		staff.GET("/canteens/:id/queue", handlers.GetActiveQueue)
		staff.PUT("/tokens/:tokenId/ready", handlers.MarkOrderReady)
		staff.PUT("/tokens/:tokenId/complete", handlers.CompleteOrder)
		staff.PUT("/tokens/:tokenId/complete-with-annotation", handlers.CompleteOrderWithAnnotation)
		staff.POST("/predict-wait", handlers.PredictWait)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/canteens/:id/stats", handlers.GetStats)
		admin.GET("/canteens/:id/traffic", handlers.GetHourlyTraffic)
		admin.GET("/canteens/:id/summary", handlers.GetTodaysOrderSummary)
		admin.GET("/canteens/:id/insights", handlers.GetQueueInsights)
		admin.GET("/history", handlers.GetHistory)
	}
}
