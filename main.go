package main

import (
	"log"
	"net/http"
	"os"

	"canteen-queue-api/config"
	"canteen-queue-api/engine"
	"canteen-queue-api/events"
	"canteen-queue-api/handlers"
	"canteen-queue-api/insights"
	"canteen-queue-api/payments"
	"canteen-queue-api/routes"
	"canteen-queue-api/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	config.InitDB()

	// Record store: local SQLite is ground truth, Redis mirror is
	// opportunistic and may be absent entirely.
	mirror := store.NewRedisMirror(config.RedisAddr())
	recordStore := store.NewGormStore(config.DB, mirror)

	queue := engine.New(recordStore)
	handlers.Init(
		queue,
		insights.NewClient(config.GeminiAPIKey()),
		payments.NewClient(config.RazorpayKeyID(), config.RazorpayKeySecret()),
	)

	// Optional cross-instance change notifications
	if url := config.NATSURL(); url != "" {
		bridge, err := events.Connect(url, recordStore)
		if err != nil {
			log.Printf("NATS bridge unavailable, running standalone: %v", err)
		} else {
			defer bridge.Close()
			log.Println("✅ NATS change bridge connected")
		}
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Campus Canteen Queue API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍛 Welcome to the Campus Canteen Queue API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"student", "staff", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
