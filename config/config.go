package config

import (
	"log"
	"os"

	"canteen-queue-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "smartqueue_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// RedisAddr is the optional remote mirror; empty disables mirroring.
func RedisAddr() string { return os.Getenv("REDIS_ADDR") }

// NATSURL is the optional cross-instance change bridge; empty disables it.
func NATSURL() string { return os.Getenv("NATS_URL") }

// Razorpay credentials for the payment-gateway proxy.
func RazorpayKeyID() string     { return os.Getenv("RAZORPAY_KEY_ID") }
func RazorpayKeySecret() string { return os.Getenv("RAZORPAY_KEY_SECRET") }

// GeminiAPIKey enables AI insights; empty means fallback text only.
func GeminiAPIKey() string { return os.Getenv("GEMINI_API_KEY") }

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "smartqueue.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Canteen{},
		&models.Token{},
		&models.HistoryEntry{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}
