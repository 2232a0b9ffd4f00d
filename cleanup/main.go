package main

import (
	"log"
	"os"
	"time"

	"github.com/criss159/fauna-kids/model"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Deletes expired guest sessions. The API server runs the same sweep
// hourly; this exists for cron use when the server is down.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	res := db.Where("expires_at < ?", time.Now().UTC()).Delete(&model.GuestSession{})
	if res.Error != nil {
		log.Fatalf("Failed to delete expired guest sessions: %v", res.Error)
	}

	log.Printf("Removed %d expired guest sessions", res.RowsAffected)
}
