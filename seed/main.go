package main

import (
	"flag"
	"log"
	"os"

	"github.com/criss159/fauna-kids/model"
	"github.com/criss159/fauna-kids/seed/seeders"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		sqlitePath = flag.String("sqlite", "", "Seed a local SQLite database instead of Postgres")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&model.Achievement{}); err != nil {
		log.Fatalf("Failed to migrate achievements table: %v", err)
	}

	seeder := seeders.NewAchievementSeeder(db)
	if err := seeder.SeedAchievements(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func openDatabase(sqlitePath string) (*gorm.DB, error) {
	config := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if sqlitePath != "" {
		log.Printf("Connecting to SQLite database: %s", sqlitePath)
		return gorm.Open(sqlite.Open(sqlitePath), config)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set, using local SQLite database app.db")
		return gorm.Open(sqlite.Open("app.db"), config)
	}

	return gorm.Open(postgres.Open(dsn), config)
}

func showHelp() {
	log.Println("Seeds the achievement catalog (idempotent, keyed by code).")
	log.Println("")
	log.Println("Usage:")
	log.Println("  seed                   seed the database from DATABASE_URL")
	log.Println("  seed -sqlite app.db    seed a local SQLite database")
}
