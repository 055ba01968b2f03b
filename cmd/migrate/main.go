package main

import (
	"log"
	"os"

	"linen-chatbot-be/internal/model"
	"linen-chatbot-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Extensions
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	// 4. AutoMigrate
	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&model.ChatInteraction{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Newest-first listing for the admin console
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_chat_interactions_outcome_created ON chat_interactions (outcome, created_at DESC);`).Error; err != nil {
		log.Printf("Warn: Failed to create index: %v", err)
	}

	log.Println("✅ Migration completed")
}
