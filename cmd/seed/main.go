// cmd/seed/main.go - Seed the database outside the server lifecycle.
package main

import (
	"flag"
	"log"

	"codequest/database"

	"github.com/joho/godotenv"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate all tables before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if *reset {
		log.Println("Dropping existing tables...")
		if err := db.Migrator().DropTable(
			"user_achievements", "learning_sessions", "user_progress",
			"achievements", "topics", "subjects", "users",
		); err != nil {
			log.Fatal("Failed to drop tables:", err)
		}
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := database.SeedAll(db); err != nil {
		log.Fatal("Failed to seed catalog data:", err)
	}

	log.Println("✅ Seed complete")
}
