package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	"fulfillment-route-service/internal/adapters/repositories"
	"fulfillment-route-service/internal/config"
	"fulfillment-route-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// Offline schema init and seed runner. Targets the server's local SQLite file
// by default, or a shared Postgres catalog when DATABASE_URL is set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	var conn *sql.DB
	var err error

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		conn, err = db.Open(databaseURL)
	} else {
		dbPath := config.Get("DB_PATH", "data/app.db")
		conn, err = sql.Open("sqlite", dbPath)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/stock.json")
	initAndSeed(conn, seedPath)
}

func initAndSeed(conn *sql.DB, seedPath string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
