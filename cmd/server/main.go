package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"fulfillment-route-service/internal/adapters/cache"
	"fulfillment-route-service/internal/adapters/repositories"
	"fulfillment-route-service/internal/api"
	"fulfillment-route-service/internal/config"
	"fulfillment-route-service/internal/domain"
	"fulfillment-route-service/internal/ports"
	"fulfillment-route-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite catalog, Redis snapshot cache) behind
// ports, rebuilds the in-memory fleet from the seed catalog, and starts the
// HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/stock.json")
	port := config.Get("PORT", "8080")
	depot := domain.Point{
		X: config.GetInt("DEPOT_X", 0),
		Y: config.GetInt("DEPOT_Y", 0),
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	stockRepo := repositories.NewSqliteStockRepository(db)
	orderRepo := repositories.NewSqliteOrderRepository(db)

	dir, err := buildDirectory(stockRepo, depot)
	if err != nil {
		log.Fatal(err)
	}

	prices, err := stockRepo.PriceTable(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	// The snapshot cache is optional; reports degrade to walking the ledgers
	// directly when no Redis address is configured.
	var snapshots ports.StockSnapshotCache
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		ttl := time.Duration(config.GetInt("SNAPSHOT_TTL_SECONDS", 30)) * time.Second
		snapshots = cache.NewRedisSnapshotCache(client, ttl)
		log.Printf("Stock snapshot cache enabled addr=%s ttl=%s", addr, ttl)
	}

	reporter := &services.Reporter{
		Directory: dir,
		Orders:    orderRepo,
		Prices:    prices,
		Snapshots: snapshots,
		Threshold: config.GetInt("LOW_STOCK_THRESHOLD", 50),
	}

	router := api.NewRouter(dir, orderRepo, reporter)

	log.Printf("Server listening addr=:%s warehouses=%d depot=(%d,%d)", port, len(dir.List()), depot.X, depot.Y)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

func buildDirectory(repo *repositories.SqliteStockRepository, depot domain.Point) (*domain.Directory, error) {
	warehouses, err := repo.ListWarehouses(context.Background())
	if err != nil {
		return nil, fmt.Errorf("build directory: %w", err)
	}

	dir := domain.NewDirectory(depot)
	for _, w := range warehouses {
		if err := dir.Add(w); err != nil {
			return nil, fmt.Errorf("build directory: %w", err)
		}
	}
	return dir, nil
}
