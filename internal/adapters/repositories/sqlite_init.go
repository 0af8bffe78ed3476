package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createWarehousesQuery := `
	CREATE TABLE IF NOT EXISTS warehouses (
		warehouse_id TEXT PRIMARY KEY,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL
	);
	`

	createBatchesQuery := `
	CREATE TABLE IF NOT EXISTS batches (
		warehouse_id TEXT NOT NULL,
		batch_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		expiry_date TEXT NOT NULL,
		PRIMARY KEY (warehouse_id, batch_id)
	);
	`

	createPricesQuery := `
	CREATE TABLE IF NOT EXISTS prices (
		product_id TEXT PRIMARY KEY,
		unit_price REAL NOT NULL
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		items TEXT NOT NULL,
		customer_x INTEGER NOT NULL,
		customer_y INTEGER NOT NULL,
		window_start INTEGER NOT NULL,
		window_end INTEGER NOT NULL,
		total_distance REAL NOT NULL,
		within_window INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_batches_warehouse_product
	ON batches(warehouse_id, product_id);
	`

	statements := []string{
		createWarehousesQuery,
		createBatchesQuery,
		createPricesQuery,
		createOrdersQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type WarehouseSeed struct {
	WarehouseID string `json:"warehouse_id"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

type BatchSeed struct {
	WarehouseID string `json:"warehouse_id"`
	BatchID     string `json:"batch_id"`
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	ExpiryDate  string `json:"expiry_date"`
}

type PriceSeed struct {
	ProductID string  `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
}

type StockSeed struct {
	Warehouses []WarehouseSeed `json:"warehouses"`
	Batches    []BatchSeed     `json:"batches"`
	Prices     []PriceSeed     `json:"prices"`
}

// Populate the database with warehouse, batch, and price data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stock: read %q: %w", jsonPath, err)
	}

	var seed StockSeed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return fmt.Errorf("seed stock: parse json: %w", err)
	}

	for i, w := range seed.Warehouses {
		if strings.TrimSpace(w.WarehouseID) == "" {
			return fmt.Errorf("seed stock: warehouse at index %d: id cannot be empty", i+1)
		}
	}
	for i, b := range seed.Batches {
		if strings.TrimSpace(b.WarehouseID) == "" || strings.TrimSpace(b.BatchID) == "" {
			return fmt.Errorf("seed stock: batch at index %d: warehouse and batch ids cannot be empty", i+1)
		}
		if b.Quantity <= 0 {
			return fmt.Errorf("seed stock: batch %s: invalid quantity %d", b.BatchID, b.Quantity)
		}
		if strings.TrimSpace(b.ExpiryDate) == "" {
			return fmt.Errorf("seed stock: batch %s: expiry date cannot be empty", b.BatchID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stock: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	whStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO warehouses (warehouse_id, x, y)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed stock: prepare warehouse insert: %w", err)
	}
	defer whStmt.Close()

	for _, w := range seed.Warehouses {
		if _, err := whStmt.Exec(w.WarehouseID, w.X, w.Y); err != nil {
			return fmt.Errorf("seed stock: insert warehouse %q: %w", w.WarehouseID, err)
		}
	}

	batchStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO batches (warehouse_id, batch_id, product_id, quantity, expiry_date)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed stock: prepare batch insert: %w", err)
	}
	defer batchStmt.Close()

	for _, b := range seed.Batches {
		if _, err := batchStmt.Exec(b.WarehouseID, b.BatchID, b.ProductID, b.Quantity, b.ExpiryDate); err != nil {
			return fmt.Errorf("seed stock: insert batch %q: %w", b.BatchID, err)
		}
	}

	priceStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO prices (product_id, unit_price)
	VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed stock: prepare price insert: %w", err)
	}
	defer priceStmt.Close()

	for _, p := range seed.Prices {
		if _, err := priceStmt.Exec(p.ProductID, p.UnitPrice); err != nil {
			return fmt.Errorf("seed stock: insert price for %q: %w", p.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stock: commit tx: %w", err)
	}

	return nil
}
