package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"fulfillment-route-service/internal/domain"
)

// SQLite-backed implementation of the StockRepository port. The database is
// the seed catalog: ListWarehouses rebuilds the in-memory fleet at startup;
// the live ledgers are not written back.
type SqliteStockRepository struct {
	DB *sql.DB

	// Now supplies the evaluation date for expiry checks while loading.
	// Defaults to time.Now.
	Now func() time.Time
}

func NewSqliteStockRepository(db *sql.DB) *SqliteStockRepository {
	return &SqliteStockRepository{DB: db, Now: time.Now}
}

// Rebuild all warehouses with their batch ledgers loaded. Seed batches that
// expired since they were written are skipped with a log line rather than
// failing the whole load.
func (s *SqliteStockRepository) ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite stock repository: DB is nil")
	}

	asOf := s.Now()

	query := `
	SELECT
		warehouse_id,
		x,
		y
	FROM warehouses
	ORDER BY warehouse_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: query warehouses table: %w", err)
	}
	defer rows.Close()

	warehouses := make([]*domain.Warehouse, 0, 8)
	byID := map[string]*domain.Warehouse{}
	for rows.Next() {
		var id string
		var x, y int
		if err := rows.Scan(&id, &x, &y); err != nil {
			return nil, fmt.Errorf("list warehouses: scan row: %w", err)
		}
		w := domain.NewWarehouse(id, x, y)
		warehouses = append(warehouses, w)
		byID[id] = w
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warehouses: row iteration: %w", err)
	}

	batchQuery := `
	SELECT
		warehouse_id,
		batch_id,
		product_id,
		quantity,
		expiry_date
	FROM batches
	ORDER BY warehouse_id, batch_id;
	`
	batchRows, err := s.DB.QueryContext(ctx, batchQuery)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: query batches table: %w", err)
	}
	defer batchRows.Close()

	for batchRows.Next() {
		var warehouseID, batchID, productID, expiryDate string
		var quantity int
		if err := batchRows.Scan(&warehouseID, &batchID, &productID, &quantity, &expiryDate); err != nil {
			return nil, fmt.Errorf("list warehouses: scan batch row: %w", err)
		}

		w, ok := byID[warehouseID]
		if !ok {
			return nil, fmt.Errorf("list warehouses: batch %q references unknown warehouse %q", batchID, warehouseID)
		}
		expiry, err := time.Parse("2006-01-02", expiryDate)
		if err != nil {
			return nil, fmt.Errorf("list warehouses: batch %q: parse expiry %q: %w", batchID, expiryDate, err)
		}

		if err := w.AddStock(productID, quantity, batchID, expiry, asOf); err != nil {
			if errors.Is(err, domain.ErrAlreadyExpired) {
				log.Printf("skipping expired seed batch: warehouse=%s batch=%s exp=%s", warehouseID, batchID, expiryDate)
				continue
			}
			return nil, fmt.Errorf("list warehouses: load batch %q: %w", batchID, err)
		}
	}
	if err := batchRows.Err(); err != nil {
		return nil, fmt.Errorf("list warehouses: batch row iteration: %w", err)
	}

	return warehouses, nil
}

// Return the configured unit price per product.
func (s *SqliteStockRepository) PriceTable(ctx context.Context) (map[string]float64, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite stock repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT product_id, unit_price FROM prices;`)
	if err != nil {
		return nil, fmt.Errorf("price table: query prices table: %w", err)
	}
	defer rows.Close()

	prices := map[string]float64{}
	for rows.Next() {
		var productID string
		var price float64
		if err := rows.Scan(&productID, &price); err != nil {
			return nil, fmt.Errorf("price table: scan row: %w", err)
		}
		prices[productID] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("price table: row iteration: %w", err)
	}

	return prices, nil
}
