package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fulfillment-route-service/internal/domain"
)

// SQLite-backed implementation of the OrderRepository port. Only the fields
// the reports read are persisted; the full visit sequence stays in memory
// with the live order.
type SqliteOrderRepository struct{ DB *sql.DB }

func NewSqliteOrderRepository(db *sql.DB) *SqliteOrderRepository {
	return &SqliteOrderRepository{DB: db}
}

// Store a completed order with its route metrics.
func (s *SqliteOrderRepository) InsertOrder(ctx context.Context, order *domain.Order) error {
	if s.DB == nil {
		return errors.New("sqlite order repository: DB is nil")
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("insert order %s: marshal items: %w", order.ID, err)
	}

	distance := 0.0
	within := true
	if order.Route != nil {
		distance = order.Route.TotalDistance
		within = order.Route.WithinTimeWindow
	}

	query := `
	INSERT INTO orders (
		order_id,
		items,
		customer_x,
		customer_y,
		window_start,
		window_end,
		total_distance,
		within_window
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		order.ID, string(items),
		order.Customer.X, order.Customer.Y,
		order.WindowStart, order.WindowEnd,
		distance, boolToInt(within),
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", order.ID, err)
	}
	return nil
}

// Retrieve all completed orders, route metrics attached.
func (s *SqliteOrderRepository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite order repository: DB is nil")
	}

	query := `
	SELECT
		order_id,
		items,
		customer_x,
		customer_y,
		window_start,
		window_end,
		total_distance,
		within_window
	FROM orders
	ORDER BY order_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 16)
	for rows.Next() {
		var id, itemsJSON string
		var cx, cy, start, end, within int
		var distance float64
		if err := rows.Scan(&id, &itemsJSON, &cx, &cy, &start, &end, &distance, &within); err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}

		items := map[string]int{}
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			return nil, fmt.Errorf("list orders: order %s: parse items: %w", id, err)
		}

		orders = append(orders, &domain.Order{
			ID:          id,
			Items:       items,
			Customer:    domain.Point{X: cx, Y: cy},
			WindowStart: start,
			WindowEnd:   end,
			Route: &domain.Route{
				TotalDistance:    distance,
				WithinTimeWindow: within != 0,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
