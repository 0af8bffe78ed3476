package api

import (
	"net/http"
	"time"

	"fulfillment-route-service/internal/api/handlers"
	"fulfillment-route-service/internal/domain"
	"fulfillment-route-service/internal/ports"
	"fulfillment-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(dir *domain.Directory, orders ports.OrderRepository, reporter *services.Reporter) http.Handler {
	mux := http.NewServeMux()

	warehouseHandler := &handlers.WarehouseHandler{Directory: dir, Now: time.Now}
	stockHandler := &handlers.StockHandler{Directory: dir, Now: time.Now}
	orderHandler := &handlers.OrderHandler{Directory: dir, Orders: orders, Now: time.Now}
	reportHandler := &handlers.ReportHandler{Reporter: reporter, Now: time.Now}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/warehouses", warehouseHandler.List)
	mux.HandleFunc("/stock", stockHandler.Add)
	mux.HandleFunc("/orders", orderHandler.Create)
	mux.HandleFunc("/reports/daily", reportHandler.Daily)
	mux.HandleFunc("/reports/low-stock", reportHandler.LowStock)
	mux.HandleFunc("/reports/routes", reportHandler.Routes)

	return loggingMiddleware(mux)
}
