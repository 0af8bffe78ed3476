package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fulfillment-route-service/internal/api/dto"
	"fulfillment-route-service/internal/domain"
)

// StockHandler receives new batches into warehouse ledgers.
type StockHandler struct {
	Directory *domain.Directory
	Now       func() time.Time
}

func (h *StockHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AddStockRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.WarehouseID) == "" || strings.TrimSpace(req.ProductID) == "" || strings.TrimSpace(req.BatchID) == "" {
		writeError(w, r, http.StatusBadRequest, "warehouse_id, product_id and batch_id are required")
		return
	}

	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "expiry_date must be YYYY-MM-DD")
		return
	}

	wh, ok := h.Directory.Find(req.WarehouseID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown warehouse")
		return
	}

	asOf := h.Now()
	if err := wh.AddStock(req.ProductID, req.Quantity, req.BatchID, expiry, asOf); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateBatch):
			writeError(w, r, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrAlreadyExpired):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.AddStockResponse{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		BatchID:     req.BatchID,
		Available:   wh.AvailableStock(req.ProductID, asOf),
	})
}
