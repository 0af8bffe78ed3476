package handlers

import (
	"net/http"
	"time"

	"fulfillment-route-service/internal/api/dto"
	"fulfillment-route-service/internal/domain"
)

// WarehouseHandler exposes read-only fleet snapshots.
type WarehouseHandler struct {
	Directory *domain.Directory
	Now       func() time.Time
}

func (h *WarehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	asOf := h.Now()
	list := h.Directory.List()

	res := dto.ListWarehousesResponse{
		Warehouses: make([]dto.WarehouseResponse, 0, len(list)),
	}
	for _, wh := range list {
		res.Warehouses = append(res.Warehouses, dto.WarehouseResponse{
			WarehouseID: wh.ID,
			X:           wh.Location.X,
			Y:           wh.Location.Y,
			Stock:       wh.AllAvailableStock(asOf),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
