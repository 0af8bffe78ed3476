package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"fulfillment-route-service/internal/api/dto"
	"fulfillment-route-service/internal/domain"
	"fulfillment-route-service/internal/platform/obs"
	"fulfillment-route-service/internal/ports"
	"fulfillment-route-service/internal/services"

	"github.com/google/uuid"
)

// OrderHandler runs the full fulfillment pipeline: allocation, route
// planning, and recording the completed order for reporting.
type OrderHandler struct {
	Directory *domain.Directory
	Orders    ports.OrderRepository
	Now       func() time.Time
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OrderRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	order, err := domain.NewOrder(orderID, req.Items,
		domain.Point{X: req.CustomerX, Y: req.CustomerY},
		req.WindowStart, req.WindowEnd)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	done := obs.Time(r.Context(), "process_order")
	result, procErr := services.ProcessOrder(h.Directory, order, h.Now())
	done(&procErr)

	if procErr != nil {
		switch {
		case errors.Is(procErr, domain.ErrInsufficientStock):
			writeError(w, r, http.StatusConflict, procErr.Error())
		case errors.Is(procErr, domain.ErrPartialFulfillment):
			// Pre-check and allocation disagreed; removed stock for earlier
			// products is gone. Surface the inconsistency, do not mask it.
			log.Printf("partial fulfillment: order=%s err=%v", orderID, procErr)
			writeError(w, r, http.StatusInternalServerError, procErr.Error())
		default:
			log.Printf("process order failed: %v", procErr)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	if err := h.Orders.InsertOrder(r.Context(), order); err != nil {
		log.Printf("record completed order failed: order=%s err=%v", orderID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, toOrderResponse(result))
}

func toOrderResponse(result *domain.FulfillmentResult) dto.OrderResponse {
	allocations := make(map[string][]dto.WarehouseAllocationResponse, len(result.Allocations))
	for productID, was := range result.Allocations {
		out := make([]dto.WarehouseAllocationResponse, 0, len(was))
		for _, wa := range was {
			batches := make([]dto.BatchAllocationResponse, 0, len(wa.Batches))
			for _, b := range wa.Batches {
				batches = append(batches, dto.BatchAllocationResponse{
					BatchID:       b.BatchID,
					QuantityTaken: b.QuantityTaken,
				})
			}
			out = append(out, dto.WarehouseAllocationResponse{
				WarehouseID: wa.WarehouseID,
				Batches:     batches,
			})
		}
		allocations[productID] = out
	}

	stops := make([]dto.RouteStopResponse, 0, len(result.Route.Stops))
	for _, s := range result.Route.Stops {
		stops = append(stops, dto.RouteStopResponse{
			Label: s.Label,
			X:     s.Location.X,
			Y:     s.Location.Y,
		})
	}

	return dto.OrderResponse{
		OrderID:     result.OrderID,
		Allocations: allocations,
		Warehouses:  result.Warehouses,
		Route: dto.RouteResponse{
			Stops:            stops,
			TotalDistance:    result.Route.TotalDistance,
			WithinTimeWindow: result.Route.WithinTimeWindow,
		},
	}
}
