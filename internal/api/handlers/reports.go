package handlers

import (
	"log"
	"net/http"
	"time"

	"fulfillment-route-service/internal/api/dto"
	"fulfillment-route-service/internal/services"
)

// ReportHandler exposes the aggregate reports downstream consumers poll.
type ReportHandler struct {
	Reporter *services.Reporter
	Now      func() time.Time
}

func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := h.Reporter.DailyReport(r.Context())
	if err != nil {
		log.Printf("daily report failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DailyReportResponse{
		TotalOrders:  report.TotalOrders,
		TotalRevenue: report.TotalRevenue,
		UnitsSold:    report.UnitsSold,
	})
}

func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := h.Reporter.LowStockReport(r.Context(), h.Now())
	if err != nil {
		log.Printf("low-stock report failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.LowStockReportResponse{
		Threshold: report.Threshold,
		Items:     make([]dto.LowStockItemResponse, 0, len(report.Items)),
	}
	for _, item := range report.Items {
		res.Items = append(res.Items, dto.LowStockItemResponse{
			ProductID: item.ProductID,
			Units:     item.Units,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ReportHandler) Routes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := h.Reporter.RouteReport(r.Context())
	if err != nil {
		log.Printf("route report failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.RouteReportResponse{
		Orders:        make([]dto.OrderDistanceResponse, 0, len(report.Orders)),
		TotalDistance: report.TotalDistance,
	}
	for _, o := range report.Orders {
		res.Orders = append(res.Orders, dto.OrderDistanceResponse{
			OrderID:  o.OrderID,
			Distance: o.Distance,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
