package dto

type DailyReportResponse struct {
	TotalOrders  int            `json:"total_orders"`
	TotalRevenue float64        `json:"total_revenue"`
	UnitsSold    map[string]int `json:"units_sold"`
}

type LowStockItemResponse struct {
	ProductID string `json:"product_id"`
	Units     int    `json:"units"`
}

type LowStockReportResponse struct {
	Threshold int                    `json:"threshold"`
	Items     []LowStockItemResponse `json:"items"`
}

type OrderDistanceResponse struct {
	OrderID  string  `json:"order_id"`
	Distance float64 `json:"distance"`
}

type RouteReportResponse struct {
	Orders        []OrderDistanceResponse `json:"orders"`
	TotalDistance float64                 `json:"total_distance"`
}
