package dto

type OrderRequest struct {
	OrderID     string         `json:"order_id"`
	Items       map[string]int `json:"items"`
	CustomerX   int            `json:"customer_x"`
	CustomerY   int            `json:"customer_y"`
	WindowStart int            `json:"window_start"`
	WindowEnd   int            `json:"window_end"`
}

type BatchAllocationResponse struct {
	BatchID       string `json:"batch_id"`
	QuantityTaken int    `json:"quantity_taken"`
}

type WarehouseAllocationResponse struct {
	WarehouseID string                    `json:"warehouse_id"`
	Batches     []BatchAllocationResponse `json:"batches"`
}

type RouteStopResponse struct {
	Label string `json:"label"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

type RouteResponse struct {
	Stops            []RouteStopResponse `json:"stops"`
	TotalDistance    float64             `json:"total_distance"`
	WithinTimeWindow bool                `json:"within_time_window"`
}

type OrderResponse struct {
	OrderID     string                                   `json:"order_id"`
	Allocations map[string][]WarehouseAllocationResponse `json:"allocations"`
	Warehouses  []string                                 `json:"warehouses"`
	Route       RouteResponse                            `json:"route"`
}
