package dto

type WarehouseResponse struct {
	WarehouseID string         `json:"warehouse_id"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Stock       map[string]int `json:"stock"`
}

type ListWarehousesResponse struct {
	Warehouses []WarehouseResponse `json:"warehouses"`
}
