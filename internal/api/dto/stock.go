package dto

type AddStockRequest struct {
	WarehouseID string `json:"warehouse_id"`
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	BatchID     string `json:"batch_id"`
	ExpiryDate  string `json:"expiry_date"`
}

type AddStockResponse struct {
	WarehouseID string `json:"warehouse_id"`
	ProductID   string `json:"product_id"`
	BatchID     string `json:"batch_id"`
	Available   int    `json:"available"`
}
