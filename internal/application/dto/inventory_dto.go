package dto

import "github.com/shopspring/decimal"

// AdjustStockRequest corrección manual de stock (delta con signo).
type AdjustStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Delta       decimal.Decimal `json:"delta"`
	Notes       string          `json:"notes"`
}

// AdjustStockResponse cantidad resultante tras el ajuste.
type AdjustStockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// StockResponse cantidad actual de un producto en una bodega.
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockListResponse stock de una bodega.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
