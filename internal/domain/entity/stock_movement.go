package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	StockMovementSale         = "sale"
	StockMovementCancellation = "sale_cancellation"
	StockMovementAdjustment   = "adjustment"
)

// StockMovement es el rastro de auditoría de cada ajuste aplicado a
// warehouse_stock. Se escribe en la misma transacción que el ajuste;
// nunca se modifica ni se borra.
type StockMovement struct {
	ID          string
	CompanyID   string
	WarehouseID string
	ProductID   string
	Type        string          // sale, sale_cancellation, adjustment
	Quantity    decimal.Decimal // delta con signo aplicado al stock
	Reference   string          // ID de la venta u orden que originó el ajuste
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string // UserID
}
