package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseStock representa la cantidad con signo de un producto en una bodega.
// La fila se crea de forma perezosa en el primer ajuste y puede quedar negativa:
// el sobregiro de stock es representable, no bloqueado.
type WarehouseStock struct {
	CompanyID   string
	WarehouseID string
	ProductID   string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
