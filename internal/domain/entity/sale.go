package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Una venta se crea completed y solo muta para
// pasar a cancelled; nunca se borra (la anulación es compensatoria).
const (
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
)

// Métodos de pago. Solo cash afecta el saldo físico de la caja.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCredit   = "credit"
)

// Sale es la cabecera de una venta. Los totales llegan del caller ya
// calculados por el motor de precios (entrada confiable, sin re-verificación).
type Sale struct {
	ID                    string
	CompanyID             string
	UserID                string
	WarehouseID           string // bodega asignada al usuario creador; vacío = sin efectos de stock
	CashRegisterSessionID string // vacío = venta sin sesión de caja asociada
	TicketLabel           string
	CustomerReference     string
	Subtotal              decimal.Decimal
	Tax                   decimal.Decimal
	Discount              decimal.Decimal
	Total                 decimal.Decimal
	PaymentMethod         string // método declarado en cabecera; el desglose real va en SalePayment
	Status                string // completed, cancelled
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SaleItem es una línea de venta. Inmutable después de creada.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	CreatedAt time.Time
}

// SalePayment es un pago de la venta. Una venta admite 1..N pagos
// (pago dividido); la suma puede diferir del total y se guarda tal cual.
type SalePayment struct {
	ID        string
	SaleID    string
	Method    string
	Amount    decimal.Decimal
	Currency  string
	Reference string
	CreatedAt time.Time
}

// CashAmount suma los montos de los pagos con método cash.
func CashAmount(payments []*SalePayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Method == PaymentMethodCash {
			total = total.Add(p.Amount)
		}
	}
	return total
}
