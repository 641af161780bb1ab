package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja. La transición open→closed ocurre
// exactamente una vez; una sesión cerrada rechaza nuevas transacciones.
const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// CashRegisterSession delimita la ventana de un cajón de efectivo: se abre con
// un fondo inicial y se cierra con un monto contado. A lo sumo una sesión
// abierta por (empresa, usuario); lo respalda un índice único parcial.
type CashRegisterSession struct {
	ID            string
	CompanyID     string
	UserID        string
	WarehouseID   string
	OpeningAmount decimal.Decimal
	ClosingAmount decimal.Decimal // monto contado, fijado al cerrar
	Status        string          // open, closed
	OpenedAt      time.Time
	ClosedAt      *time.Time
}

// IsOpen indica si la sesión sigue aceptando transacciones.
func (s *CashRegisterSession) IsOpen() bool {
	return s.Status == SessionStatusOpen
}
