package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de caja. El libro es append-only: las anulaciones
// insertan asientos inversos, nunca se modifica ni borra un asiento.
const (
	CashTxSale         = "sale"
	CashTxCancellation = "sale_cancellation"
	CashTxIncome       = "income"
	CashTxExpense      = "expense"
	CashTxWithdrawal   = "withdrawal"
)

// CashTransaction es un asiento con signo en el libro de caja de una sesión.
// sale y sale_cancellation guardan el monto con signo (+venta, −anulación);
// income, expense y withdrawal guardan montos positivos y la fórmula del
// saldo esperado decide el signo según el tipo.
type CashTransaction struct {
	ID                    string
	CompanyID             string
	CashRegisterSessionID string
	Type                  string
	Amount                decimal.Decimal
	Reference             string // ID de la venta u operación manual que lo originó
	CreatedAt             time.Time
}
