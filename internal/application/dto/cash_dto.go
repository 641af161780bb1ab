package dto

import "github.com/shopspring/decimal"

// OpenSessionRequest apertura de sesión de caja con fondo inicial.
type OpenSessionRequest struct {
	WarehouseID   string          `json:"warehouse_id"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

// CloseSessionRequest cierre con monto contado físicamente.
type CloseSessionRequest struct {
	CountedAmount decimal.Decimal `json:"counted_amount"`
}

// CashTransactionRequest evento manual de caja: income, expense o withdrawal.
type CashTransactionRequest struct {
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

// SessionResponse sesión de caja persistida.
type SessionResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	WarehouseID   string          `json:"warehouse_id"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	Status        string          `json:"status"`
	OpenedAt      string          `json:"opened_at"`
	ClosedAt      string          `json:"closed_at,omitempty"`
}

// SessionSummaryResponse totales recalculados en vivo desde el libro de caja.
type SessionSummaryResponse struct {
	SessionID       string          `json:"session_id"`
	Status          string          `json:"status"`
	OpeningAmount   decimal.Decimal `json:"opening_amount"`
	CashSales       decimal.Decimal `json:"cash_sales"`
	Cancellations   decimal.Decimal `json:"cancellations"`
	Income          decimal.Decimal `json:"income"`
	Expenses        decimal.Decimal `json:"expenses"`
	Withdrawals     decimal.Decimal `json:"withdrawals"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
}

// CloseSessionResponse resultado de la conciliación al cierre.
type CloseSessionResponse struct {
	SessionID       string          `json:"session_id"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	CountedAmount   decimal.Decimal `json:"counted_amount"`
	Difference      decimal.Decimal `json:"difference"` // negativo = faltante
}

// ClosureResponse sesión histórica cerrada con diferencia recalculada.
type ClosureResponse struct {
	SessionID       string          `json:"session_id"`
	UserID          string          `json:"user_id"`
	OpeningAmount   decimal.Decimal `json:"opening_amount"`
	ClosingAmount   decimal.Decimal `json:"closing_amount"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	Difference      decimal.Decimal `json:"difference"`
	OpenedAt        string          `json:"opened_at"`
	ClosedAt        string          `json:"closed_at"`
}

// ClosureListResponse listado de cierres históricos.
type ClosureListResponse struct {
	Items []ClosureResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
