package dto

import "github.com/shopspring/decimal"

// SaleItemRequest línea de venta. Los decimales viajan como string JSON
// (shopspring) para evitar deriva de punto flotante en el borde HTTP.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SalePaymentRequest pago de la venta (pago dividido: 1..N por venta).
type SalePaymentRequest struct {
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
}

// CreateSaleRequest cabecera + líneas + desglose opcional de pagos.
// Si Payments está vacío se sintetiza un único pago por el total con
// PaymentMethod. Los totales llegan calculados por el caller (confiables).
type CreateSaleRequest struct {
	Subtotal          decimal.Decimal      `json:"subtotal"`
	Tax               decimal.Decimal      `json:"tax"`
	Discount          decimal.Decimal      `json:"discount"`
	Total             decimal.Decimal      `json:"total"`
	PaymentMethod     string               `json:"payment_method"`
	TicketLabel       string               `json:"ticket_label"`
	CustomerReference string               `json:"customer_reference"`
	Items             []SaleItemRequest    `json:"items"`
	Payments          []SalePaymentRequest `json:"payments"`
}

// SaleItemResponse línea persistida.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SalePaymentResponse pago persistido.
type SalePaymentResponse struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference,omitempty"`
}

// SaleResponse venta persistida con totales eco.
type SaleResponse struct {
	ID                    string                `json:"id"`
	WarehouseID           string                `json:"warehouse_id,omitempty"`
	CashRegisterSessionID string                `json:"cash_register_session_id,omitempty"`
	Subtotal              decimal.Decimal       `json:"subtotal"`
	Tax                   decimal.Decimal       `json:"tax"`
	Discount              decimal.Decimal       `json:"discount"`
	Total                 decimal.Decimal       `json:"total"`
	PaymentMethod         string                `json:"payment_method"`
	Status                string                `json:"status"`
	TicketLabel           string                `json:"ticket_label,omitempty"`
	Items                 []SaleItemResponse    `json:"items"`
	Payments              []SalePaymentResponse `json:"payments"`
	CreatedAt             string                `json:"created_at"`
}

// CancelSaleResponse resultado de la anulación.
type CancelSaleResponse struct {
	Cancelled bool `json:"cancelled"`
}
