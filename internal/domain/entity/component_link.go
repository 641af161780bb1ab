package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentLink define la receta de un producto compuesto: por cada unidad del
// padre se descuentan QuantityPerUnit unidades del componente.
// Invariantes: ComponentProductID != ParentProductID y el grafo padre→componente
// debe ser acíclico (validado al crear el vínculo, no al vender).
type ComponentLink struct {
	ID                 string
	CompanyID          string
	ParentProductID    string
	ComponentProductID string
	QuantityPerUnit    decimal.Decimal
	UnitCost           decimal.Decimal // snapshot del costo del componente al crear el vínculo
	CreatedAt          time.Time
}
