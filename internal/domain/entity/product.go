package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU vendible (multi-empresa).
// Un producto compuesto ("combo") descuenta además el stock de sus componentes
// según la receta fija en component_links.
type Product struct {
	ID            string
	CompanyID     string
	SKU           string // código único por empresa
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta unitario
	IsComposite   bool            // true = posee ComponentLink como padre
	UnitMeasure   string          // unidad, kg, lt, etc.
	AllowsFraction bool           // permite cantidades decimales (ej. productos por peso)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
