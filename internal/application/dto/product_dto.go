package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	IsComposite    bool            `json:"is_composite"`
	UnitMeasure    string          `json:"unit_measure"`
	AllowsFraction bool            `json:"allows_fraction"`
}

// ProductResponse producto persistido.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	IsComposite    bool            `json:"is_composite"`
	UnitMeasure    string          `json:"unit_measure"`
	AllowsFraction bool            `json:"allows_fraction"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AddComponentRequest vínculo padre→componente con cantidad por unidad.
type AddComponentRequest struct {
	ComponentProductID string          `json:"component_product_id"`
	QuantityPerUnit    decimal.Decimal `json:"quantity_per_unit"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
}

// ComponentResponse vínculo persistido.
type ComponentResponse struct {
	ID                 string          `json:"id"`
	ComponentProductID string          `json:"component_product_id"`
	QuantityPerUnit    decimal.Decimal `json:"quantity_per_unit"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
}
