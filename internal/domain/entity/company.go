package entity

import "time"

// Company representa la empresa (tenant) dueña de productos, bodegas y ventas.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
