package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// StockRepository define el puerto del libro de stock por (producto, bodega, empresa).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Adjust aplica delta como incremento atómico en la capa de almacenamiento
	// (quantity = quantity + delta), creando la fila con quantity = delta si no
	// existe. Nunca lee-modifica-escribe en aplicación: eso pierde updates bajo
	// ventas concurrentes. Devuelve la cantidad resultante, que puede ser negativa.
	Adjust(companyID, warehouseID, productID string, delta decimal.Decimal) (decimal.Decimal, error)
	Get(companyID, warehouseID, productID string) (*entity.WarehouseStock, error)
	ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.WarehouseStock, error)
}

// StockMovementRepository define el puerto del rastro de auditoría de ajustes.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByReference(companyID, reference string) ([]*entity.StockMovement, error)
}
