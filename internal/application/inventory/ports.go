package inventory

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de stock atados a esa tx: el ajuste y su rastro de auditoría
// se confirman juntos.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
