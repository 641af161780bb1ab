package sales

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cabecera, líneas, pagos, deltas
// de stock y transacción de caja de una venta se confirmen como una sola
// unidad: un fallo parcial no deja venta parcialmente visible.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
		sessionRepo repository.CashSessionRepository,
		cashTxRepo repository.CashTransactionRepository,
		linkRepo repository.ComponentLinkRepository,
	) error) error
}
