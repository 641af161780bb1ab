package cashregister

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de caja atados a esa tx. El cierre y cada asiento manual
// bloquean la fila de la sesión: ninguna transacción puede colarse después
// del cierre ni quedar fuera de la ventana [openedAt, closedAt).
type TxRunner interface {
	RunCash(ctx context.Context, fn func(
		sessionRepo repository.CashSessionRepository,
		cashTxRepo repository.CashTransactionRepository,
	) error) error
}
