package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// CashSessionRepository define el puerto de persistencia para sesiones de caja.
type CashSessionRepository interface {
	// Create falla con violación de unicidad si ya existe una sesión abierta
	// para (empresa, usuario); índice único parcial en la tabla.
	Create(session *entity.CashRegisterSession) error
	GetByID(companyID, id string) (*entity.CashRegisterSession, error)
	// GetByIDForUpdate bloquea la fila de la sesión para cierre o para la
	// verificación "sigue abierta" antes de insertar una transacción ligada.
	GetByIDForUpdate(companyID, id string) (*entity.CashRegisterSession, error)
	GetOpenByUser(companyID, userID string) (*entity.CashRegisterSession, error)
	GetOpenByUserForUpdate(companyID, userID string) (*entity.CashRegisterSession, error)
	Close(id string, closingAmount decimal.Decimal, closedAt time.Time) error
	ListClosed(companyID, userID string, limit, offset int) ([]*entity.CashRegisterSession, error)
}

// CashTransactionRepository define el puerto del libro append-only de caja.
type CashTransactionRepository interface {
	Create(tx *entity.CashTransaction) error
	ListBySession(sessionID string) ([]*entity.CashTransaction, error)
}
