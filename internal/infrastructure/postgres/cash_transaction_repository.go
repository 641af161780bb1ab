package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.CashTransactionRepository = (*CashTransactionRepo)(nil)

// CashTransactionRepo implementación del libro append-only de caja sobre
// PostgreSQL (usable con pool o tx). Solo inserta y lista: los asientos
// nunca se modifican ni se borran.
type CashTransactionRepo struct {
	q Querier
}

// NewCashTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashTransactionRepository(q Querier) *CashTransactionRepo {
	return &CashTransactionRepo{q: q}
}

// Create persiste un asiento de caja.
func (r *CashTransactionRepo) Create(tx *entity.CashTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_transactions (id, company_id, cash_register_session_id, type, amount, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.CompanyID, tx.CashRegisterSessionID, tx.Type, tx.Amount, tx.Reference, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create cash transaction: %w", err)
	}
	return nil
}

// ListBySession lista los asientos de una sesión en orden de inserción.
func (r *CashTransactionRepo) ListBySession(sessionID string) ([]*entity.CashTransaction, error) {
	query := `
		SELECT id, company_id, cash_register_session_id, type, amount, reference, created_at
		FROM cash_transactions WHERE cash_register_session_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list cash transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashTransaction
	for rows.Next() {
		var tx entity.CashTransaction
		if err := rows.Scan(&tx.ID, &tx.CompanyID, &tx.CashRegisterSessionID, &tx.Type, &tx.Amount, &tx.Reference, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash transaction: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}
