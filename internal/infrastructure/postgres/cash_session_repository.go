package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// CashSessionRepo implementación sobre PostgreSQL (usable con pool o tx).
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

const sessionColumns = `id, company_id, user_id, warehouse_id, opening_amount, closing_amount, status, opened_at, closed_at`

// Create persiste la sesión. El índice único parcial
// (company_id, user_id) WHERE status = 'open' convierte la carrera entre dos
// aperturas simultáneas en ErrOpenSessionExists.
func (r *CashSessionRepo) Create(session *entity.CashRegisterSession) error {
	query := `
		INSERT INTO cash_register_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.CompanyID, session.UserID, session.WarehouseID,
		session.OpeningAmount, session.ClosingAmount, session.Status, session.OpenedAt, session.ClosedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOpenSessionExists
		}
		return fmt.Errorf("insert cash session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID (scoped a la empresa).
func (r *CashSessionRepo) GetByID(companyID, id string) (*entity.CashRegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_register_sessions WHERE company_id = $1 AND id = $2`
	return r.scanOne(query, companyID, id)
}

// GetByIDForUpdate obtiene la sesión y bloquea la fila (SELECT FOR UPDATE):
// el guard "sigue abierta" y el insert del asiento comparten transacción.
func (r *CashSessionRepo) GetByIDForUpdate(companyID, id string) (*entity.CashRegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_register_sessions WHERE company_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(query, companyID, id)
}

// GetOpenByUser obtiene la sesión abierta del usuario, si existe.
func (r *CashSessionRepo) GetOpenByUser(companyID, userID string) (*entity.CashRegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_register_sessions
		WHERE company_id = $1 AND user_id = $2 AND status = 'open'`
	return r.scanOne(query, companyID, userID)
}

// GetOpenByUserForUpdate igual que GetOpenByUser pero bloqueando la fila.
func (r *CashSessionRepo) GetOpenByUserForUpdate(companyID, userID string) (*entity.CashRegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_register_sessions
		WHERE company_id = $1 AND user_id = $2 AND status = 'open' FOR UPDATE`
	return r.scanOne(query, companyID, userID)
}

func (r *CashSessionRepo) scanOne(query string, args ...any) (*entity.CashRegisterSession, error) {
	var s entity.CashRegisterSession
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.CompanyID, &s.UserID, &s.WarehouseID,
		&s.OpeningAmount, &s.ClosingAmount, &s.Status, &s.OpenedAt, &s.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash session: %w", err)
	}
	return &s, nil
}

// Close marca la sesión como cerrada con el monto contado.
func (r *CashSessionRepo) Close(id string, closingAmount decimal.Decimal, closedAt time.Time) error {
	query := `
		UPDATE cash_register_sessions
		SET status = 'closed', closing_amount = $2, closed_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, closingAmount, closedAt)
	if err != nil {
		return fmt.Errorf("close cash session: %w", err)
	}
	return nil
}

// ListClosed lista sesiones cerradas, opcionalmente filtradas por usuario.
func (r *CashSessionRepo) ListClosed(companyID, userID string, limit, offset int) ([]*entity.CashRegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_register_sessions
		WHERE company_id = $1 AND status = 'closed'`
	args := []any{companyID}
	pos := 2
	if userID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", pos)
		args = append(args, userID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY closed_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list closed sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashRegisterSession
	for rows.Next() {
		var s entity.CashRegisterSession
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.UserID, &s.WarehouseID,
			&s.OpeningAmount, &s.ClosingAmount, &s.Status, &s.OpenedAt, &s.ClosedAt); err != nil {
			return nil, fmt.Errorf("scan cash session: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
