package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, user_id, warehouse_id, cash_register_session_id,
	ticket_label, customer_reference, subtotal, tax, discount, total,
	payment_method, status, created_at, updated_at`

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.UserID, nullable(sale.WarehouseID), nullable(sale.CashRegisterSessionID),
		sale.TicketLabel, sale.CustomerReference, sale.Subtotal, sale.Tax, sale.Discount, sale.Total,
		sale.PaymentMethod, sale.Status, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// CreatePayment persiste un pago de la venta.
func (r *SaleRepo) CreatePayment(payment *entity.SalePayment) error {
	query := `
		INSERT INTO sale_payments (id, sale_id, method, amount, currency, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.SaleID, payment.Method, payment.Amount, payment.Currency, payment.Reference, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale payment: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.get(id, false)
}

// GetByIDForUpdate obtiene la venta y bloquea la fila (SELECT FOR UPDATE)
// para que la precondición de estado y la reversión compartan transacción.
func (r *SaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	return r.get(id, true)
}

func (r *SaleRepo) get(id string, forUpdate bool) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Sale
	var warehouseID, sessionID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.UserID, &warehouseID, &sessionID,
		&s.TicketLabel, &s.CustomerReference, &s.Subtotal, &s.Tax, &s.Discount, &s.Total,
		&s.PaymentMethod, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if warehouseID != nil {
		s.WarehouseID = *warehouseID
	}
	if sessionID != nil {
		s.CashRegisterSessionID = *sessionID
	}
	return &s, nil
}

// GetItems lista las líneas de una venta.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, line_total, created_at
		FROM sale_items WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.LineTotal, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetPayments lista los pagos de una venta.
func (r *SaleRepo) GetPayments(saleID string) ([]*entity.SalePayment, error) {
	query := `
		SELECT id, sale_id, method, amount, currency, reference, created_at
		FROM sale_payments WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalePayment
	for rows.Next() {
		var p entity.SalePayment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.Currency, &p.Reference, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la venta (completed → cancelled).
func (r *SaleRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// ListByCompany lista ventas de la empresa con paginación.
func (r *SaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var warehouseID, sessionID *string
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.UserID, &warehouseID, &sessionID,
			&s.TicketLabel, &s.CustomerReference, &s.Subtotal, &s.Tax, &s.Discount, &s.Total,
			&s.PaymentMethod, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if warehouseID != nil {
			s.WarehouseID = *warehouseID
		}
		if sessionID != nil {
			s.CashRegisterSessionID = *sessionID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// nullable convierte string vacío en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
