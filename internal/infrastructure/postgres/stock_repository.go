package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Adjust aplica el delta como incremento atómico en SQL: el upsert calcula
// quantity = quantity + delta en el servidor, nunca con un valor leído antes
// en aplicación (eso perdería updates bajo ventas concurrentes). La fila se
// crea con quantity = delta si no existe y puede quedar negativa.
func (r *StockRepo) Adjust(companyID, warehouseID, productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO warehouse_stock (company_id, warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (company_id, warehouse_id, product_id)
		DO UPDATE SET quantity = warehouse_stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var newQuantity decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, companyID, warehouseID, productID, delta).Scan(&newQuantity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("adjust stock: %w", err)
	}
	return newQuantity, nil
}

// Get obtiene el stock actual; fila ausente equivale a cantidad cero.
func (r *StockRepo) Get(companyID, warehouseID, productID string) (*entity.WarehouseStock, error) {
	query := `
		SELECT company_id, warehouse_id, product_id, quantity, updated_at
		FROM warehouse_stock
		WHERE company_id = $1 AND warehouse_id = $2 AND product_id = $3`
	var s entity.WarehouseStock
	err := r.q.QueryRow(context.Background(), query, companyID, warehouseID, productID).Scan(
		&s.CompanyID, &s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.WarehouseStock{CompanyID: companyID, WarehouseID: warehouseID, ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// ListByWarehouse lista el stock de una bodega con paginación.
func (r *StockRepo) ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.WarehouseStock, error) {
	query := `
		SELECT company_id, warehouse_id, product_id, quantity, updated_at
		FROM warehouse_stock
		WHERE company_id = $1 AND warehouse_id = $2
		ORDER BY product_id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseStock
	for rows.Next() {
		var s entity.WarehouseStock
		if err := rows.Scan(&s.CompanyID, &s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
