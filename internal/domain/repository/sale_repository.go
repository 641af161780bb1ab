package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas, líneas y pagos.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	CreatePayment(payment *entity.SalePayment) error
	GetByID(id string) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la fila de la venta (SELECT FOR UPDATE) para que
	// la precondición de estado y la reversión corran en la misma transacción.
	GetByIDForUpdate(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	GetPayments(saleID string) ([]*entity.SalePayment, error)
	UpdateStatus(id, status string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error)
}
