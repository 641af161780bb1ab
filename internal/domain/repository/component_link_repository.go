package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// ComponentLinkRepository define el puerto para la receta de productos compuestos.
type ComponentLinkRepository interface {
	Create(link *entity.ComponentLink) error
	// ListByParent devuelve los componentes directos del padre; lista vacía
	// para productos simples.
	ListByParent(companyID, parentProductID string) ([]*entity.ComponentLink, error)
	Delete(companyID, id string) error
}
