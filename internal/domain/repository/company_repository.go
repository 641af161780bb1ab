package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para empresas (tenants).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
}
