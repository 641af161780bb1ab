package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	AssignWarehouse(userID, warehouseID string) error
}
