package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cajero"
	RoleSeller  = "vendedor"
)

// User representa un usuario del punto de venta. WarehouseID es la bodega
// asignada: las ventas que cree descuentan stock de esa bodega; sin
// asignación, la venta se persiste sin efectos de stock ni caja.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	WarehouseID  string // vacío = sin bodega asignada
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
