package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin            = "admin"
	RoleStaff            = "staff"
	RoleDelivery         = "delivery"
	RoleCustomer         = "customer"
	RoleInventoryManager = "inventory_manager"
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleDelivery, RoleCustomer, RoleInventoryManager:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	Role         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsActive     bool
	// IsSuperuser puede desactivar a otros administradores.
	IsSuperuser bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
