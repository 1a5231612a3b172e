package entity

import "time"

// Supplier proveedor de ingredientes.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Website       string
	Notes         string
	IsActive      bool
	CreatedAt     time.Time
}
