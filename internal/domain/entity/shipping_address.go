package entity

import (
	"strings"
	"time"
)

// ShippingAddress dirección de envío guardada por un cliente.
// A lo sumo una por cliente tiene IsDefault.
type ShippingAddress struct {
	ID           string
	CustomerID   string
	FirstName    string
	LastName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	IsDefault    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Formatted dirección en una sola línea; es lo que se copia a orders.delivery_address.
func (a *ShippingAddress) Formatted() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.AddressLine1, a.AddressLine2, a.City, a.State, a.PostalCode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
