package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cake producto del catálogo que se vende en pedidos.
type Cake struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	IsAvailable bool
	CreatedAt   time.Time
}
