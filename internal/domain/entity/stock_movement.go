package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de existencias.
const (
	MovementIn         = "in"         // entrada
	MovementOut        = "out"        // salida (consumo)
	MovementAdjustment = "adjustment" // ajuste absoluto
	MovementWaste      = "waste"      // merma
)

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment, MovementWaste:
		return true
	}
	return false
}

// StockMovement es un registro inmutable del libro: cantidad en magnitud y
// las fotos del stock antes y después de aplicarlo.
type StockMovement struct {
	ID            string
	IngredientID  string
	Type          string
	Quantity      decimal.Decimal // siempre > 0
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	UnitCost      decimal.Decimal // costo del movimiento, no del ingrediente
	TotalValue    decimal.Decimal // Quantity × UnitCost
	Reference     string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time

	// Solo lectura (JOIN con ingredients).
	IngredientName string
	IngredientUnit string
}
