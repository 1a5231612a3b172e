package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida admitidas para ingredientes.
const (
	UnitKilogram   = "kg"
	UnitGram       = "g"
	UnitLiter      = "l"
	UnitMilliliter = "ml"
	UnitPieces     = "pcs"
	UnitPacks      = "packs"
	UnitBoxes      = "boxes"
)

// ValidUnit indica si u es una unidad conocida.
func ValidUnit(u string) bool {
	switch u {
	case UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitPieces, UnitPacks, UnitBoxes:
		return true
	}
	return false
}

// Ingredient materia prima de la pastelería. CurrentStock solo cambia vía movimientos.
type Ingredient struct {
	ID           string
	Name         string
	Description  string
	Unit         string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	UnitCost     decimal.Decimal
	SupplierID   *string
	Location     string
	ExpiryDate   *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	SupplierName string // solo lectura
}

// TotalValue valor del inventario del ingrediente (stock × costo unitario).
func (i *Ingredient) TotalValue() decimal.Decimal {
	return i.CurrentStock.Mul(i.UnitCost)
}

// IsLowStock es true cuando el stock actual no supera el mínimo.
func (i *Ingredient) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinimumStock)
}
