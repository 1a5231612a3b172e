// Package inventory contiene la aritmética pura del libro de existencias.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

// Escalas de las columnas NUMERIC: cantidades (12,3), costos y montos (12,2).
const (
	QuantityScale int32 = 3
	MoneyScale    int32 = 2
)

// CheckScale devuelve ValidationError si d tiene más decimales de los que guarda la columna.
// PostgreSQL redondearía en silencio y una cantidad como 0.0004 llegaría a cero.
func CheckScale(field string, d decimal.Decimal, scale int32) error {
	if d.Equal(d.Round(scale)) {
		return nil
	}
	return domain.Invalid(field, fmt.Sprintf("admite hasta %d decimales", scale))
}

// NextStock calcula el stock resultante de aplicar un movimiento.
//
//	in         → previo + cantidad
//	out, waste → max(0, previo − cantidad)   (el faltante se absorbe, no falla)
//	adjustment → cantidad                     (valor absoluto, no delta)
func NextStock(kind string, previous, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, domain.Invalid("quantity", "debe ser mayor que cero")
	}
	switch kind {
	case entity.MovementIn:
		return previous.Add(quantity), nil
	case entity.MovementOut, entity.MovementWaste:
		next := previous.Sub(quantity)
		if next.IsNegative() {
			return decimal.Zero, nil
		}
		return next, nil
	case entity.MovementAdjustment:
		return quantity, nil
	}
	return decimal.Zero, domain.Invalid("movement_type", "tipo de movimiento desconocido")
}

// Shortfall devuelve cuánto de una salida no pudo cubrirse con el stock previo.
// Cero para entradas y ajustes.
func Shortfall(kind string, previous, quantity decimal.Decimal) decimal.Decimal {
	if kind != entity.MovementOut && kind != entity.MovementWaste {
		return decimal.Zero
	}
	missing := quantity.Sub(previous)
	if missing.IsPositive() {
		return missing
	}
	return decimal.Zero
}

// MovementValue valor del movimiento: cantidad × costo unitario, a centavos.
func MovementValue(quantity, unitCost decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitCost).Round(MoneyScale)
}

// ReorderQuantity sugiere cuánto comprar para volver al doble del mínimo.
func ReorderQuantity(current, minimum decimal.Decimal) decimal.Decimal {
	target := minimum.Mul(decimal.NewFromInt(2))
	qty := target.Sub(current)
	if qty.IsNegative() {
		return decimal.Zero
	}
	return qty
}
