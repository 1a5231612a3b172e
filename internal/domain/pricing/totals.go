// Package pricing calcula totales de pedidos y descuentos de ofertas.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

// DeliveryFee tarifa plana de domicilio para pedidos online.
var DeliveryFee = decimal.RequireFromString("5.00")

// Line resultado del cálculo de una línea de pedido.
type Line struct {
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	// Overridden es true cuando el cliente envió precios distintos a los del catálogo.
	Overridden bool
}

// moneyScale decimales de las columnas de montos (NUMERIC(10,2)).
const moneyScale = 2

// LineTotal resuelve precio unitario y total de una línea.
// Los overrides del cliente se aceptan sin revalidar contra el catálogo, pero se llevan
// a centavos: así el subtotal es exactamente la suma de lo que se guarda en cada línea.
func LineTotal(quantity int, catalogPrice decimal.Decimal, unitOverride, totalOverride *decimal.Decimal) Line {
	qty := decimal.NewFromInt(int64(quantity))
	unit := catalogPrice
	if unitOverride != nil {
		unit = *unitOverride
	}
	unit = unit.Round(moneyScale)
	total := unit.Mul(qty)
	if totalOverride != nil {
		total = *totalOverride
	}
	total = total.Round(moneyScale)
	expected := catalogPrice.Mul(qty)
	return Line{
		UnitPrice:  unit,
		TotalPrice: total,
		Overridden: !unit.Equal(catalogPrice) || !total.Equal(expected),
	}
}

// Totals totales del pedido.
type Totals struct {
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// OrderTotals suma las líneas y aplica domicilio (solo online). El impuesto es siempre cero.
func OrderTotals(orderType string, lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.TotalPrice)
	}
	fee := decimal.Zero
	if orderType == entity.OrderTypeOnline {
		fee = DeliveryFee
	}
	tax := decimal.Zero
	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       subtotal.Add(tax).Add(fee),
	}
}
