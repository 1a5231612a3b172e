package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Totales de pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestLineTotal_UsaPrecioDeCatalogo(t *testing.T) {
	l := pricing.LineTotal(3, d("12.50"), nil, nil)
	assert.True(t, d("12.50").Equal(l.UnitPrice))
	assert.True(t, d("37.50").Equal(l.TotalPrice))
	assert.False(t, l.Overridden)
}

func TestLineTotal_OverrideUnitario(t *testing.T) {
	l := pricing.LineTotal(2, d("15"), ptr(d("10.00")), nil)
	assert.True(t, d("10").Equal(l.UnitPrice))
	assert.True(t, d("20").Equal(l.TotalPrice), "total = override unitario × cantidad")
	assert.True(t, l.Overridden)
}

func TestLineTotal_OverrideTotalSeAceptaSinRevalidar(t *testing.T) {
	l := pricing.LineTotal(2, d("15"), nil, ptr(d("1.00")))
	assert.True(t, d("15").Equal(l.UnitPrice))
	assert.True(t, d("1").Equal(l.TotalPrice), "el total enviado por el cliente se respeta")
	assert.True(t, l.Overridden)
}

func TestLineTotal_RedondeaACentavos(t *testing.T) {
	l := pricing.LineTotal(3, d("5"), ptr(d("3.333")), nil)
	assert.True(t, d("3.33").Equal(l.UnitPrice))
	assert.True(t, d("9.99").Equal(l.TotalPrice))

	// Cada total se guarda en NUMERIC(10,2): el subtotal debe sumar lo guardado.
	lines := []pricing.Line{
		pricing.LineTotal(1, d("4"), nil, ptr(d("0.005"))),
		pricing.LineTotal(1, d("4"), nil, ptr(d("0.005"))),
	}
	tot := pricing.OrderTotals(entity.OrderTypeWalkIn, lines)
	sum := decimal.Zero
	for _, l := range lines {
		assert.True(t, l.TotalPrice.Equal(l.TotalPrice.Round(2)), "total con más de 2 decimales: %s", l.TotalPrice)
		sum = sum.Add(l.TotalPrice)
	}
	assert.True(t, d("0.02").Equal(tot.Subtotal), "got %s", tot.Subtotal)
	assert.True(t, sum.Equal(tot.Subtotal))
}

func TestOrderTotals_OnlineConDomicilio(t *testing.T) {
	lines := []pricing.Line{pricing.LineTotal(2, d("10.00"), nil, nil)}
	tot := pricing.OrderTotals(entity.OrderTypeOnline, lines)

	assert.True(t, d("20.00").Equal(tot.Subtotal))
	assert.True(t, d("5.00").Equal(tot.DeliveryFee))
	assert.True(t, tot.Tax.IsZero())
	assert.True(t, d("25.00").Equal(tot.Total))
}

func TestOrderTotals_WalkInSinDomicilio(t *testing.T) {
	lines := []pricing.Line{
		pricing.LineTotal(1, d("8.25"), nil, nil),
		pricing.LineTotal(4, d("1.50"), nil, nil),
	}
	tot := pricing.OrderTotals(entity.OrderTypeWalkIn, lines)

	assert.True(t, d("14.25").Equal(tot.Subtotal))
	assert.True(t, tot.DeliveryFee.IsZero())
	assert.True(t, tot.Subtotal.Equal(tot.Total))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ofertas
// ──────────────────────────────────────────────────────────────────────────────

var (
	start = time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)
	mid   = time.Date(2026, 12, 15, 12, 0, 0, 0, time.UTC)
)

func activeOffer(kind string) *entity.Offer {
	return &entity.Offer{
		Title:              "Navidad",
		OfferType:          kind,
		Status:             entity.OfferStatusActive,
		MinimumOrderAmount: d("20"),
		StartDate:          start,
		EndDate:            end,
	}
}

func TestValidateOffer(t *testing.T) {
	pct := activeOffer(entity.OfferPercentage)
	assert.ErrorIs(t, pricing.ValidateOffer(pct), domain.ErrInvalidInput, "porcentaje requerido")

	pct.DiscountPercentage = ptr(d("101"))
	assert.ErrorIs(t, pricing.ValidateOffer(pct), domain.ErrInvalidInput, "porcentaje > 100")

	pct.DiscountPercentage = ptr(d("15"))
	assert.NoError(t, pricing.ValidateOffer(pct))

	fixed := activeOffer(entity.OfferFixed)
	assert.ErrorIs(t, pricing.ValidateOffer(fixed), domain.ErrInvalidInput, "monto fijo requerido")
	fixed.DiscountAmount = ptr(d("3"))
	assert.NoError(t, pricing.ValidateOffer(fixed))

	fixed.EndDate = fixed.StartDate
	assert.ErrorIs(t, pricing.ValidateOffer(fixed), domain.ErrInvalidInput, "end_date debe ser posterior")
}

func TestIsActive(t *testing.T) {
	o := activeOffer(entity.OfferFreeDelivery)
	assert.True(t, pricing.IsActive(o, mid))
	assert.False(t, pricing.IsActive(o, end.Add(time.Minute)), "vencida")
	assert.False(t, pricing.IsActive(o, start.Add(-time.Minute)), "aún no inicia")

	maxUses := 2
	o.MaxUses = &maxUses
	o.CurrentUses = 2
	assert.False(t, pricing.IsActive(o, mid), "usos agotados")

	o.CurrentUses = 0
	o.Status = entity.OfferStatusPaused
	assert.False(t, pricing.IsActive(o, mid), "pausada")
}

func TestCalculateDiscount(t *testing.T) {
	pct := activeOffer(entity.OfferPercentage)
	pct.DiscountPercentage = ptr(d("10"))
	assert.True(t, d("5").Equal(pricing.CalculateDiscount(pct, d("50"), mid)))
	assert.True(t, pricing.CalculateDiscount(pct, d("19.99"), mid).IsZero(), "bajo el mínimo no descuenta")

	fixed := activeOffer(entity.OfferFixed)
	fixed.DiscountAmount = ptr(d("30"))
	fixed.MinimumOrderAmount = decimal.Zero
	assert.True(t, d("12").Equal(pricing.CalculateDiscount(fixed, d("12"), mid)), "nunca mayor que el pedido")
	assert.True(t, d("30").Equal(pricing.CalculateDiscount(fixed, d("100"), mid)))

	free := activeOffer(entity.OfferFreeDelivery)
	assert.True(t, pricing.DeliveryFee.Equal(pricing.CalculateDiscount(free, d("25"), mid)))

	bogo := activeOffer(entity.OfferBuyOneGetOne)
	assert.True(t, pricing.CalculateDiscount(bogo, d("25"), mid).IsZero())

	expired := activeOffer(entity.OfferPercentage)
	expired.DiscountPercentage = ptr(d("50"))
	require.False(t, pricing.IsActive(expired, end.AddDate(0, 1, 0)))
	assert.True(t, pricing.CalculateDiscount(expired, d("100"), end.AddDate(0, 1, 0)).IsZero())
}
