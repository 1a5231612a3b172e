package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ValidateOffer revisa la configuración de descuento de la oferta.
func ValidateOffer(o *entity.Offer) error {
	if o.Title == "" {
		return domain.Invalid("title", "requerido")
	}
	if !entity.ValidOfferType(o.OfferType) {
		return domain.Invalid("offer_type", "tipo de oferta desconocido")
	}
	if o.Status != "" && !entity.ValidOfferStatus(o.Status) {
		return domain.Invalid("status", "estado de oferta desconocido")
	}
	switch o.OfferType {
	case entity.OfferPercentage:
		if o.DiscountPercentage == nil || !o.DiscountPercentage.IsPositive() {
			return domain.Invalid("discount_percentage", "requerido para ofertas porcentuales")
		}
		if o.DiscountPercentage.GreaterThan(hundred) {
			return domain.Invalid("discount_percentage", "no puede superar 100%")
		}
	case entity.OfferFixed:
		if o.DiscountAmount == nil || !o.DiscountAmount.IsPositive() {
			return domain.Invalid("discount_amount", "requerido para ofertas de monto fijo")
		}
	}
	if o.MinimumOrderAmount.IsNegative() {
		return domain.Invalid("minimum_order_amount", "no puede ser negativo")
	}
	if !o.EndDate.After(o.StartDate) {
		return domain.Invalid("end_date", "debe ser posterior a start_date")
	}
	if o.MaxUses != nil && *o.MaxUses < 0 {
		return domain.Invalid("max_uses", "no puede ser negativo")
	}
	return nil
}

// IsActive indica si la oferta está vigente en now.
func IsActive(o *entity.Offer, now time.Time) bool {
	if o.Status != entity.OfferStatusActive {
		return false
	}
	if now.Before(o.StartDate) || now.After(o.EndDate) {
		return false
	}
	return o.MaxUses == nil || o.CurrentUses < *o.MaxUses
}

// CalculateDiscount devuelve el descuento aplicable a orderAmount.
// Una oferta inactiva o un pedido bajo el mínimo no descuentan nada.
func CalculateDiscount(o *entity.Offer, orderAmount decimal.Decimal, now time.Time) decimal.Decimal {
	if !IsActive(o, now) {
		return decimal.Zero
	}
	if orderAmount.LessThan(o.MinimumOrderAmount) {
		return decimal.Zero
	}
	switch o.OfferType {
	case entity.OfferPercentage:
		if o.DiscountPercentage != nil {
			return orderAmount.Mul(*o.DiscountPercentage).Div(hundred).Round(2)
		}
	case entity.OfferFixed:
		if o.DiscountAmount != nil {
			return decimal.Min(*o.DiscountAmount, orderAmount)
		}
	case entity.OfferFreeDelivery:
		return DeliveryFee
	}
	return decimal.Zero
}
