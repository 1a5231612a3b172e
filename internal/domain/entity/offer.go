package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de oferta.
const (
	OfferPercentage   = "percentage"
	OfferFixed        = "fixed"
	OfferFreeDelivery = "free_delivery"
	OfferBuyOneGetOne = "buy_one_get_one"
	OfferSpecial      = "special"
)

// Estados de oferta.
const (
	OfferStatusDraft   = "draft"
	OfferStatusActive  = "active"
	OfferStatusExpired = "expired"
	OfferStatusPaused  = "paused"
)

// ValidOfferType indica si t es un tipo de oferta conocido.
func ValidOfferType(t string) bool {
	switch t {
	case OfferPercentage, OfferFixed, OfferFreeDelivery, OfferBuyOneGetOne, OfferSpecial:
		return true
	}
	return false
}

// ValidOfferStatus indica si s es un estado de oferta conocido.
func ValidOfferStatus(s string) bool {
	switch s {
	case OfferStatusDraft, OfferStatusActive, OfferStatusExpired, OfferStatusPaused:
		return true
	}
	return false
}

// Offer promoción publicada por la pastelería.
type Offer struct {
	ID                 string
	Title              string
	Description        string
	OfferType          string
	Status             string
	DiscountPercentage *decimal.Decimal
	DiscountAmount     *decimal.Decimal
	MinimumOrderAmount decimal.Decimal
	StartDate          time.Time
	EndDate            time.Time
	MaxUses            *int
	CurrentUses        int
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
