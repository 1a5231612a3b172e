package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Ofertas ───────────────────────────────────────────────────────────────────

// CreateOfferRequest body para POST /api/offers. Fechas en RFC3339.
type CreateOfferRequest struct {
	Title              string           `json:"title" validate:"required,max=200"`
	Description        string           `json:"description,omitempty"`
	OfferType          string           `json:"offer_type" validate:"required,oneof=percentage fixed free_delivery buy_one_get_one special"`
	Status             string           `json:"status,omitempty" validate:"omitempty,oneof=draft active expired paused"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	MinimumOrderAmount decimal.Decimal  `json:"minimum_order_amount"`
	StartDate          time.Time        `json:"start_date" validate:"required"`
	EndDate            time.Time        `json:"end_date" validate:"required"`
	MaxUses            *int             `json:"max_uses,omitempty" validate:"omitempty,min=0"`
}

// UpdateOfferStatusRequest body para PATCH /api/offers/:id/status.
type UpdateOfferStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active expired paused"`
}

// PreviewDiscountRequest body para POST /api/offers/:id/preview.
type PreviewDiscountRequest struct {
	OrderAmount decimal.Decimal `json:"order_amount"`
}

// PreviewDiscountResponse descuento que aplicaría la oferta.
type PreviewDiscountResponse struct {
	OfferID     string          `json:"offer_id"`
	IsActive    bool            `json:"is_active"`
	OrderAmount decimal.Decimal `json:"order_amount"`
	Discount    decimal.Decimal `json:"discount"`
}

// ApplyOfferRequest body para POST /api/offers/:id/apply.
type ApplyOfferRequest struct {
	OrderAmount decimal.Decimal `json:"order_amount"`
}

// ApplyOfferResponse resultado de consumir un uso de la oferta.
type ApplyOfferResponse struct {
	OfferID     string          `json:"offer_id"`
	OrderAmount decimal.Decimal `json:"order_amount"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	CurrentUses int             `json:"current_uses"`
}

// OfferStatsResponse conteos por estado y ofertas más usadas.
type OfferStatsResponse struct {
	TotalOffers   int             `json:"total_offers"`
	ActiveOffers  int             `json:"active_offers"`
	ExpiredOffers int             `json:"expired_offers"`
	DraftOffers   int             `json:"draft_offers"`
	PausedOffers  int             `json:"paused_offers"`
	MostUsed      []OfferUsageDTO `json:"most_used_offers"`
}

// OfferUsageDTO oferta y cantidad de usos.
type OfferUsageDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	OfferType   string `json:"offer_type"`
	CurrentUses int    `json:"current_uses"`
}

// OfferResponse oferta en respuestas.
type OfferResponse struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description,omitempty"`
	OfferType          string           `json:"offer_type"`
	Status             string           `json:"status"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	MinimumOrderAmount decimal.Decimal  `json:"minimum_order_amount"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	MaxUses            *int             `json:"max_uses,omitempty"`
	CurrentUses        int              `json:"current_uses"`
	IsActive           bool             `json:"is_active"`
	CreatedAt          time.Time        `json:"created_at"`
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// CreateUserRequest body para POST /api/users.
type CreateUserRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=admin staff delivery customer inventory_manager"`
	FirstName       string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName        string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}

// UpdateUserRequest body para PUT /api/users/:id. Los campos ausentes no cambian.
type UpdateUserRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Address     *string `json:"address,omitempty"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=admin staff delivery customer inventory_manager"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// UpdateProfileRequest body para PUT /api/users/me.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Address     *string `json:"address,omitempty"`
}

// UserListRequest query de GET /api/users.
type UserListRequest struct {
	PageRequest
	Role string `query:"role" validate:"omitempty,oneof=admin staff delivery customer inventory_manager"`
}

// UserResponse usuario sin credenciales.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserListResponse página de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
