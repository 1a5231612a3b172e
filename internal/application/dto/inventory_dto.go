package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	ContactPerson string `json:"contact_person,omitempty" validate:"omitempty,max=100"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address       string `json:"address,omitempty"`
	Website       string `json:"website,omitempty" validate:"omitempty,url"`
	Notes         string `json:"notes,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	Website       string    `json:"website,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ── Ingredientes ──────────────────────────────────────────────────────────────

// CreateIngredientRequest body para POST /api/ingredients.
// CurrentStock > 0 se registra como un movimiento de ajuste inicial.
type CreateIngredientRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description,omitempty"`
	Unit         string          `json:"unit" validate:"required,oneof=kg g l ml pcs packs boxes"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	SupplierID   *string         `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	Location     string          `json:"location,omitempty" validate:"omitempty,max=100"`
	ExpiryDate   string          `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateIngredientRequest body para PUT /api/ingredients/:id. El stock no se edita aquí.
type UpdateIngredientRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description,omitempty"`
	Unit         string          `json:"unit" validate:"required,oneof=kg g l ml pcs packs boxes"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	SupplierID   *string         `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	Location     string          `json:"location,omitempty" validate:"omitempty,max=100"`
	ExpiryDate   string          `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsActive     *bool           `json:"is_active,omitempty"`
}

// IngredientListRequest query de GET /api/ingredients.
type IngredientListRequest struct {
	PageRequest
	SupplierID string `query:"supplier"`
	Unit       string `query:"unit" validate:"omitempty,oneof=kg g l ml pcs packs boxes"`
	Search     string `query:"search"`
	LowStock   *bool  `query:"low_stock"`
	Active     *bool  `query:"is_active"`
}

// IngredientResponse ingrediente con sus derivados (valor total y stock bajo).
type IngredientResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
	IsLowStock   bool            `json:"is_low_stock"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Location     string          `json:"location,omitempty"`
	ExpiryDate   string          `json:"expiry_date,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IngredientListResponse página de ingredientes.
type IngredientListResponse struct {
	Items []IngredientResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ReorderSuggestionDTO sugerencia de compra para un ingrediente en stock bajo.
type ReorderSuggestionDTO struct {
	IngredientID  string          `json:"ingredient_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinimumStock  decimal.Decimal `json:"minimum_stock"`
	SuggestedQty  decimal.Decimal `json:"suggested_qty"` // 2 × mínimo − actual
	UnitCost      decimal.Decimal `json:"unit_cost"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"` // SuggestedQty × UnitCost
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// ApplyMovementRequest body para POST /api/inventory/movements.
// Sin unit_cost se usa el costo unitario actual del ingrediente.
type ApplyMovementRequest struct {
	IngredientID string           `json:"ingredient_id" validate:"required,uuid"`
	Type         string           `json:"movement_type" validate:"required,oneof=in out adjustment waste"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference    string           `json:"reference,omitempty" validate:"omitempty,max=100"`
	Notes        string           `json:"notes,omitempty"`
}

// MovementResponse movimiento del libro en respuestas.
type MovementResponse struct {
	ID             string          `json:"id"`
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	Type           string          `json:"movement_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	PreviousStock  decimal.Decimal `json:"previous_stock"`
	NewStock       decimal.Decimal `json:"new_stock"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalValue     decimal.Decimal `json:"total_value"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ApplyMovementResponse resultado de aplicar un movimiento.
type ApplyMovementResponse struct {
	Movement   MovementResponse   `json:"movement"`
	Ingredient IngredientResponse `json:"ingredient"`
	// Clamped indica que una salida superó el stock y se recortó a cero.
	Clamped bool `json:"clamped"`
}

// MovementListRequest query de GET /api/inventory/movements.
type MovementListRequest struct {
	PageRequest
	IngredientID string `query:"ingredient"`
	Type         string `query:"movement_type" validate:"omitempty,oneof=in out adjustment waste"`
	StartDate    string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
