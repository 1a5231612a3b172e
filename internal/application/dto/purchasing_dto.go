package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID       string                   `json:"supplier_id" validate:"required,uuid"`
	OrderDate        string                   `json:"order_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExpectedDelivery string                   `json:"expected_delivery,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes            string                   `json:"notes,omitempty"`
	Items            []PurchaseOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderItemInput línea de la orden de compra.
type PurchaseOrderItemInput struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Notes        string          `json:"notes,omitempty"`
}

// ReceiveItemsRequest body para POST /api/purchase-orders/:id/receive.
type ReceiveItemsRequest struct {
	ReceivedItems []ReceivedItemInput `json:"received_items" validate:"required,min=1,dive"`
}

// ReceivedItemInput cantidad recibida de una línea.
type ReceivedItemInput struct {
	ItemID           string          `json:"item_id" validate:"required,uuid"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
}

// UpdatePurchaseOrderStatusRequest body para PATCH /api/purchase-orders/:id/status.
type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent confirmed cancelled"`
}

// PurchaseOrderListRequest query de GET /api/purchase-orders.
type PurchaseOrderListRequest struct {
	PageRequest
	SupplierID string `query:"supplier"`
	Status     string `query:"status" validate:"omitempty,oneof=draft sent confirmed received cancelled"`
	DateFrom   string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

// PurchaseOrderItemResponse línea en respuestas.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	IngredientID     string          `json:"ingredient_id"`
	IngredientName   string          `json:"ingredient_name,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	Notes            string          `json:"notes,omitempty"`
}

// PurchaseOrderResponse orden de compra completa.
type PurchaseOrderResponse struct {
	ID               string                      `json:"id"`
	PONumber         string                      `json:"po_number"`
	SupplierID       string                      `json:"supplier_id"`
	SupplierName     string                      `json:"supplier_name,omitempty"`
	Status           string                      `json:"status"`
	OrderDate        string                      `json:"order_date"`
	ExpectedDelivery string                      `json:"expected_delivery,omitempty"`
	DeliveryDate     string                      `json:"delivery_date,omitempty"`
	Subtotal         decimal.Decimal             `json:"subtotal"`
	Tax              decimal.Decimal             `json:"tax"`
	TotalAmount      decimal.Decimal             `json:"total_amount"`
	Notes            string                      `json:"notes,omitempty"`
	CreatedBy        string                      `json:"created_by"`
	CreatedAt        time.Time                   `json:"created_at"`
	Items            []PurchaseOrderItemResponse `json:"items"`
}

// PurchaseOrderListResponse página de órdenes de compra.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ReceiveItemsResponse resultado de una recepción.
type ReceiveItemsResponse struct {
	PurchaseOrder PurchaseOrderResponse `json:"purchase_order"`
	Movements     []MovementResponse    `json:"movements"`
	FullyReceived bool                  `json:"fully_received"`
}

// ── Recetas ───────────────────────────────────────────────────────────────────

// CreateRecipeRequest body para POST /api/recipes.
type CreateRecipeRequest struct {
	Name         string            `json:"name" validate:"required,max=200"`
	Description  string            `json:"description,omitempty"`
	Servings     int               `json:"servings" validate:"omitempty,min=1"`
	Instructions string            `json:"instructions,omitempty"`
	Ingredients  []RecipeLineInput `json:"ingredients" validate:"required,min=1,dive"`
}

// RecipeLineInput línea de receta.
type RecipeLineInput struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"required,oneof=kg g l ml pcs packs boxes"`
	Notes        string          `json:"notes,omitempty"`
}

// RecipeLineResponse línea de receta en respuestas.
type RecipeLineResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	Notes          string          `json:"notes,omitempty"`
}

// RecipeResponse receta con sus líneas.
type RecipeResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Servings     int                  `json:"servings"`
	Instructions string               `json:"instructions,omitempty"`
	IsActive     bool                 `json:"is_active"`
	Ingredients  []RecipeLineResponse `json:"ingredients"`
}

// CheckAvailabilityRequest body para POST /api/recipes/:id/check-availability.
type CheckAvailabilityRequest struct {
	Servings int `json:"servings" validate:"omitempty,min=1"`
}

// ShortageDTO faltante de un ingrediente para producir la receta.
type ShortageDTO struct {
	Ingredient string          `json:"ingredient"`
	Required   decimal.Decimal `json:"required"`
	Available  decimal.Decimal `json:"available"`
	Shortage   decimal.Decimal `json:"shortage"`
}

// AvailabilityResponse resultado de check-availability.
type AvailabilityResponse struct {
	Recipe                 string        `json:"recipe"`
	Servings               int           `json:"servings"`
	Available              bool          `json:"available"`
	UnavailableIngredients []ShortageDTO `json:"unavailable_ingredients"`
}
