package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Catálogo ──────────────────────────────────────────────────────────────────

// CreateCakeRequest body para POST /api/cakes.
type CreateCakeRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"is_available,omitempty"`
}

// CakeResponse torta del catálogo.
type CakeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

// CreateOrderRequest body para POST /api/orders.
// El cliente es el usuario del token.
type CreateOrderRequest struct {
	OrderType            string             `json:"order_type" validate:"required,oneof=online walk_in"`
	PaymentMethod        string             `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card online"`
	ShippingAddressID    *string            `json:"shipping_address_id,omitempty" validate:"omitempty,uuid"`
	DeliveryAddress      string             `json:"delivery_address,omitempty"`
	DeliveryInstructions string             `json:"delivery_instructions,omitempty"`
	DeliveryDate         string             `json:"delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Items                []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest línea del pedido. unit_price y total_price son overrides opcionales del cliente.
type OrderItemRequest struct {
	CakeID             string           `json:"cake_id" validate:"required,uuid"`
	Quantity           int              `json:"quantity" validate:"required,min=1"`
	UnitPrice          *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice         *decimal.Decimal `json:"total_price,omitempty"`
	CustomizationNotes string           `json:"customization_notes,omitempty"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ID                 string          `json:"id"`
	CakeID             string          `json:"cake_id"`
	CakeName           string          `json:"cake_name,omitempty"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	CustomizationNotes string          `json:"customization_notes,omitempty"`
}

// OrderStatusHistoryResponse entrada del historial de estados.
type OrderStatusHistoryResponse struct {
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderResponse pedido completo.
type OrderResponse struct {
	ID                   string                       `json:"id"`
	OrderNumber          string                       `json:"order_number"`
	CustomerID           string                       `json:"customer_id"`
	OrderType            string                       `json:"order_type"`
	OrderStatus          string                       `json:"order_status"`
	PaymentStatus        string                       `json:"payment_status"`
	PaymentMethod        string                       `json:"payment_method"`
	ShippingAddressID    *string                      `json:"shipping_address_id,omitempty"`
	DeliveryAddress      string                       `json:"delivery_address,omitempty"`
	DeliveryInstructions string                       `json:"delivery_instructions,omitempty"`
	DeliveryPersonID     *string                      `json:"delivery_person_id,omitempty"`
	AssignedStaffID      *string                      `json:"assigned_staff_id,omitempty"`
	DeliveryDate         string                       `json:"delivery_date,omitempty"`
	Subtotal             decimal.Decimal              `json:"subtotal"`
	Tax                  decimal.Decimal              `json:"tax"`
	DeliveryFee          decimal.Decimal              `json:"delivery_fee"`
	TotalAmount          decimal.Decimal              `json:"total_amount"`
	CreatedAt            time.Time                    `json:"created_at"`
	UpdatedAt            time.Time                    `json:"updated_at"`
	ConfirmedAt          *time.Time                   `json:"confirmed_at,omitempty"`
	DeliveredAt          *time.Time                   `json:"delivered_at,omitempty"`
	Items                []OrderItemResponse          `json:"items"`
	StatusHistory        []OrderStatusHistoryResponse `json:"status_history,omitempty"`
}

// OrderListRequest query de GET /api/orders.
type OrderListRequest struct {
	PageRequest
	Status        string `query:"status" validate:"omitempty,oneof=pending confirmed preparing ready out_for_delivery delivered cancelled"`
	PaymentStatus string `query:"payment_status" validate:"omitempty,oneof=pending paid failed refunded"`
	OrderType     string `query:"order_type" validate:"omitempty,oneof=online walk_in"`
}

// OrderListResponse página de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateOrderStatusRequest body para POST /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed preparing ready out_for_delivery delivered cancelled"`
	Notes  string `json:"notes,omitempty"`
}

// AssignDeliveryRequest body para POST /api/orders/:id/assign-delivery.
type AssignDeliveryRequest struct {
	DeliveryPersonID string `json:"delivery_person_id" validate:"required,uuid"`
}

// AssignStaffRequest body para POST /api/orders/:id/assign-staff.
type AssignStaffRequest struct {
	StaffID string `json:"staff_id" validate:"required,uuid"`
}

// UpdatePaymentRequest body para POST /api/orders/:id/payment.
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid failed refunded"`
	PaymentMethod string `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card online"`
	Notes         string `json:"notes,omitempty"`
}

// ── Direcciones de envío ─────────────────────────────────────────────────────

// ShippingAddressRequest body para POST y PUT /api/addresses.
type ShippingAddressRequest struct {
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"required,max=20"`
	AddressLine1 string `json:"address_line1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"omitempty,max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	PostalCode   string `json:"postal_code" validate:"required,max=20"`
	Country      string `json:"country,omitempty" validate:"omitempty,max=100"`
	IsDefault    bool   `json:"is_default"`
}

// ShippingAddressResponse dirección de envío del cliente.
type ShippingAddressResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country,omitempty"`
	IsDefault    bool      `json:"is_default"`
	FullAddress  string    `json:"full_address"`
	CreatedAt    time.Time `json:"created_at"`
}
