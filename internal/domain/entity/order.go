package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pedido.
const (
	OrderTypeOnline = "online"
	OrderTypeWalkIn = "walk_in"
)

// Estados del pedido.
const (
	OrderPending        = "pending"
	OrderConfirmed      = "confirmed"
	OrderPreparing      = "preparing"
	OrderReady          = "ready"
	OrderOutForDelivery = "out_for_delivery"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

// Estados de pago.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Métodos de pago.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentOnline = "online"
)

// ValidOrderType indica si t es un tipo de pedido conocido.
func ValidOrderType(t string) bool {
	return t == OrderTypeOnline || t == OrderTypeWalkIn
}

// ValidOrderStatus indica si s es un estado de pedido conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus indica si s es un estado de pago conocido.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// ValidPaymentMethod indica si m es un método de pago conocido.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentOnline
}

// Order pedido de un cliente. Los totales son una foto tomada al crearlo.
type Order struct {
	ID                   string
	OrderNumber          string
	CustomerID           string
	OrderType            string
	OrderStatus          string
	PaymentStatus        string
	PaymentMethod        string
	ShippingAddressID    *string
	DeliveryAddress      string
	DeliveryInstructions string
	DeliveryPersonID     *string
	AssignedStaffID      *string
	DeliveryDate         *time.Time
	Subtotal             decimal.Decimal
	Tax                  decimal.Decimal
	DeliveryFee          decimal.Decimal
	TotalAmount          decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
	ConfirmedAt          *time.Time
	DeliveredAt          *time.Time

	Items   []OrderItem
	History []OrderStatusHistory
}

// IsFinal indica si el pedido ya no admite cambios de estado.
func (o *Order) IsFinal() bool {
	return o.OrderStatus == OrderDelivered || o.OrderStatus == OrderCancelled
}

// OrderItem línea de pedido.
type OrderItem struct {
	ID                 string
	OrderID            string
	CakeID             string
	Quantity           int
	UnitPrice          decimal.Decimal
	TotalPrice         decimal.Decimal
	CustomizationNotes string

	CakeName string // solo lectura
}

// OrderStatusHistory registro de cada cambio de estado de un pedido.
type OrderStatusHistory struct {
	ID        string
	OrderID   string
	Status    string
	Notes     string
	UpdatedBy string
	CreatedAt time.Time
}
