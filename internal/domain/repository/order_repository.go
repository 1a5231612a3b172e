package repository

import (
	"context"
	"time"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

// CakeRepository catálogo de tortas.
type CakeRepository interface {
	Create(ctx context.Context, c *entity.Cake) error
	GetByID(ctx context.Context, id string) (*entity.Cake, error)
	List(ctx context.Context, availableOnly bool) ([]*entity.Cake, error)
}

// AddressRepository direcciones de envío. Toda lectura y escritura va acotada al cliente dueño:
// una dirección de otro cliente se comporta como inexistente.
type AddressRepository interface {
	Create(ctx context.Context, a *entity.ShippingAddress) error
	// GetForCustomer devuelve (nil, nil) si no existe o pertenece a otro cliente.
	GetForCustomer(ctx context.Context, id, customerID string) (*entity.ShippingAddress, error)
	// ListByCustomer devuelve primero la predeterminada y luego las más recientes.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.ShippingAddress, error)
	Update(ctx context.Context, a *entity.ShippingAddress) error
	Delete(ctx context.Context, id, customerID string) error
	// SetDefault marca id como predeterminada y desmarca las demás del cliente.
	SetDefault(ctx context.Context, id, customerID string, at time.Time) error
}

// OrderFilter filtros del listado de pedidos.
// Los campos de alcance (CustomerID, DeliveryPersonID, StaffID) los fija el caso de uso según el rol.
type OrderFilter struct {
	Status           string
	PaymentStatus    string
	OrderType        string
	CustomerID       string
	DeliveryPersonID string
	// StaffID incluye pedidos asignados a ese usuario o sin asignar.
	StaffID string
}

// OrderRepository define el puerto de persistencia para pedidos.
// GetByID y GetForUpdate devuelven (nil, nil) si el pedido no existe.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	AddHistory(ctx context.Context, h *entity.OrderStatusHistory) error
	// GetByID carga el pedido con sus líneas y su historial.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus persiste order_status, confirmed_at, delivered_at y updated_at.
	UpdateStatus(ctx context.Context, o *entity.Order) error
	// UpdateAssignment persiste delivery_person_id, assigned_staff_id y updated_at.
	UpdateAssignment(ctx context.Context, o *entity.Order) error
	// UpdatePayment persiste payment_status, payment_method y updated_at.
	UpdatePayment(ctx context.Context, o *entity.Order) error
	List(ctx context.Context, f OrderFilter, limit, offset int) ([]*entity.Order, int, error)
}
