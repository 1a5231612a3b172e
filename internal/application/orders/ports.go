package orders

import (
	"context"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye catálogo, pedidos
// y direcciones de envío.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		cakeRepo repository.CakeRepository,
		orderRepo repository.OrderRepository,
		addressRepo repository.AddressRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de un pedido.
// customer puede ser nil si el usuario ya no existe.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, customer *entity.User) ([]byte, error)
}

// Viewer usuario autenticado que consulta o modifica pedidos.
type Viewer struct {
	UserID string
	Role   string
}
