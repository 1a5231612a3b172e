package purchasing

import (
	"context"

	"github.com/sweetbite/bakery-api/internal/application/inventory"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye órdenes de compra e inventario.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		ingredientRepo repository.IngredientRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// Ledger aplica movimientos con los repositorios del caller (misma transacción).
// Si retorna error, el caller debe hacer rollback.
type Ledger interface {
	ApplyInTx(
		ctx context.Context,
		ingredientRepo repository.IngredientRepository,
		movementRepo repository.StockMovementRepository,
		in inventory.MovementInput,
	) (*inventory.MovementResult, error)
}
