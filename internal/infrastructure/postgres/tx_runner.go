package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweetbite/bakery-api/internal/application/inventory"
	"github.com/sweetbite/bakery-api/internal/application/offers"
	"github.com/sweetbite/bakery-api/internal/application/orders"
	"github.com/sweetbite/bakery-api/internal/application/purchasing"
	"github.com/sweetbite/bakery-api/internal/application/recipes"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// Ensure TxRunner implements los runners de cada caso de uso.
var (
	_ inventory.TxRunner  = (*TxRunner)(nil)
	_ offers.TxRunner     = (*TxRunner)(nil)
	_ orders.TxRunner     = (*TxRunner)(nil)
	_ purchasing.TxRunner = (*TxRunner)(nil)
	_ recipes.TxRunner    = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia una transacción, ejecuta fn y hace Commit; cualquier error hace Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción del libro de existencias.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ingredientRepo repository.IngredientRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewIngredientRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunOrders transacción de creación y cambios de estado de pedidos.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	cakeRepo repository.CakeRepository,
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewCakeRepository(tx), NewOrderRepository(tx), NewAddressRepository(tx))
	})
}

// RunPurchasing transacción de órdenes de compra; la recepción escribe en el libro con la misma tx.
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	ingredientRepo repository.IngredientRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewPurchaseOrderRepository(tx), NewIngredientRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunRecipes transacción de alta de recetas con sus líneas.
func (r *TxRunner) RunRecipes(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewRecipeRepository(tx))
	})
}

// RunOffers transacción de aplicación de ofertas; el contador de usos se incrementa con la fila bloqueada.
func (r *TxRunner) RunOffers(ctx context.Context, fn func(offerRepo repository.OfferRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewOfferRepository(tx))
	})
}
