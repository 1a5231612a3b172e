package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/inventory"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// ApplyMovementUseCase es el libro de existencias: aplica movimientos (in, out,
// adjustment, waste) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewApplyMovementUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewApplyMovementUseCase(txRunner TxRunner, log zerolog.Logger, now func() time.Time) *ApplyMovementUseCase {
	if now == nil {
		now = time.Now
	}
	return &ApplyMovementUseCase{txRunner: txRunner, log: log, now: now}
}

// MovementInput entrada de un movimiento. ActorID es obligatorio; At cero usa el reloj del caso de uso.
// UnitCost nil toma el costo unitario actual del ingrediente.
type MovementInput struct {
	IngredientID string
	Type         string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Reference    string
	Notes        string
	ActorID      string
	At           time.Time
}

// MovementResult movimiento persistido y el ingrediente ya actualizado.
type MovementResult struct {
	Movement   *entity.StockMovement
	Ingredient *entity.Ingredient
	// Clamped es true cuando una salida pedía más de lo disponible y el stock quedó en cero.
	Clamped   bool
	Shortfall decimal.Decimal
}

func (in MovementInput) validate() error {
	if in.IngredientID == "" {
		return domain.Invalid("ingredient_id", "requerido")
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.Invalid("movement_type", "tipo de movimiento desconocido")
	}
	if !in.Quantity.IsPositive() {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if err := inventory.CheckScale("quantity", in.Quantity, inventory.QuantityScale); err != nil {
		return err
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return domain.Invalid("unit_cost", "no puede ser negativo")
		}
		if err := inventory.CheckScale("unit_cost", *in.UnitCost, inventory.MoneyScale); err != nil {
			return err
		}
	}
	if in.ActorID == "" {
		return domain.Invalid("created_by", "requerido")
	}
	return nil
}

// ApplyMovement abre una transacción, bloquea el ingrediente, calcula el nuevo stock
// y escribe el movimiento. Commit si todo va bien, Rollback si algo falla (TxRunner.Run lo hace).
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var res *MovementResult
	err := uc.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		var err error
		res, err = uc.ApplyInTx(ctx, ingredientRepo, movementRepo, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ApplyInTx aplica el movimiento con repositorios ya atados a la transacción del caller
// (recepción de órdenes de compra, alta de ingredientes con stock inicial).
func (uc *ApplyMovementUseCase) ApplyInTx(
	ctx context.Context,
	ingredientRepo repository.IngredientRepository,
	movementRepo repository.StockMovementRepository,
	in MovementInput,
) (*MovementResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	at := in.At
	if at.IsZero() {
		at = uc.now()
	}

	// Bloquea la fila del ingrediente para serializar movimientos concurrentes
	ing, err := ingredientRepo.GetForUpdate(ctx, in.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("lock ingredient: %w", err)
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}

	previous := ing.CurrentStock
	next, err := inventory.NextStock(in.Type, previous, in.Quantity)
	if err != nil {
		return nil, err
	}
	unitCost := ing.UnitCost
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
	}

	if err := ingredientRepo.UpdateStock(ctx, ing.ID, next, at); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		IngredientID:   ing.ID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		PreviousStock:  previous,
		NewStock:       next,
		UnitCost:       unitCost,
		TotalValue:     inventory.MovementValue(in.Quantity, unitCost),
		Reference:      in.Reference,
		Notes:          in.Notes,
		CreatedBy:      in.ActorID,
		CreatedAt:      at,
		IngredientName: ing.Name,
		IngredientUnit: ing.Unit,
	}
	if err := movementRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("create movement: %w", err)
	}

	ing.CurrentStock = next
	ing.UpdatedAt = at
	shortfall := inventory.Shortfall(in.Type, previous, in.Quantity)

	ev := uc.log.Info()
	if shortfall.IsPositive() {
		ev = uc.log.Warn().Str("shortfall", shortfall.String())
	}
	ev.Str("ingredient_id", ing.ID).
		Str("ingredient", ing.Name).
		Str("type", in.Type).
		Str("quantity", in.Quantity.String()).
		Str("previous_stock", previous.String()).
		Str("new_stock", next.String()).
		Str("actor", in.ActorID).
		Msg("movimiento de inventario aplicado")

	return &MovementResult{
		Movement:   mov,
		Ingredient: ing,
		Clamped:    shortfall.IsPositive(),
		Shortfall:  shortfall,
	}, nil
}
