package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/inventory"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

const (
	flourID = "11111111-1111-1111-1111-111111111111"
	actorID = "00000000-0000-0000-0000-000000000001"
)

func flour(stock, minimum string) entity.Ingredient {
	return entity.Ingredient{
		ID:           flourID,
		Name:         "Harina",
		Unit:         entity.UnitKilogram,
		CurrentStock: dec(stock),
		MinimumStock: dec(minimum),
		UnitCost:     dec("2.50"),
		IsActive:     true,
	}
}

func newLedger(ings *memIngredients, movs *memMovements) *inventory.ApplyMovementUseCase {
	return inventory.NewApplyMovementUseCase(&memTx{ingredients: ings, movements: movs}, zerolog.Nop(), clock)
}

func TestApplyMovement_SalidaMayorAlStockQuedaEnCero(t *testing.T) {
	ings := newMemIngredients(flour("10", "5"))
	movs := &memMovements{}
	uc := newLedger(ings, movs)

	res, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: flourID,
		Type:         entity.MovementOut,
		Quantity:     dec("15"),
		ActorID:      actorID,
	})
	require.NoError(t, err)

	assert.True(t, res.Movement.PreviousStock.Equal(dec("10")))
	assert.True(t, res.Movement.NewStock.IsZero())
	assert.True(t, res.Ingredient.IsLowStock())
	assert.True(t, res.Clamped)
	assert.True(t, res.Shortfall.Equal(dec("5")))
	assert.True(t, ings.get(flourID).CurrentStock.IsZero())
}

func TestApplyMovement_CadenaDelLibro(t *testing.T) {
	ings := newMemIngredients(flour("0", "5"))
	movs := &memMovements{}
	uc := newLedger(ings, movs)

	steps := []struct {
		kind string
		qty  string
		want string
	}{
		{entity.MovementIn, "10", "10"},
		{entity.MovementOut, "3", "7"},
		{entity.MovementWaste, "20", "0"},
		{entity.MovementAdjustment, "7.5", "7.5"},
		{entity.MovementIn, "2", "9.5"},
		{entity.MovementAdjustment, "1", "1"},
	}
	for _, s := range steps {
		res, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
			IngredientID: flourID,
			Type:         s.kind,
			Quantity:     dec(s.qty),
			ActorID:      actorID,
		})
		require.NoError(t, err)
		assert.True(t, res.Movement.NewStock.Equal(dec(s.want)), "%s %s → %s, got %s", s.kind, s.qty, s.want, res.Movement.NewStock)
		assert.False(t, res.Movement.NewStock.IsNegative())
	}

	ledger := movs.forIngredient(flourID)
	require.Len(t, ledger, len(steps))
	assert.True(t, ledger[0].PreviousStock.IsZero())
	for i := 1; i < len(ledger); i++ {
		assert.True(t, ledger[i].PreviousStock.Equal(ledger[i-1].NewStock), "movimiento %d", i)
	}
	assert.True(t, ings.get(flourID).CurrentStock.Equal(ledger[len(ledger)-1].NewStock))
}

func TestApplyMovement_ConcurrentesSobreElMismoIngrediente(t *testing.T) {
	ings := newMemIngredients(flour("100", "5"))
	movs := &memMovements{}
	uc := newLedger(ings, movs)

	const workers = 40
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := inventory.MovementInput{IngredientID: flourID, Type: entity.MovementIn, Quantity: dec("2"), ActorID: actorID}
			if i%2 == 1 {
				in.Type, in.Quantity = entity.MovementOut, dec("1")
			}
			if _, err := uc.ApplyMovement(context.Background(), in); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	ledger := movs.forIngredient(flourID)
	require.Len(t, ledger, workers)
	assert.True(t, ledger[0].PreviousStock.Equal(dec("100")))
	for i := 1; i < len(ledger); i++ {
		assert.True(t, ledger[i].PreviousStock.Equal(ledger[i-1].NewStock), "movimiento %d no encadena", i)
	}
	// 20 entradas de 2 y 20 salidas de 1: ninguna actualización perdida.
	assert.True(t, ings.get(flourID).CurrentStock.Equal(dec("120")), "got %s", ings.get(flourID).CurrentStock)
	assert.True(t, ledger[len(ledger)-1].NewStock.Equal(dec("120")))
}

func TestApplyMovement_CostoUnitario(t *testing.T) {
	ings := newMemIngredients(flour("4", "1"))
	uc := newLedger(ings, &memMovements{})

	res, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: flourID, Type: entity.MovementIn, Quantity: dec("2"), ActorID: actorID,
	})
	require.NoError(t, err)
	assert.True(t, res.Movement.UnitCost.Equal(dec("2.50")), "sin unit_cost usa el del ingrediente")
	assert.True(t, res.Movement.TotalValue.Equal(dec("5")))

	cost := dec("3.10")
	res, err = uc.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: flourID, Type: entity.MovementIn, Quantity: dec("10"), UnitCost: &cost, ActorID: actorID,
	})
	require.NoError(t, err)
	assert.True(t, res.Movement.TotalValue.Equal(dec("31")))
	assert.True(t, ings.get(flourID).UnitCost.Equal(dec("2.50")), "el movimiento no cambia el costo del ingrediente")
}

func TestApplyMovement_ActorYFechaExplicitos(t *testing.T) {
	ings := newMemIngredients(flour("4", "1"))
	uc := newLedger(ings, &memMovements{})
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	res, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: flourID, Type: entity.MovementWaste, Quantity: dec("1"), ActorID: actorID, At: at,
	})
	require.NoError(t, err)
	assert.Equal(t, actorID, res.Movement.CreatedBy)
	assert.Equal(t, at, res.Movement.CreatedAt)

	res, err = uc.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: flourID, Type: entity.MovementWaste, Quantity: dec("1"), ActorID: actorID,
	})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, res.Movement.CreatedAt, "sin fecha usa el reloj inyectado")
}

func TestApplyMovement_Validaciones(t *testing.T) {
	ings := newMemIngredients(flour("4", "1"))
	movs := &memMovements{}
	uc := newLedger(ings, movs)
	neg := dec("-1")
	fine := dec("1.005")

	cases := []struct {
		name  string
		in    inventory.MovementInput
		field string
	}{
		{"cantidad cero", inventory.MovementInput{IngredientID: flourID, Type: entity.MovementIn, Quantity: decimal.Zero, ActorID: actorID}, "quantity"},
		{"cantidad negativa", inventory.MovementInput{IngredientID: flourID, Type: entity.MovementOut, Quantity: dec("-2"), ActorID: actorID}, "quantity"},
		{"tipo desconocido", inventory.MovementInput{IngredientID: flourID, Type: "transfer", Quantity: dec("1"), ActorID: actorID}, "movement_type"},
		{"sin actor", inventory.MovementInput{IngredientID: flourID, Type: entity.MovementIn, Quantity: dec("1")}, "created_by"},
		{"costo negativo", inventory.MovementInput{IngredientID: flourID, Type: entity.MovementIn, Quantity: dec("1"), UnitCost: &neg, ActorID: actorID}, "unit_cost"},
		{"cantidad bajo la escala", inventory.MovementInput{IngredientID: flourID, Type: entity.MovementIn, Quantity: dec("0.0004"), ActorID: actorID}, "quantity"},
		{"cantidad con 4 decimales", inventory.MovementInput{IngredientID: flourID, Type: entity.MovementOut, Quantity: dec("1.2345"), ActorID: actorID}, "quantity"},
		{"costo con 3 decimales", inventory.MovementInput{IngredientID: flourID, Type: entity.MovementIn, Quantity: dec("1"), UnitCost: &fine, ActorID: actorID}, "unit_cost"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ApplyMovement(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
	assert.Empty(t, movs.list)
	assert.True(t, ings.get(flourID).CurrentStock.Equal(dec("4")))
}

func TestApplyMovement_IngredienteInexistente(t *testing.T) {
	movs := &memMovements{}
	uc := newLedger(newMemIngredients(), movs)

	_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: flourID, Type: entity.MovementIn, Quantity: dec("1"), ActorID: actorID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movs.list)
}

func TestApplyFromRequest(t *testing.T) {
	ings := newMemIngredients(flour("10", "5"))
	uc := newLedger(ings, &memMovements{})

	out, err := uc.ApplyFromRequest(context.Background(), actorID, dto.ApplyMovementRequest{
		IngredientID: flourID,
		Type:         entity.MovementOut,
		Quantity:     dec("4"),
		Reference:    "Producción",
	})
	require.NoError(t, err)
	assert.False(t, out.Clamped)
	assert.Equal(t, "Producción", out.Movement.Reference)
	assert.True(t, out.Ingredient.CurrentStock.Equal(dec("6")))
	assert.False(t, out.Ingredient.IsLowStock)
	assert.True(t, out.Ingredient.TotalValue.Equal(dec("15")))
}
