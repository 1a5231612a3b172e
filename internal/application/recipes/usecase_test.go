package recipes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/recipes"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

type memIngredients struct {
	repository.IngredientRepository
	items map[string]*entity.Ingredient
}

func (m *memIngredients) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	return m.items[id], nil
}

// memRecipes resuelve el stock actual al leer, como el JOIN del repositorio real.
type memRecipes struct {
	ings    *memIngredients
	recipes map[string]entity.Recipe
	lines   []entity.RecipeIngredient
	failOn  int // falla el enésimo CreateIngredient (1-based); 0 nunca
}

func (m *memRecipes) Create(_ context.Context, r *entity.Recipe) error {
	cp := *r
	cp.Ingredients = nil
	m.recipes[r.ID] = cp
	return nil
}

func (m *memRecipes) CreateIngredient(_ context.Context, ri *entity.RecipeIngredient) error {
	if m.failOn > 0 && len(m.lines)+1 == m.failOn {
		return errors.New("insert falló")
	}
	m.lines = append(m.lines, *ri)
	return nil
}

func (m *memRecipes) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	r, ok := m.recipes[id]
	if !ok {
		return nil, nil
	}
	for _, l := range m.lines {
		if l.RecipeID == id {
			ing := m.ings.items[l.IngredientID]
			l.IngredientName, l.CurrentStock = ing.Name, ing.CurrentStock
			r.Ingredients = append(r.Ingredients, l)
		}
	}
	return &r, nil
}

func (m *memRecipes) List(ctx context.Context, activeOnly bool) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for id, r := range m.recipes {
		if activeOnly && !r.IsActive {
			continue
		}
		full, _ := m.GetByID(ctx, id)
		out = append(out, full)
	}
	return out, nil
}

type memTx struct{ repo *memRecipes }

func (tx *memTx) RunRecipes(ctx context.Context, fn func(repository.RecipeRepository) error) error {
	recipes := make(map[string]entity.Recipe, len(tx.repo.recipes))
	for k, v := range tx.repo.recipes {
		recipes[k] = v
	}
	n := len(tx.repo.lines)
	if err := fn(tx.repo); err != nil {
		tx.repo.recipes, tx.repo.lines = recipes, tx.repo.lines[:n]
		return err
	}
	return nil
}

const (
	flourID = "11111111-1111-1111-1111-111111111111"
	eggsID  = "22222222-2222-2222-2222-222222222222"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup() (*recipes.RecipeUseCase, *memRecipes) {
	ings := &memIngredients{items: map[string]*entity.Ingredient{
		flourID: {ID: flourID, Name: "Harina", Unit: "kg", CurrentStock: dec("1.5")},
		eggsID:  {ID: eggsID, Name: "Huevos", Unit: "pcs", CurrentStock: dec("12")},
	}}
	repo := &memRecipes{ings: ings, recipes: map[string]entity.Recipe{}}
	clock := func() time.Time { return time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC) }
	return recipes.NewRecipeUseCase(&memTx{repo: repo}, repo, ings, clock), repo
}

func spongeCake() dto.CreateRecipeRequest {
	return dto.CreateRecipeRequest{
		Name: "Bizcocho base",
		Ingredients: []dto.RecipeLineInput{
			{IngredientID: flourID, Quantity: dec("0.5"), Unit: "kg"},
			{IngredientID: eggsID, Quantity: dec("4"), Unit: "pcs"},
		},
	}
}

func TestCreate(t *testing.T) {
	uc, repo := setup()

	r, err := uc.Create(context.Background(), spongeCake())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Servings, "porciones por defecto")
	assert.True(t, r.IsActive)
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "Harina", r.Ingredients[0].IngredientName)
	assert.Len(t, repo.lines, 2)

	got, err := uc.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bizcocho base", got.Name)

	list, err := uc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_Errores(t *testing.T) {
	uc, repo := setup()

	req := spongeCake()
	req.Ingredients[1].IngredientID = "99999999-9999-9999-9999-999999999999"
	_, err := uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = spongeCake()
	req.Ingredients[0].Quantity = decimal.Zero
	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.failOn = 2
	_, err = uc.Create(context.Background(), spongeCake())
	require.Error(t, err)
	assert.Empty(t, repo.recipes, "rollback de la cabecera")
	assert.Empty(t, repo.lines)
}

func TestCheckAvailability(t *testing.T) {
	uc, _ := setup()
	r, err := uc.Create(context.Background(), spongeCake())
	require.NoError(t, err)

	out, err := uc.CheckAvailability(context.Background(), r.ID, 0)
	require.NoError(t, err)
	assert.True(t, out.Available)
	assert.Equal(t, 1, out.Servings)
	assert.Empty(t, out.UnavailableIngredients)

	out, err = uc.CheckAvailability(context.Background(), r.ID, 4)
	require.NoError(t, err)
	assert.False(t, out.Available)
	require.Len(t, out.UnavailableIngredients, 2)
	flour := out.UnavailableIngredients[0]
	assert.Equal(t, "Harina", flour.Ingredient)
	assert.True(t, flour.Required.Equal(dec("2")))
	assert.True(t, flour.Available.Equal(dec("1.5")))
	assert.True(t, flour.Shortage.Equal(dec("0.5")))
	assert.True(t, out.UnavailableIngredients[1].Shortage.Equal(dec("4")))

	_, err = uc.CheckAvailability(context.Background(), r.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CheckAvailability(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
