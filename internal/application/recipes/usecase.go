// Package recipes contiene los casos de uso de recetas y la verificación de disponibilidad.
package recipes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	stock "github.com/sweetbite/bakery-api/internal/domain/inventory"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con el repositorio de recetas.
type TxRunner interface {
	RunRecipes(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error
}

// RecipeUseCase crea y consulta recetas.
type RecipeUseCase struct {
	txRunner       TxRunner
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	now            func() time.Time
}

// NewRecipeUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewRecipeUseCase(
	txRunner TxRunner,
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	now func() time.Time,
) *RecipeUseCase {
	if now == nil {
		now = time.Now
	}
	return &RecipeUseCase{txRunner: txRunner, recipeRepo: recipeRepo, ingredientRepo: ingredientRepo, now: now}
}

// Create guarda la receta y sus líneas en una sola transacción.
func (uc *RecipeUseCase) Create(ctx context.Context, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if len(in.Ingredients) == 0 {
		return nil, domain.Invalid("ingredients", "la receta debe tener al menos un ingrediente")
	}
	servings := in.Servings
	if servings == 0 {
		servings = 1
	}
	if servings < 1 {
		return nil, domain.Invalid("servings", "debe ser al menos 1")
	}

	now := uc.now()
	recipe := &entity.Recipe{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  in.Description,
		Servings:     servings,
		Instructions: in.Instructions,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, line := range in.Ingredients {
		if !line.Quantity.IsPositive() {
			return nil, domain.Invalid(fmt.Sprintf("ingredients[%d].quantity", i), "debe ser mayor que cero")
		}
		if err := stock.CheckScale(fmt.Sprintf("ingredients[%d].quantity", i), line.Quantity, stock.QuantityScale); err != nil {
			return nil, err
		}
		if !entity.ValidUnit(line.Unit) {
			return nil, domain.Invalid(fmt.Sprintf("ingredients[%d].unit", i), "unidad no admitida")
		}
		ing, err := uc.ingredientRepo.GetByID(ctx, line.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, line.IngredientID)
		}
		recipe.Ingredients = append(recipe.Ingredients, entity.RecipeIngredient{
			ID:             uuid.New().String(),
			RecipeID:       recipe.ID,
			IngredientID:   ing.ID,
			Quantity:       line.Quantity,
			Unit:           line.Unit,
			Notes:          line.Notes,
			IngredientName: ing.Name,
			CurrentStock:   ing.CurrentStock,
		})
	}

	err := uc.txRunner.RunRecipes(ctx, func(recipeRepo repository.RecipeRepository) error {
		if err := recipeRepo.Create(ctx, recipe); err != nil {
			return err
		}
		for i := range recipe.Ingredients {
			if err := recipeRepo.CreateIngredient(ctx, &recipe.Ingredients[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromRecipe(recipe)
	return &out, nil
}

// Get obtiene una receta con sus líneas.
func (uc *RecipeUseCase) Get(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromRecipe(r)
	return &out, nil
}

// List lista recetas ordenadas por nombre.
func (uc *RecipeUseCase) List(ctx context.Context, activeOnly bool) ([]dto.RecipeResponse, error) {
	list, err := uc.recipeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.FromRecipe(r))
	}
	return out, nil
}

// CheckAvailability compara lo requerido (cantidad × porciones) contra el stock actual.
// servings 0 equivale a 1.
func (uc *RecipeUseCase) CheckAvailability(ctx context.Context, id string, servings int) (*dto.AvailabilityResponse, error) {
	if servings == 0 {
		servings = 1
	}
	if servings < 1 {
		return nil, domain.Invalid("servings", "debe ser al menos 1")
	}
	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	factor := decimal.NewFromInt(int64(servings))
	shortages := make([]dto.ShortageDTO, 0)
	for _, line := range r.Ingredients {
		required := line.Quantity.Mul(factor)
		if line.CurrentStock.LessThan(required) {
			shortages = append(shortages, dto.ShortageDTO{
				Ingredient: line.IngredientName,
				Required:   required,
				Available:  line.CurrentStock,
				Shortage:   required.Sub(line.CurrentStock),
			})
		}
	}
	return &dto.AvailabilityResponse{
		Recipe:                 r.Name,
		Servings:               servings,
		Available:              len(shortages) == 0,
		UnavailableIngredients: shortages,
	}, nil
}

func (uc *RecipeUseCase) load(ctx context.Context, id string) (*entity.Recipe, error) {
	r, err := uc.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}
