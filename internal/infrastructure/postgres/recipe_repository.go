package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

const recipeColumns = `id, name, description, servings, instructions, is_active, created_at, updated_at`

func (r *RecipeRepo) Create(ctx context.Context, rc *entity.Recipe) error {
	_, err := r.q.Exec(ctx, `INSERT INTO recipes (`+recipeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rc.ID, rc.Name, rc.Description, rc.Servings, rc.Instructions, rc.IsActive, rc.CreatedAt, rc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepo) CreateIngredient(ctx context.Context, ri *entity.RecipeIngredient) error {
	const query = `
		INSERT INTO recipe_ingredients (id, recipe_id, ingredient_id, quantity, unit, notes, position)
		VALUES ($1, $2, $3, $4, $5, $6,
			(SELECT COUNT(*) FROM recipe_ingredients WHERE recipe_id = $2))`
	_, err := r.q.Exec(ctx, query, ri.ID, ri.RecipeID, ri.IngredientID, ri.Quantity, ri.Unit, ri.Notes)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ingrediente repetido en la receta: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("create recipe ingredient: %w", err)
	}
	return nil
}

// GetByID receta con líneas y stock actual de cada ingrediente. (nil, nil) si no existe.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	var rc entity.Recipe
	err := r.q.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id).Scan(
		&rc.ID, &rc.Name, &rc.Description, &rc.Servings, &rc.Instructions, &rc.IsActive, &rc.CreatedAt, &rc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT ri.id, ri.recipe_id, ri.ingredient_id, ri.quantity, ri.unit, ri.notes, i.name, i.current_stock
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = $1
		ORDER BY ri.position, ri.id`, id)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ri entity.RecipeIngredient
		if err := rows.Scan(&ri.ID, &ri.RecipeID, &ri.IngredientID, &ri.Quantity, &ri.Unit, &ri.Notes,
			&ri.IngredientName, &ri.CurrentStock); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		rc.Ingredients = append(rc.Ingredients, ri)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	return &rc, nil
}

// List recetas por nombre, sin líneas.
func (r *RecipeRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes`
	if activeOnly {
		query += ` WHERE is_active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rc entity.Recipe
		if err := rows.Scan(&rc.ID, &rc.Name, &rc.Description, &rc.Servings, &rc.Instructions,
			&rc.IsActive, &rc.CreatedAt, &rc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rc)
	}
	return list, rows.Err()
}
