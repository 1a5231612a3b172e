package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

var (
	_ repository.IngredientRepository = (*IngredientRepo)(nil)
	_ repository.SupplierRepository   = (*SupplierRepo)(nil)
)

// IngredientRepo implementación sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `
	i.id, i.name, i.description, i.unit, i.current_stock, i.minimum_stock, i.unit_cost,
	i.supplier_id, i.location, i.expiry_date, i.is_active, i.created_at, i.updated_at,
	COALESCE(s.name, '')`

const ingredientFrom = `
	FROM ingredients i
	LEFT JOIN suppliers s ON s.id = i.supplier_id`

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	if err := row.Scan(
		&ing.ID, &ing.Name, &ing.Description, &ing.Unit, &ing.CurrentStock, &ing.MinimumStock, &ing.UnitCost,
		&ing.SupplierID, &ing.Location, &ing.ExpiryDate, &ing.IsActive, &ing.CreatedAt, &ing.UpdatedAt,
		&ing.SupplierName,
	); err != nil {
		return nil, err
	}
	return &ing, nil
}

// Create persiste un ingrediente. El stock inicial lo registra el libro, no este insert.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	const query = `
		INSERT INTO ingredients (id, name, description, unit, current_stock, minimum_stock, unit_cost,
			supplier_id, location, expiry_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		ing.ID, ing.Name, ing.Description, ing.Unit, ing.CurrentStock, ing.MinimumStock, ing.UnitCost,
		ing.SupplierID, ing.Location, ing.ExpiryDate, ing.IsActive, ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente con el nombre de su proveedor. (nil, nil) si no existe.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	ing, err := scanIngredient(r.q.QueryRow(ctx, `SELECT`+ingredientColumns+ingredientFrom+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// GetForUpdate obtiene el ingrediente y bloquea su fila (no la del proveedor).
func (r *IngredientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `SELECT` + ingredientColumns + ingredientFrom + ` WHERE i.id = $1 FOR UPDATE OF i`
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient for update: %w", err)
	}
	return ing, nil
}

// Update modifica los datos descriptivos; current_stock queda fuera a propósito del SET.
func (r *IngredientRepo) Update(ctx context.Context, ing *entity.Ingredient) error {
	const query = `
		UPDATE ingredients SET
			name = $2, description = $3, unit = $4, minimum_stock = $5, unit_cost = $6,
			supplier_id = $7, location = $8, expiry_date = $9, is_active = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		ing.ID, ing.Name, ing.Description, ing.Unit, ing.MinimumStock, ing.UnitCost,
		ing.SupplierID, ing.Location, ing.ExpiryDate, ing.IsActive, ing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija current_stock. Solo lo llama el libro dentro de su transacción.
func (r *IngredientRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE ingredients SET current_stock = $2, updated_at = $3 WHERE id = $1`, id, stock, at)
	if err != nil {
		return fmt.Errorf("update ingredient stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ingredientes por nombre con filtros opcionales y el total sin paginar.
func (r *IngredientRepo) List(ctx context.Context, f repository.IngredientFilter, limit, offset int) ([]*entity.Ingredient, int, error) {
	var w whereBuilder
	if f.SupplierID != "" {
		w.add("i.supplier_id = $%d", f.SupplierID)
	}
	if f.Unit != "" {
		w.add("i.unit = $%d", f.Unit)
	}
	if f.Search != "" {
		w.add("i.name ILIKE '%%' || $%d || '%%'", f.Search)
	}
	if f.LowStock != nil {
		if *f.LowStock {
			w.addRaw("i.current_stock <= i.minimum_stock")
		} else {
			w.addRaw("i.current_stock > i.minimum_stock")
		}
	}
	if f.Active != nil {
		w.add("i.is_active = $%d", *f.Active)
	}

	where := w.sql()
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ingredients i`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ingredients: %w", err)
	}
	query := `SELECT` + ingredientColumns + ingredientFrom + where + ` ORDER BY i.name, i.id` + w.page(limit, offset)
	list, err := r.queryIngredients(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListLowStock ingredientes activos con current_stock <= minimum_stock.
func (r *IngredientRepo) ListLowStock(ctx context.Context) ([]*entity.Ingredient, error) {
	query := `SELECT` + ingredientColumns + ingredientFrom + `
		WHERE i.is_active AND i.current_stock <= i.minimum_stock
		ORDER BY i.name`
	return r.queryIngredients(ctx, query)
}

// ListExpiring ingredientes activos con expiry_date en [from, to].
func (r *IngredientRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Ingredient, error) {
	query := `SELECT` + ingredientColumns + ingredientFrom + `
		WHERE i.is_active AND i.expiry_date BETWEEN $1::date AND $2::date
		ORDER BY i.expiry_date, i.name`
	return r.queryIngredients(ctx, query, from, to)
}

func (r *IngredientRepo) queryIngredients(ctx context.Context, query string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, contact_person, email, phone, address, website, notes, is_active, created_at`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address,
		&s.Website, &s.Notes, &s.IsActive, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.Website, s.Notes, s.IsActive, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor. (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// List lista proveedores por nombre.
func (r *SupplierRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	if activeOnly {
		query += ` WHERE is_active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
