package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

// IngredientFilter filtros del listado de ingredientes. Campos vacíos no filtran.
type IngredientFilter struct {
	SupplierID string
	Unit       string
	Search     string // coincidencia parcial en el nombre
	LowStock   *bool
	Active     *bool
}

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el ingrediente no existe.
type IngredientRepository interface {
	Create(ctx context.Context, ing *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error)
	// Update modifica los datos descriptivos; nunca toca current_stock.
	Update(ctx context.Context, ing *entity.Ingredient) error
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal, at time.Time) error
	List(ctx context.Context, f IngredientFilter, limit, offset int) ([]*entity.Ingredient, int, error)
	ListLowStock(ctx context.Context) ([]*entity.Ingredient, error)
	// ListExpiring devuelve ingredientes activos con expiry_date en [from, to] (fechas inclusivas).
	ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Ingredient, error)
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Supplier, error)
}

// MovementFilter filtros del listado de movimientos.
type MovementFilter struct {
	IngredientID string
	Type         string
	From         *time.Time // inclusivo
	To           *time.Time // exclusivo
}

// StockMovementRepository puerto del libro de movimientos (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// List devuelve los movimientos más recientes primero y el total que cumple el filtro.
	List(ctx context.Context, f MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)
}
