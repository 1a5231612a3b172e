package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

// PurchaseOrderFilter filtros del listado de órdenes de compra.
type PurchaseOrderFilter struct {
	SupplierID string
	Statuses   []string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
// GetByID y GetForUpdate devuelven (nil, nil) si no existe, e incluyen las líneas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	CreateItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera de la orden (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateItemReceived(ctx context.Context, itemID string, received decimal.Decimal) error
	// UpdateStatus persiste status, delivery_date y updated_at.
	UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error
	List(ctx context.Context, f PurchaseOrderFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error)
}

// RecipeRepository define el puerto de persistencia para recetas.
type RecipeRepository interface {
	Create(ctx context.Context, r *entity.Recipe) error
	CreateIngredient(ctx context.Context, ri *entity.RecipeIngredient) error
	// GetByID carga la receta con sus líneas y el stock actual de cada ingrediente.
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Recipe, error)
}
