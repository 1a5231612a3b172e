package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `
	po.id, po.po_number, po.supplier_id, po.status, po.order_date, po.expected_delivery, po.delivery_date,
	po.subtotal, po.tax, po.total_amount, po.notes, po.created_by, po.created_at, po.updated_at, s.name`

const purchaseOrderFrom = `
	FROM purchase_orders po
	JOIN suppliers s ON s.id = po.supplier_id`

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.PONumber, &po.SupplierID, &po.Status, &po.OrderDate, &po.ExpectedDelivery,
		&po.DeliveryDate, &po.Subtotal, &po.Tax, &po.TotalAmount, &po.Notes, &po.CreatedBy,
		&po.CreatedAt, &po.UpdatedAt, &po.SupplierName)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// Create persiste la cabecera.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	const query = `
		INSERT INTO purchase_orders (id, po_number, supplier_id, status, order_date, expected_delivery, delivery_date,
			subtotal, tax, total_amount, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query, po.ID, po.PONumber, po.SupplierID, po.Status, po.OrderDate, po.ExpectedDelivery,
		po.DeliveryDate, po.Subtotal, po.Tax, po.TotalAmount, po.Notes, po.CreatedBy, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create purchase order %s: %w", po.PONumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("create purchase order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea al final de la orden.
func (r *PurchaseOrderRepo) CreateItem(ctx context.Context, it *entity.PurchaseOrderItem) error {
	const query = `
		INSERT INTO purchase_order_items (id, purchase_order_id, ingredient_id, quantity, unit_cost, total_cost,
			received_quantity, notes, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COUNT(*) FROM purchase_order_items WHERE purchase_order_id = $2))`
	_, err := r.q.Exec(ctx, query, it.ID, it.PurchaseOrderID, it.IngredientID, it.Quantity, it.UnitCost,
		it.TotalCost, it.ReceivedQuantity, it.Notes)
	if err != nil {
		return fmt.Errorf("create purchase order item: %w", err)
	}
	return nil
}

// GetByID orden con sus líneas. (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT`+purchaseOrderColumns+purchaseOrderFrom+` WHERE po.id = $1`, id)
}

// GetForUpdate bloquea la cabecera; las líneas se leen dentro de la misma tx.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT`+purchaseOrderColumns+purchaseOrderFrom+` WHERE po.id = $1 FOR UPDATE OF po`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if po.Items, err = r.items(ctx, po.ID); err != nil {
		return nil, err
	}
	return po, nil
}

func (r *PurchaseOrderRepo) items(ctx context.Context, poID string) ([]entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT it.id, it.purchase_order_id, it.ingredient_id, it.quantity, it.unit_cost, it.total_cost,
			it.received_quantity, it.notes, i.name
		FROM purchase_order_items it
		JOIN ingredients i ON i.id = it.ingredient_id
		WHERE it.purchase_order_id = $1
		ORDER BY it.position, it.id`, poID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.IngredientID, &it.Quantity, &it.UnitCost,
			&it.TotalCost, &it.ReceivedQuantity, &it.Notes, &it.IngredientName); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateItemReceived fija la cantidad recibida acumulada de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, itemID string, received decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`, itemID, received)
	if err != nil {
		return fmt.Errorf("update purchase order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus persiste status, delivery_date y updated_at.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, delivery_date = $3, updated_at = $4
		WHERE id = $1`, po.ID, po.Status, po.DeliveryDate, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List órdenes más recientes primero, con sus líneas.
func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	var w whereBuilder
	if f.SupplierID != "" {
		w.add("po.supplier_id = $%d", f.SupplierID)
	}
	if len(f.Statuses) > 0 {
		w.add("po.status = ANY($%d)", f.Statuses)
	}
	if f.DateFrom != nil {
		w.add("po.order_date >= $%d::date", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add("po.order_date <= $%d::date", *f.DateTo)
	}
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders po`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}
	query := `SELECT` + purchaseOrderColumns + purchaseOrderFrom + where +
		` ORDER BY po.created_at DESC, po.id DESC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	for _, po := range list {
		if po.Items, err = r.items(ctx, po.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}
