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

var (
	_ repository.CakeRepository  = (*CakeRepo)(nil)
	_ repository.OrderRepository = (*OrderRepo)(nil)
)

// ── Tortas ──────────────────────────────────────────────────────────────────

// CakeRepo catálogo de tortas sobre PostgreSQL.
type CakeRepo struct {
	q Querier
}

// NewCakeRepository construye el adaptador.
func NewCakeRepository(q Querier) *CakeRepo {
	return &CakeRepo{q: q}
}

// Create persiste una torta.
func (r *CakeRepo) Create(ctx context.Context, c *entity.Cake) error {
	const query = `
		INSERT INTO cakes (id, name, description, price, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Description, c.Price, c.IsAvailable, c.CreatedAt); err != nil {
		return fmt.Errorf("create cake: %w", err)
	}
	return nil
}

// GetByID obtiene una torta. (nil, nil) si no existe.
func (r *CakeRepo) GetByID(ctx context.Context, id string) (*entity.Cake, error) {
	var c entity.Cake
	err := r.q.QueryRow(ctx, `
		SELECT id, name, description, price, is_available, created_at
		FROM cakes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.IsAvailable, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cake: %w", err)
	}
	return &c, nil
}

// List lista tortas por nombre.
func (r *CakeRepo) List(ctx context.Context, availableOnly bool) ([]*entity.Cake, error) {
	query := `SELECT id, name, description, price, is_available, created_at FROM cakes`
	if availableOnly {
		query += ` WHERE is_available`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list cakes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cake
	for rows.Next() {
		var c entity.Cake
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.IsAvailable, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cake: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ── Pedidos ─────────────────────────────────────────────────────────────────

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `
	id, order_number, customer_id, order_type, order_status, payment_status, payment_method,
	shipping_address_id, delivery_address, delivery_instructions, delivery_person_id, assigned_staff_id,
	delivery_date, subtotal, tax, delivery_fee, total_amount, created_at, updated_at, confirmed_at, delivered_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderType, &o.OrderStatus, &o.PaymentStatus, &o.PaymentMethod,
		&o.ShippingAddressID, &o.DeliveryAddress, &o.DeliveryInstructions, &o.DeliveryPersonID, &o.AssignedStaffID,
		&o.DeliveryDate, &o.Subtotal, &o.Tax, &o.DeliveryFee, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
		&o.ConfirmedAt, &o.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste la cabecera del pedido. Las líneas van con CreateItem en la misma tx.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.CustomerID, o.OrderType, o.OrderStatus, o.PaymentStatus, o.PaymentMethod,
		o.ShippingAddressID, o.DeliveryAddress, o.DeliveryInstructions, o.DeliveryPersonID, o.AssignedStaffID,
		o.DeliveryDate, o.Subtotal, o.Tax, o.DeliveryFee, o.TotalAmount, o.CreatedAt, o.UpdatedAt,
		o.ConfirmedAt, o.DeliveredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create order %s: %w", o.OrderNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea; la posición conserva el orden de la solicitud.
func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	const query = `
		INSERT INTO order_items (id, order_id, cake_id, quantity, unit_price, total_price, customization_notes, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			(SELECT COUNT(*) FROM order_items WHERE order_id = $2))`
	_, err := r.q.Exec(ctx, query, it.ID, it.OrderID, it.CakeID, it.Quantity, it.UnitPrice, it.TotalPrice, it.CustomizationNotes)
	if err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

// AddHistory registra un cambio de estado.
func (r *OrderRepo) AddHistory(ctx context.Context, h *entity.OrderStatusHistory) error {
	const query = `
		INSERT INTO order_status_history (id, order_id, status, notes, updated_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, h.ID, h.OrderID, h.Status, h.Notes, h.UpdatedBy, h.CreatedAt); err != nil {
		return fmt.Errorf("add order history: %w", err)
	}
	return nil
}

// GetByID carga el pedido con líneas e historial. (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la cabecera.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}
	if o.History, err = r.history(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) items(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.cake_id, oi.quantity, oi.unit_price, oi.total_price,
			oi.customization_notes, c.name
		FROM order_items oi
		JOIN cakes c ON c.id = oi.cake_id
		WHERE oi.order_id = $1
		ORDER BY oi.position, oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.CakeID, &it.Quantity, &it.UnitPrice, &it.TotalPrice,
			&it.CustomizationNotes, &it.CakeName); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepo) history(ctx context.Context, orderID string) ([]entity.OrderStatusHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, status, notes, updated_by, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order history: %w", err)
	}
	defer rows.Close()
	var list []entity.OrderStatusHistory
	for rows.Next() {
		var h entity.OrderStatusHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.Status, &h.Notes, &h.UpdatedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order history: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// UpdateStatus persiste estado y marcas de tiempo del ciclo de vida.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET order_status = $2, confirmed_at = $3, delivered_at = $4, updated_at = $5
		WHERE id = $1`, o.ID, o.OrderStatus, o.ConfirmedAt, o.DeliveredAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateAssignment persiste repartidor y personal asignado.
func (r *OrderRepo) UpdateAssignment(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET delivery_person_id = $2, assigned_staff_id = $3, updated_at = $4
		WHERE id = $1`, o.ID, o.DeliveryPersonID, o.AssignedStaffID, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) UpdatePayment(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET payment_status = $2, payment_method = $3, updated_at = $4
		WHERE id = $1`, o.ID, o.PaymentStatus, o.PaymentMethod, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List pedidos más recientes primero. Las líneas se cargan para cada pedido de la página.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	w := orderWhere(f)
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	query := `SELECT ` + orderColumns + ` FROM orders` + where + ` ORDER BY created_at DESC, id DESC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	for _, o := range list {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// orderWhere traduce el filtro a condiciones; lo comparte el repositorio de analítica.
func orderWhere(f repository.OrderFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.Status != "" {
		w.add("order_status = $%d", f.Status)
	}
	if f.PaymentStatus != "" {
		w.add("payment_status = $%d", f.PaymentStatus)
	}
	if f.OrderType != "" {
		w.add("order_type = $%d", f.OrderType)
	}
	if f.CustomerID != "" {
		w.add("customer_id = $%d", f.CustomerID)
	}
	if f.DeliveryPersonID != "" {
		w.add("delivery_person_id = $%d", f.DeliveryPersonID)
	}
	if f.StaffID != "" {
		w.add("(assigned_staff_id = $%d OR assigned_staff_id IS NULL)", f.StaffID)
	}
	return w
}
