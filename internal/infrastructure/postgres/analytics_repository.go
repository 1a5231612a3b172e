package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para los reportes de inventario y ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// ── Inventario ──────────────────────────────────────────────────────────────

// GetConsumption suma cantidades de movimientos out y waste por ingrediente.
func (r *AnalyticsRepo) GetConsumption(ctx context.Context, start, end time.Time) ([]repository.ConsumptionResult, error) {
	rows, err := r.consumption(ctx, []string{entity.MovementOut, entity.MovementWaste}, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetConsumption: %w", err)
	}
	return rows, nil
}

// GetWastage igual que GetConsumption pero solo merma.
func (r *AnalyticsRepo) GetWastage(ctx context.Context, start, end time.Time) ([]repository.ConsumptionResult, error) {
	rows, err := r.consumption(ctx, []string{entity.MovementWaste}, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetWastage: %w", err)
	}
	return rows, nil
}

func (r *AnalyticsRepo) consumption(ctx context.Context, types []string, start, end time.Time) ([]repository.ConsumptionResult, error) {
	const query = `
	SELECT
	    i.id,
	    i.name,
	    i.unit,
	    i.current_stock,
	    SUM(m.quantity)  AS total_consumed,
	    COUNT(m.id)      AS movement_count
	FROM stock_movements m
	JOIN ingredients     i ON i.id = m.ingredient_id
	WHERE m.movement_type = ANY($1)
	  AND m.created_at >= $2
	  AND m.created_at <  $3
	GROUP BY i.id, i.name, i.unit, i.current_stock
	ORDER BY total_consumed DESC, i.name`

	rows, err := r.q.Query(ctx, query, types, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []repository.ConsumptionResult
	for rows.Next() {
		var row repository.ConsumptionResult
		if err := rows.Scan(
			&row.IngredientID,
			&row.Name,
			&row.Unit,
			&row.CurrentStock,
			&row.TotalConsumed,
			&row.MovementCount,
		); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMovementsByType agrupa movimientos por tipo.
func (r *AnalyticsRepo) GetMovementsByType(ctx context.Context, start, end time.Time) ([]repository.MovementGroupResult, error) {
	const query = `
	SELECT
	    m.movement_type,
	    COUNT(m.id),
	    COALESCE(SUM(m.quantity), 0),
	    COALESCE(SUM(m.total_value), 0)
	FROM stock_movements m
	WHERE m.created_at >= $1
	  AND m.created_at <  $2
	GROUP BY m.movement_type
	ORDER BY m.movement_type`
	res, err := r.movementGroups(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMovementsByType: %w", err)
	}
	return res, nil
}

// GetMovementsByIngredient agrupa movimientos por nombre de ingrediente.
func (r *AnalyticsRepo) GetMovementsByIngredient(ctx context.Context, start, end time.Time) ([]repository.MovementGroupResult, error) {
	const query = `
	SELECT
	    i.name,
	    COUNT(m.id),
	    COALESCE(SUM(m.quantity), 0),
	    COALESCE(SUM(m.total_value), 0)
	FROM stock_movements m
	JOIN ingredients     i ON i.id = m.ingredient_id
	WHERE m.created_at >= $1
	  AND m.created_at <  $2
	GROUP BY i.id, i.name
	ORDER BY COUNT(m.id) DESC, i.name`
	res, err := r.movementGroups(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMovementsByIngredient: %w", err)
	}
	return res, nil
}

func (r *AnalyticsRepo) movementGroups(ctx context.Context, query string, args ...any) ([]repository.MovementGroupResult, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []repository.MovementGroupResult
	for rows.Next() {
		var row repository.MovementGroupResult
		if err := rows.Scan(&row.Key, &row.Count, &row.TotalQuantity, &row.TotalValue); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetInventorySnapshot totales sobre ingredientes activos.
func (r *AnalyticsRepo) GetInventorySnapshot(ctx context.Context) (repository.InventorySnapshot, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COUNT(*) FILTER (WHERE current_stock <= minimum_stock),
	    COALESCE(SUM(current_stock * unit_cost), 0)
	FROM ingredients
	WHERE is_active`
	var snap repository.InventorySnapshot
	if err := r.q.QueryRow(ctx, query).Scan(&snap.TotalIngredients, &snap.LowStockCount, &snap.TotalValue); err != nil {
		return repository.InventorySnapshot{}, fmt.Errorf("analytics.GetInventorySnapshot: %w", err)
	}
	return snap, nil
}

// GetValueBySupplier valor del inventario activo por proveedor. Sin proveedor se agrupa aparte.
func (r *AnalyticsRepo) GetValueBySupplier(ctx context.Context) ([]repository.SupplierValueResult, error) {
	const query = `
	SELECT
	    COALESCE(s.name, 'Sin proveedor')               AS supplier_name,
	    COALESCE(SUM(i.current_stock * i.unit_cost), 0) AS total_value,
	    COUNT(i.id)                                     AS ingredient_count,
	    COALESCE(AVG(i.unit_cost), 0)                   AS avg_unit_cost
	FROM ingredients    i
	LEFT JOIN suppliers s ON s.id = i.supplier_id
	WHERE i.is_active
	GROUP BY s.id, s.name
	ORDER BY total_value DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetValueBySupplier: %w", err)
	}
	defer rows.Close()
	var results []repository.SupplierValueResult
	for rows.Next() {
		var row repository.SupplierValueResult
		if err := rows.Scan(&row.SupplierName, &row.TotalValue, &row.Count, &row.AvgUnitCost); err != nil {
			return nil, fmt.Errorf("analytics.GetValueBySupplier scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopByUnitCost ingredientes activos de mayor costo unitario.
func (r *AnalyticsRepo) GetTopByUnitCost(ctx context.Context, limit int, lowStockOnly bool) ([]*entity.Ingredient, error) {
	query := `SELECT` + ingredientColumns + ingredientFrom + ` WHERE i.is_active`
	if lowStockOnly {
		query += ` AND i.current_stock <= i.minimum_stock`
	}
	query += ` ORDER BY i.unit_cost DESC, i.name LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopByUnitCost: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics.GetTopByUnitCost scan: %w", err)
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

// ── Ventas ──────────────────────────────────────────────────────────────────

// GetSalesTotals suma total_amount de pedidos creados en [start, end).
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	var (
		total decimal.Decimal
		count int
	)
	err := r.q.QueryRow(ctx, `
	SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
	FROM orders
	WHERE created_at >= $1 AND created_at < $2`, start, end).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesTotals: %w", err)
	}
	return total, count, nil
}

// GetSalesByStatus ventas agrupadas por estado del pedido.
func (r *AnalyticsRepo) GetSalesByStatus(ctx context.Context, start, end time.Time) ([]repository.SalesGroupResult, error) {
	res, err := r.salesGroups(ctx, "order_status", start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByStatus: %w", err)
	}
	return res, nil
}

// GetSalesByPayment ventas agrupadas por método de pago.
func (r *AnalyticsRepo) GetSalesByPayment(ctx context.Context, start, end time.Time) ([]repository.SalesGroupResult, error) {
	res, err := r.salesGroups(ctx, "payment_method", start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByPayment: %w", err)
	}
	return res, nil
}

// salesGroups column es una constante interna, nunca entrada del usuario.
func (r *AnalyticsRepo) salesGroups(ctx context.Context, column string, start, end time.Time) ([]repository.SalesGroupResult, error) {
	query := fmt.Sprintf(`
	SELECT %[1]s, COUNT(*), COALESCE(SUM(total_amount), 0)
	FROM orders
	WHERE created_at >= $1 AND created_at < $2
	GROUP BY %[1]s
	ORDER BY COUNT(*) DESC, %[1]s`, column)

	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []repository.SalesGroupResult
	for rows.Next() {
		var row repository.SalesGroupResult
		if err := rows.Scan(&row.Key, &row.Count, &row.Total); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetOrderStatusCounts cuenta pedidos por estado dentro del alcance del filtro.
func (r *AnalyticsRepo) GetOrderStatusCounts(ctx context.Context, f repository.OrderFilter) (map[string]int, error) {
	w := orderWhere(f)
	rows, err := r.q.Query(ctx, `SELECT order_status, COUNT(*) FROM orders`+w.sql()+` GROUP BY order_status`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetOrderStatusCounts: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.GetOrderStatusCounts scan: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// GetTopSellingCakes tortas más vendidas en pedidos entregados creados en [start, end).
func (r *AnalyticsRepo) GetTopSellingCakes(ctx context.Context, start, end time.Time, limit int) ([]repository.TopCakeResult, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    c.price,
	    SUM(oi.quantity)            AS total_quantity,
	    SUM(oi.total_price)         AS total_revenue,
	    COUNT(DISTINCT o.id)        AS order_count
	FROM order_items oi
	JOIN orders      o ON o.id = oi.order_id
	JOIN cakes       c ON c.id = oi.cake_id
	WHERE o.order_status = 'delivered'
	  AND o.created_at >= $1
	  AND o.created_at <  $2
	GROUP BY c.id, c.name, c.price
	ORDER BY total_quantity DESC, total_revenue DESC, c.name
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopSellingCakes: %w", err)
	}
	defer rows.Close()
	var results []repository.TopCakeResult
	for rows.Next() {
		var row repository.TopCakeResult
		if err := rows.Scan(
			&row.CakeID,
			&row.Name,
			&row.UnitPrice,
			&row.TotalQuantity,
			&row.TotalRevenue,
			&row.OrderCount,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetTopSellingCakes scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetCustomerOrderStats agrega pedidos entregados por cliente.
func (r *AnalyticsRepo) GetCustomerOrderStats(ctx context.Context) ([]repository.CustomerOrderStats, error) {
	const query = `
	SELECT
	    u.id,
	    COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username) AS name,
	    COUNT(o.id)         AS order_count,
	    SUM(o.total_amount) AS total_spent
	FROM orders o
	JOIN users  u ON u.id = o.customer_id
	WHERE o.order_status = 'delivered'
	GROUP BY u.id, u.first_name, u.last_name, u.username
	ORDER BY order_count DESC, total_spent DESC, u.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCustomerOrderStats: %w", err)
	}
	defer rows.Close()
	var results []repository.CustomerOrderStats
	for rows.Next() {
		var row repository.CustomerOrderStats
		if err := rows.Scan(&row.CustomerID, &row.Name, &row.OrderCount, &row.TotalSpent); err != nil {
			return nil, fmt.Errorf("analytics.GetCustomerOrderStats scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetDeliveredTotals suma total_amount de pedidos entregados creados en [start, end).
func (r *AnalyticsRepo) GetDeliveredTotals(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	var (
		total decimal.Decimal
		count int
	)
	err := r.q.QueryRow(ctx, `
	SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
	FROM orders
	WHERE order_status = 'delivered' AND created_at >= $1 AND created_at < $2`, start, end).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetDeliveredTotals: %w", err)
	}
	return total, count, nil
}

// GetDailySales ventas entregadas por día en [start, end). La sesión corre en UTC.
func (r *AnalyticsRepo) GetDailySales(ctx context.Context, start, end time.Time) ([]repository.DailySalesResult, error) {
	rows, err := r.q.Query(ctx, `
	SELECT date_trunc('day', created_at) AS day, SUM(total_amount), COUNT(*)
	FROM orders
	WHERE order_status = 'delivered' AND created_at >= $1 AND created_at < $2
	GROUP BY day
	ORDER BY day`, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDailySales: %w", err)
	}
	defer rows.Close()
	var results []repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Day, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetDailySales scan: %w", err)
		}
		row.Day = row.Day.UTC()
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlySales ventas entregadas por mes del calendario en [start, end).
func (r *AnalyticsRepo) GetMonthlySales(ctx context.Context, start, end time.Time) ([]repository.MonthlySalesResult, error) {
	rows, err := r.q.Query(ctx, `
	SELECT EXTRACT(MONTH FROM created_at)::int AS month, SUM(total_amount), COUNT(*)
	FROM orders
	WHERE order_status = 'delivered' AND created_at >= $1 AND created_at < $2
	GROUP BY month
	ORDER BY month`, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlySales: %w", err)
	}
	defer rows.Close()
	var results []repository.MonthlySalesResult
	for rows.Next() {
		var row repository.MonthlySalesResult
		if err := rows.Scan(&row.Month, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
