package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

// ConsumptionResult consumo (out + waste) agregado por ingrediente.
type ConsumptionResult struct {
	IngredientID  string
	Name          string
	Unit          string
	CurrentStock  decimal.Decimal
	TotalConsumed decimal.Decimal
	MovementCount int
}

// MovementGroupResult agregado de movimientos por una clave (tipo o ingrediente).
type MovementGroupResult struct {
	Key           string
	Count         int
	TotalQuantity decimal.Decimal
	TotalValue    decimal.Decimal
}

// SupplierValueResult valor de inventario agrupado por proveedor.
type SupplierValueResult struct {
	SupplierName string // "Sin proveedor" si el ingrediente no tiene
	TotalValue   decimal.Decimal
	Count        int
	AvgUnitCost  decimal.Decimal
}

// InventorySnapshot totales del inventario actual.
type InventorySnapshot struct {
	TotalIngredients int
	LowStockCount    int
	TotalValue       decimal.Decimal
}

// SalesGroupResult ventas agrupadas por estado o método de pago.
type SalesGroupResult struct {
	Key   string
	Count int
	Total decimal.Decimal
}

// TopCakeResult ventas por torta en pedidos entregados.
type TopCakeResult struct {
	CakeID        string
	Name          string
	UnitPrice     decimal.Decimal
	TotalQuantity int
	TotalRevenue  decimal.Decimal
	OrderCount    int
}

// CustomerOrderStats pedidos entregados de un cliente.
type CustomerOrderStats struct {
	CustomerID string
	Name       string // nombre y apellido, o username si están vacíos
	OrderCount int
	TotalSpent decimal.Decimal
}

// DailySalesResult ventas entregadas de un día (UTC).
type DailySalesResult struct {
	Day   time.Time
	Total decimal.Decimal
	Count int
}

// MonthlySalesResult ventas entregadas de un mes (1..12).
type MonthlySalesResult struct {
	Month int
	Total decimal.Decimal
	Count int
}

// AnalyticsRepository define las consultas de lectura para reportes.
// Las implementaciones son read-only (no modifican datos). Los rangos son [start, end).
type AnalyticsRepository interface {
	// ── Inventario ────────────────────────────────────────────────────────────

	// GetConsumption agrupa movimientos out y waste por ingrediente, mayor consumo primero.
	GetConsumption(ctx context.Context, start, end time.Time) ([]ConsumptionResult, error)
	// GetWastage igual que GetConsumption pero solo con movimientos waste.
	GetWastage(ctx context.Context, start, end time.Time) ([]ConsumptionResult, error)
	GetMovementsByType(ctx context.Context, start, end time.Time) ([]MovementGroupResult, error)
	GetMovementsByIngredient(ctx context.Context, start, end time.Time) ([]MovementGroupResult, error)
	GetInventorySnapshot(ctx context.Context) (InventorySnapshot, error)
	GetValueBySupplier(ctx context.Context) ([]SupplierValueResult, error)
	// GetTopByUnitCost ingredientes activos de mayor costo unitario; lowStockOnly filtra los de stock bajo.
	GetTopByUnitCost(ctx context.Context, limit int, lowStockOnly bool) ([]*entity.Ingredient, error)

	// ── Ventas ────────────────────────────────────────────────────────────────

	// GetSalesTotals suma total_amount y cuenta pedidos creados en el rango.
	GetSalesTotals(ctx context.Context, start, end time.Time) (total decimal.Decimal, count int, err error)
	GetSalesByStatus(ctx context.Context, start, end time.Time) ([]SalesGroupResult, error)
	GetSalesByPayment(ctx context.Context, start, end time.Time) ([]SalesGroupResult, error)
	// GetOrderStatusCounts cuenta pedidos por estado (todos los tiempos) dentro del alcance f.
	GetOrderStatusCounts(ctx context.Context, f OrderFilter) (map[string]int, error)
	GetTopSellingCakes(ctx context.Context, start, end time.Time, limit int) ([]TopCakeResult, error)

	// ── Clientes y estacionalidad (solo pedidos entregados) ───────────────────

	// GetCustomerOrderStats por cliente, más pedidos primero y luego mayor gasto.
	GetCustomerOrderStats(ctx context.Context) ([]CustomerOrderStats, error)
	// GetDeliveredTotals suma y cuenta pedidos entregados creados en el rango.
	GetDeliveredTotals(ctx context.Context, start, end time.Time) (total decimal.Decimal, count int, err error)
	// GetDailySales solo los días con ventas, en orden.
	GetDailySales(ctx context.Context, start, end time.Time) ([]DailySalesResult, error)
	// GetMonthlySales solo los meses con ventas, en orden.
	GetMonthlySales(ctx context.Context, start, end time.Time) ([]MonthlySalesResult, error)
}
