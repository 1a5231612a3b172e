package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Consumo ───────────────────────────────────────────────────────────────────

// ConsumptionReportDTO análisis de consumo (out + waste) de un periodo.
type ConsumptionReportDTO struct {
	Period      PeriodDTO             `json:"period"`
	Summary     ConsumptionSummaryDTO `json:"summary"`
	Ingredients []IngredientUsageDTO  `json:"ingredients"`
	Wastage     []WastageItemDTO      `json:"wastage"`
	LowUsage    []LowUsageItemDTO     `json:"low_usage"`
}

// ConsumptionSummaryDTO totales del análisis.
type ConsumptionSummaryDTO struct {
	TotalConsumption decimal.Decimal `json:"total_consumption"`
	TotalIngredients int             `json:"total_ingredients"`
	TotalMovements   int             `json:"total_movements"`
}

// IngredientUsageDTO consumo de un ingrediente en el periodo.
type IngredientUsageDTO struct {
	IngredientID  string          `json:"ingredient_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	Consumed      decimal.Decimal `json:"consumed"`
	Percentage    decimal.Decimal `json:"percentage"` // % del consumo total, 1 decimal
	Trend         decimal.Decimal `json:"trend"`      // variación % vs periodo anterior
	MovementCount int             `json:"movement_count"`
}

// WastageItemDTO merma de un ingrediente.
type WastageItemDTO struct {
	Name       string          `json:"name"`
	Wasted     decimal.Decimal `json:"wasted"`
	Percentage decimal.Decimal `json:"percentage"`
}

// LowUsageItemDTO ingrediente activo con consumo menor al 5 % del total.
type LowUsageItemDTO struct {
	Name       string          `json:"name"`
	Consumed   decimal.Decimal `json:"consumed"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// MovementReportDTO totales y desgloses de movimientos en un rango.
type MovementReportDTO struct {
	Period       PeriodDTO          `json:"period"`
	Summary      MovementGroupDTO   `json:"summary"`
	ByType       []MovementGroupDTO `json:"by_type"`
	ByIngredient []MovementGroupDTO `json:"by_ingredient"`
}

// MovementGroupDTO agregado de movimientos. Key es el tipo o el nombre del ingrediente.
type MovementGroupDTO struct {
	Key           string          `json:"key,omitempty"`
	Count         int             `json:"count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ── Costos ────────────────────────────────────────────────────────────────────

// CostAnalysisDTO análisis de valor del inventario.
type CostAnalysisDTO struct {
	Period              PeriodDTO           `json:"period"`
	TotalInventoryValue decimal.Decimal     `json:"total_inventory_value"`
	TotalMovementValue  decimal.Decimal     `json:"total_movement_value"`
	IngredientCount     int                 `json:"ingredient_count"`
	LowStockCount       int                 `json:"low_stock_count"`
	ValueBySupplier     []SupplierValueDTO  `json:"value_by_supplier"`
	MostExpensive       []IngredientCostDTO `json:"most_expensive"`
	LowStockHighCost    []IngredientCostDTO `json:"low_stock_high_cost"`
	MovementValueByType []MovementGroupDTO  `json:"movement_value_by_type"`
}

// SupplierValueDTO valor del inventario por proveedor.
type SupplierValueDTO struct {
	SupplierName string          `json:"supplier_name"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Count        int             `json:"count"`
	AvgUnitCost  decimal.Decimal `json:"avg_unit_cost"`
}

// IngredientCostDTO ingrediente con su costo y valor en stock.
type IngredientCostDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// InventoryDashboardDTO resumen del inventario.
type InventoryDashboardDTO struct {
	TotalIngredients int                `json:"total_ingredients"`
	LowStockCount    int                `json:"low_stock_count"`
	TotalValue       decimal.Decimal    `json:"total_value"`
	RecentMovements  []MovementResponse `json:"recent_movements"`
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// SalesReportDTO ventas de un rango.
type SalesReportDTO struct {
	Period            PeriodDTO       `json:"period"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalOrders       int             `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ByStatus          []SalesGroupDTO `json:"sales_by_status"`
	ByPaymentMethod   []SalesGroupDTO `json:"sales_by_payment"`
}

// SalesGroupDTO ventas agrupadas.
type SalesGroupDTO struct {
	Key   string          `json:"key"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// OrdersDashboardDTO resumen operativo de pedidos.
type OrdersDashboardDTO struct {
	Date                 string          `json:"date"`
	TodaySales           decimal.Decimal `json:"today_sales"`
	TodayOrders          int             `json:"today_orders"`
	PendingOrders        int             `json:"pending_orders"`
	PreparingOrders      int             `json:"preparing_orders"`
	ReadyOrders          int             `json:"ready_orders"`
	OutForDeliveryOrders int             `json:"out_for_delivery_orders"`
	RecentOrders         []OrderResponse `json:"recent_orders"`
}

// TopCakesRequest query de GET /api/reports/top-cakes.
type TopCakesRequest struct {
	Period string `query:"period" validate:"omitempty,oneof=week month year"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// TopCakeDTO torta más vendida.
type TopCakeDTO struct {
	CakeID        string          `json:"cake_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	OrderCount    int             `json:"order_count"`
}

// TopCakesDTO ranking de tortas.
type TopCakesDTO struct {
	Period      PeriodDTO    `json:"period"`
	GeneratedAt time.Time    `json:"generated_at"`
	Cakes       []TopCakeDTO `json:"cakes"`
}

// ── Fidelización ─────────────────────────────────────────────────────────────

// LoyaltyInsightsDTO clientes recurrentes y métricas de retención sobre pedidos entregados.
type LoyaltyInsightsDTO struct {
	Customers LoyaltyCustomersDTO `json:"customers"`
	Metrics   LoyaltyMetricsDTO   `json:"metrics"`
	Analytics LoyaltyAnalyticsDTO `json:"analytics"`
}

type LoyaltyCustomersDTO struct {
	RepeatCustomers    int                `json:"repeat_customers"`
	TopCustomer        *LoyalCustomerDTO  `json:"top_customer"`
	TotalCustomers     int                `json:"total_customers"`
	ReturningCustomers int                `json:"returning_customers"`
	Loyal              []LoyalCustomerDTO `json:"loyal_customers"`
}

// LoyalCustomerDTO cliente con más de cinco pedidos entregados.
type LoyalCustomerDTO struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Orders     int             `json:"orders"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

type LoyaltyMetricsDTO struct {
	RetentionRate      decimal.Decimal `json:"retention_rate"`
	AvgOrderValue      decimal.Decimal `json:"avg_order_value"`
	RepeatPurchaseRate decimal.Decimal `json:"repeat_purchase_rate"`
}

type LoyaltyAnalyticsDTO struct {
	TotalLoyalCustomers  int             `json:"total_loyal_customers"`
	AvgLifetimeValue     decimal.Decimal `json:"avg_lifetime_value"`
	AvgOrdersPerCustomer decimal.Decimal `json:"avg_orders_per_customer"`
}

// ── Estacionalidad ───────────────────────────────────────────────────────────

// SeasonalRequest query de GET /api/reports/seasonal y /seasonal/yearly. Vacíos = mes y año actuales.
type SeasonalRequest struct {
	Year  int `query:"year" validate:"omitempty,min=2000,max=2100"`
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
}

// SeasonalAnalysisDTO ventas entregadas de un mes con su desglose diario y el año completo.
type SeasonalAnalysisDTO struct {
	Year          int                `json:"year"`
	Month         int                `json:"month"`
	MonthName     string             `json:"month_name"`
	Summary       SeasonalSummaryDTO `json:"summary"`
	DailySales    []DailySalesDTO    `json:"daily_sales"`
	KeyEvents     []KeySalesDayDTO   `json:"key_events"`
	YearlySummary SeasonalYearDTO    `json:"yearly_summary"`
}

type SeasonalSummaryDTO struct {
	TotalSales         decimal.Decimal `json:"total_sales"`
	TotalOrders        int             `json:"total_orders"`
	AvgOrderValue      decimal.Decimal `json:"avg_order_value"`
	PreviousMonthSales decimal.Decimal `json:"previous_month_sales"`
	GrowthRate         decimal.Decimal `json:"growth_rate"`
	KeyEventsCount     int             `json:"key_events_count"`
}

// DailySalesDTO ventas de un día del mes.
type DailySalesDTO struct {
	Day    int             `json:"day"`
	Sales  decimal.Decimal `json:"sales"`
	Orders int             `json:"orders"`
}

// KeySalesDayDTO día con ventas sobre 1.2 veces el promedio diario; pico sobre 1.5 veces.
type KeySalesDayDTO struct {
	Day    int             `json:"day"`
	Sales  decimal.Decimal `json:"sales"`
	Orders int             `json:"orders"`
	IsPeak bool            `json:"is_peak"`
}

type SeasonalYearDTO struct {
	TotalSales       decimal.Decimal   `json:"total_sales"`
	TotalOrders      int               `json:"total_orders"`
	MonthlyBreakdown []MonthlySalesDTO `json:"monthly_breakdown"`
}

// MonthlySalesDTO ventas de un mes; growth_rate contra el mes calendario anterior.
type MonthlySalesDTO struct {
	Month      int             `json:"month"`
	MonthName  string          `json:"month_name"`
	Sales      decimal.Decimal `json:"sales"`
	Orders     int             `json:"orders"`
	GrowthRate decimal.Decimal `json:"growth_rate"`
}

// YearlySeasonalDTO los doce meses de un año con mejor y peor mes.
type YearlySeasonalDTO struct {
	Year        int               `json:"year"`
	Summary     YearlySummaryDTO  `json:"summary"`
	MonthlyData []MonthlySalesDTO `json:"monthly_data"`
}

type YearlySummaryDTO struct {
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalOrders     int             `json:"total_orders"`
	AvgMonthlySales decimal.Decimal `json:"avg_monthly_sales"`
	BestMonth       MonthlySalesDTO `json:"best_month"`
	WorstMonth      MonthlySalesDTO `json:"worst_month"`
}
