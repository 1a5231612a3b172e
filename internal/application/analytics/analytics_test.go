package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetbite/bakery-api/internal/application/analytics"
	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/orders"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type window struct{ start, end time.Time }

// stubAnalytics devuelve datos fijos; consumption se indexa por el inicio de la ventana.
type stubAnalytics struct {
	consumption  map[time.Time][]repository.ConsumptionResult
	wastage      []repository.ConsumptionResult
	byType       []repository.MovementGroupResult
	byIng        []repository.MovementGroupResult
	snapshot     repository.InventorySnapshot
	suppliers    []repository.SupplierValueResult
	topCost      []*entity.Ingredient
	salesTotal   decimal.Decimal
	salesCount   int
	byStatus     []repository.SalesGroupResult
	byPayment    []repository.SalesGroupResult
	counts       map[string]int
	topCakes     []repository.TopCakeResult
	failSupplier error
	customers    []repository.CustomerOrderStats
	delivered    map[time.Time]repository.MonthlySalesResult // por inicio de ventana
	daily        []repository.DailySalesResult
	monthly      []repository.MonthlySalesResult

	salesWindow    window
	countsFilter   repository.OrderFilter
	topCakesWindow window
	topCakesLimit  int
	monthlyWindow  window
}

func (s *stubAnalytics) GetConsumption(_ context.Context, start, end time.Time) ([]repository.ConsumptionResult, error) {
	return append([]repository.ConsumptionResult(nil), s.consumption[start]...), nil
}

func (s *stubAnalytics) GetWastage(context.Context, time.Time, time.Time) ([]repository.ConsumptionResult, error) {
	return s.wastage, nil
}

func (s *stubAnalytics) GetMovementsByType(context.Context, time.Time, time.Time) ([]repository.MovementGroupResult, error) {
	return s.byType, nil
}

func (s *stubAnalytics) GetMovementsByIngredient(context.Context, time.Time, time.Time) ([]repository.MovementGroupResult, error) {
	return s.byIng, nil
}

func (s *stubAnalytics) GetInventorySnapshot(context.Context) (repository.InventorySnapshot, error) {
	return s.snapshot, nil
}

func (s *stubAnalytics) GetValueBySupplier(context.Context) ([]repository.SupplierValueResult, error) {
	return s.suppliers, s.failSupplier
}

func (s *stubAnalytics) GetTopByUnitCost(_ context.Context, limit int, lowStockOnly bool) ([]*entity.Ingredient, error) {
	if lowStockOnly {
		var out []*entity.Ingredient
		for _, ing := range s.topCost {
			if ing.IsLowStock() {
				out = append(out, ing)
			}
		}
		return out, nil
	}
	return s.topCost, nil
}

func (s *stubAnalytics) GetSalesTotals(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	s.salesWindow = window{start, end}
	return s.salesTotal, s.salesCount, nil
}

func (s *stubAnalytics) GetSalesByStatus(context.Context, time.Time, time.Time) ([]repository.SalesGroupResult, error) {
	return s.byStatus, nil
}

func (s *stubAnalytics) GetSalesByPayment(context.Context, time.Time, time.Time) ([]repository.SalesGroupResult, error) {
	return s.byPayment, nil
}

func (s *stubAnalytics) GetOrderStatusCounts(_ context.Context, f repository.OrderFilter) (map[string]int, error) {
	s.countsFilter = f
	return s.counts, nil
}

func (s *stubAnalytics) GetTopSellingCakes(_ context.Context, start, end time.Time, limit int) ([]repository.TopCakeResult, error) {
	s.topCakesWindow, s.topCakesLimit = window{start, end}, limit
	return s.topCakes, nil
}

func (s *stubAnalytics) GetCustomerOrderStats(context.Context) ([]repository.CustomerOrderStats, error) {
	return s.customers, nil
}

func (s *stubAnalytics) GetDeliveredTotals(_ context.Context, start, _ time.Time) (decimal.Decimal, int, error) {
	r := s.delivered[start]
	return r.Total, r.Count, nil
}

func (s *stubAnalytics) GetDailySales(context.Context, time.Time, time.Time) ([]repository.DailySalesResult, error) {
	return s.daily, nil
}

func (s *stubAnalytics) GetMonthlySales(_ context.Context, start, end time.Time) ([]repository.MonthlySalesResult, error) {
	s.monthlyWindow = window{start, end}
	return s.monthly, nil
}

type stubIngredients struct {
	repository.IngredientRepository
	items []*entity.Ingredient
}

func (s *stubIngredients) List(_ context.Context, f repository.IngredientFilter, _, _ int) ([]*entity.Ingredient, int, error) {
	var out []*entity.Ingredient
	for _, ing := range s.items {
		if f.Active != nil && ing.IsActive != *f.Active {
			continue
		}
		out = append(out, ing)
	}
	return out, len(out), nil
}

type stubMovements struct {
	repository.StockMovementRepository
	items []*entity.StockMovement
	limit int
}

func (s *stubMovements) List(_ context.Context, _ repository.MovementFilter, limit, _ int) ([]*entity.StockMovement, int, error) {
	s.limit = limit
	return s.items, len(s.items), nil
}

type stubOrders struct {
	repository.OrderRepository
	items      []*entity.Order
	lastFilter repository.OrderFilter
}

func (s *stubOrders) List(_ context.Context, f repository.OrderFilter, _, _ int) ([]*entity.Order, int, error) {
	s.lastFilter = f
	return s.items, len(s.items), nil
}

type stubExporter struct {
	movements   *dto.MovementReportDTO
	consumption *dto.ConsumptionReportDTO
}

func (s *stubExporter) MovementReportXLSX(r *dto.MovementReportDTO) ([]byte, error) {
	s.movements = r
	return []byte("xlsx"), nil
}

func (s *stubExporter) ConsumptionReportXLSX(r *dto.ConsumptionReportDTO) ([]byte, error) {
	s.consumption = r
	return []byte("xlsx"), nil
}

var fixedNow = time.Date(2026, 10, 18, 16, 45, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumptionAnalysis_PorcentajesYTendencia(t *testing.T) {
	weekStart := day(2026, 10, 11)
	prevStart := day(2026, 10, 3)
	repo := &stubAnalytics{
		consumption: map[time.Time][]repository.ConsumptionResult{
			weekStart: {
				{IngredientID: "flour", Name: "Harina", Unit: "kg", CurrentStock: dec("12"), TotalConsumed: dec("30"), MovementCount: 3},
				{IngredientID: "sugar", Name: "Azúcar", Unit: "kg", CurrentStock: dec("4"), TotalConsumed: dec("70"), MovementCount: 5},
			},
			prevStart: {
				{IngredientID: "sugar", TotalConsumed: dec("50")},
			},
		},
		wastage: []repository.ConsumptionResult{{IngredientID: "flour", Name: "Harina", TotalConsumed: dec("10")}},
	}
	ings := &stubIngredients{items: []*entity.Ingredient{
		{ID: "flour", Name: "Harina", IsActive: true},
		{ID: "sugar", Name: "Azúcar", IsActive: true},
		{ID: "vanilla", Name: "Vainilla", IsActive: true},
		{ID: "old", Name: "Colorante", IsActive: false},
	}}
	uc := analytics.NewInventoryReportUseCase(repo, ings, clock)

	r, err := uc.ConsumptionAnalysis(context.Background(), dto.PeriodRequest{})
	require.NoError(t, err)

	assert.Equal(t, dto.PeriodDTO{Type: "week", StartDate: "2026-10-11", EndDate: "2026-10-18"}, r.Period)
	assert.True(t, r.Summary.TotalConsumption.Equal(dec("100")))
	assert.Equal(t, 2, r.Summary.TotalIngredients)
	assert.Equal(t, 8, r.Summary.TotalMovements)

	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "Azúcar", r.Ingredients[0].Name, "mayor consumo primero")
	assert.Equal(t, "70", r.Ingredients[0].Percentage.String())
	assert.Equal(t, "30", r.Ingredients[1].Percentage.String())
	assert.Equal(t, "40", r.Ingredients[0].Trend.String(), "70 vs 50 del periodo anterior")
	assert.True(t, r.Ingredients[1].Trend.IsZero(), "sin consumo previo la tendencia es 0")

	require.Len(t, r.Wastage, 1)
	assert.Equal(t, "10", r.Wastage[0].Percentage.String())

	require.Len(t, r.LowUsage, 1, "solo activos bajo el 5 %")
	assert.Equal(t, "Vainilla", r.LowUsage[0].Name)
	assert.True(t, r.LowUsage[0].Consumed.IsZero())
}

func TestConsumptionAnalysis_Ventanas(t *testing.T) {
	uc := analytics.NewInventoryReportUseCase(&stubAnalytics{}, &stubIngredients{}, clock)

	r, err := uc.ConsumptionAnalysis(context.Background(), dto.PeriodRequest{Period: "today"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", r.Period.StartDate)
	assert.Equal(t, "2026-10-18", r.Period.EndDate)

	r, err = uc.ConsumptionAnalysis(context.Background(), dto.PeriodRequest{StartDate: "2026-09-01", EndDate: "2026-09-30"})
	require.NoError(t, err)
	assert.Equal(t, dto.PeriodDTO{StartDate: "2026-09-01", EndDate: "2026-09-30"}, r.Period)
	assert.Empty(t, r.LowUsage, "sin consumo no hay umbral")

	_, err = uc.ConsumptionAnalysis(context.Background(), dto.PeriodRequest{StartDate: "2026-09-30", EndDate: "2026-09-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ConsumptionAnalysis(context.Background(), dto.PeriodRequest{Period: "decade"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementReport_ResumenYUltimos30Dias(t *testing.T) {
	repo := &stubAnalytics{
		byType: []repository.MovementGroupResult{
			{Key: "in", Count: 2, TotalQuantity: dec("40"), TotalValue: dec("72")},
			{Key: "out", Count: 3, TotalQuantity: dec("15"), TotalValue: dec("27.005")},
		},
		byIng: []repository.MovementGroupResult{{Key: "Harina", Count: 5, TotalQuantity: dec("55"), TotalValue: dec("99")}},
	}
	uc := analytics.NewInventoryReportUseCase(repo, &stubIngredients{}, clock)

	r, err := uc.MovementReport(context.Background(), dto.PeriodRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-18", r.Period.StartDate)
	assert.Equal(t, "2026-10-18", r.Period.EndDate)
	assert.Equal(t, 5, r.Summary.Count)
	assert.True(t, r.Summary.TotalQuantity.Equal(dec("55")))
	assert.True(t, r.Summary.TotalValue.Equal(dec("99.01")))
	assert.Len(t, r.ByType, 2)
	assert.Len(t, r.ByIngredient, 1)
}

func TestCostAnalysis(t *testing.T) {
	repo := &stubAnalytics{
		snapshot:  repository.InventorySnapshot{TotalIngredients: 3, LowStockCount: 1, TotalValue: dec("150.456")},
		suppliers: []repository.SupplierValueResult{{SupplierName: "Molinos", TotalValue: dec("100"), Count: 2, AvgUnitCost: dec("2.5")}},
		topCost: []*entity.Ingredient{
			{ID: "vanilla", Name: "Vainilla", UnitCost: dec("40"), CurrentStock: dec("1"), MinimumStock: dec("2")},
			{ID: "flour", Name: "Harina", UnitCost: dec("2"), CurrentStock: dec("20"), MinimumStock: dec("5")},
		},
		byType: []repository.MovementGroupResult{{Key: "in", Count: 1, TotalQuantity: dec("10"), TotalValue: dec("20")}},
	}
	uc := analytics.NewInventoryReportUseCase(repo, &stubIngredients{}, clock)

	r, err := uc.CostAnalysis(context.Background(), dto.PeriodRequest{})
	require.NoError(t, err)
	assert.True(t, r.TotalInventoryValue.Equal(dec("150.46")))
	assert.True(t, r.TotalMovementValue.Equal(dec("20")))
	assert.Equal(t, 3, r.IngredientCount)
	assert.Equal(t, 1, r.LowStockCount)
	assert.Len(t, r.MostExpensive, 2)
	require.Len(t, r.LowStockHighCost, 1)
	assert.Equal(t, "Vainilla", r.LowStockHighCost[0].Name)
	assert.True(t, r.MostExpensive[1].TotalValue.Equal(dec("40")))

	repo.failSupplier = errors.New("db caída")
	_, err = uc.CostAnalysis(context.Background(), dto.PeriodRequest{})
	assert.ErrorContains(t, err, "por proveedor")
}

func TestInventoryDashboard(t *testing.T) {
	repo := &stubAnalytics{snapshot: repository.InventorySnapshot{TotalIngredients: 7, LowStockCount: 2, TotalValue: dec("80")}}
	movs := &stubMovements{items: []*entity.StockMovement{{ID: "m1", Type: entity.MovementIn}}}
	uc := analytics.NewDashboardUseCase(repo, movs, &stubOrders{}, clock)

	r, err := uc.InventoryDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, r.TotalIngredients)
	assert.Equal(t, 2, r.LowStockCount)
	assert.Len(t, r.RecentMovements, 1)
	assert.Equal(t, 10, movs.limit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesReport(t *testing.T) {
	repo := &stubAnalytics{
		salesTotal: dec("100"),
		salesCount: 3,
		byStatus:   []repository.SalesGroupResult{{Key: "delivered", Count: 3, Total: dec("100")}},
		byPayment:  []repository.SalesGroupResult{{Key: "cash", Count: 3, Total: dec("100")}},
	}
	uc := analytics.NewSalesReportUseCase(repo, clock)

	r, err := uc.SalesReport(context.Background(), dto.PeriodRequest{StartDate: "2026-10-01", EndDate: "2026-10-15"})
	require.NoError(t, err)
	assert.True(t, r.AverageOrderValue.Equal(dec("33.33")))
	assert.Equal(t, day(2026, 10, 1), repo.salesWindow.start)
	assert.Equal(t, day(2026, 10, 16), repo.salesWindow.end, "end_date inclusivo")
	assert.Len(t, r.ByStatus, 1)
	assert.Len(t, r.ByPaymentMethod, 1)

	repo.salesTotal, repo.salesCount = decimal.Zero, 0
	r, err = uc.SalesReport(context.Background(), dto.PeriodRequest{})
	require.NoError(t, err)
	assert.True(t, r.AverageOrderValue.IsZero())
}

func TestOrdersDashboard_AlcancePorRol(t *testing.T) {
	repo := &stubAnalytics{
		salesTotal: dec("250"),
		salesCount: 4,
		counts:     map[string]int{entity.OrderPending: 2, entity.OrderReady: 1},
	}
	ords := &stubOrders{items: []*entity.Order{{ID: "o1", OrderNumber: "SB202610180001"}}}
	uc := analytics.NewDashboardUseCase(repo, &stubMovements{}, ords, clock)

	r, err := uc.OrdersDashboard(context.Background(), orders.Viewer{UserID: "staff-1", Role: entity.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", r.Date)
	assert.True(t, r.TodaySales.Equal(dec("250")))
	assert.Equal(t, 4, r.TodayOrders)
	assert.Equal(t, 2, r.PendingOrders)
	assert.Equal(t, 1, r.ReadyOrders)
	assert.Zero(t, r.PreparingOrders)
	assert.Len(t, r.RecentOrders, 1)

	assert.Equal(t, "staff-1", repo.countsFilter.StaffID)
	assert.Equal(t, "staff-1", ords.lastFilter.StaffID)
	assert.Equal(t, day(2026, 10, 18), repo.salesWindow.start)
	assert.Equal(t, day(2026, 10, 19), repo.salesWindow.end)
}

func TestTopSellingCakes(t *testing.T) {
	repo := &stubAnalytics{topCakes: []repository.TopCakeResult{
		{CakeID: "c1", Name: "Selva Negra", UnitPrice: dec("10"), TotalQuantity: 12, TotalRevenue: dec("120"), OrderCount: 5},
	}}
	uc := analytics.NewSalesReportUseCase(repo, clock)

	r, err := uc.TopSellingCakes(context.Background(), dto.TopCakesRequest{})
	require.NoError(t, err)
	assert.Equal(t, "month", r.Period.Type)
	assert.Equal(t, 5, repo.topCakesLimit)
	assert.Equal(t, day(2026, 9, 18), repo.topCakesWindow.start)
	require.Len(t, r.Cakes, 1)
	assert.Equal(t, 12, r.Cakes[0].TotalQuantity)

	_, err = uc.TopSellingCakes(context.Background(), dto.TopCakesRequest{Period: "year", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, repo.topCakesLimit)

	_, err = uc.TopSellingCakes(context.Background(), dto.TopCakesRequest{Period: "today"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoyaltyInsights(t *testing.T) {
	repo := &stubAnalytics{customers: []repository.CustomerOrderStats{
		{CustomerID: "c1", Name: "Ana Díaz", OrderCount: 8, TotalSpent: dec("400")},
		{CustomerID: "c2", Name: "bruno", OrderCount: 6, TotalSpent: dec("150")},
		{CustomerID: "c3", Name: "Carla Ruiz", OrderCount: 2, TotalSpent: dec("40")},
		{CustomerID: "c4", Name: "Dario", OrderCount: 1, TotalSpent: dec("10")},
	}}
	uc := analytics.NewSalesReportUseCase(repo, clock)

	r, err := uc.LoyaltyInsights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, r.Customers.TotalCustomers)
	assert.Equal(t, 3, r.Customers.ReturningCustomers)
	assert.Equal(t, 2, r.Customers.RepeatCustomers)
	require.NotNil(t, r.Customers.TopCustomer)
	assert.Equal(t, "c1", r.Customers.TopCustomer.CustomerID)
	assert.True(t, r.Metrics.RetentionRate.Equal(dec("75")), r.Metrics.RetentionRate.String())
	assert.True(t, r.Metrics.RepeatPurchaseRate.Equal(dec("50")))
	// 600 / 17 pedidos
	assert.True(t, r.Metrics.AvgOrderValue.Equal(dec("35.29")), r.Metrics.AvgOrderValue.String())
	assert.True(t, r.Analytics.AvgLifetimeValue.Equal(dec("275")))
	assert.True(t, r.Analytics.AvgOrdersPerCustomer.Equal(dec("7")))

	empty, err := analytics.NewSalesReportUseCase(&stubAnalytics{}, clock).LoyaltyInsights(context.Background())
	require.NoError(t, err)
	assert.Nil(t, empty.Customers.TopCustomer)
	assert.NotNil(t, empty.Customers.Loyal)
	assert.True(t, empty.Metrics.RetentionRate.IsZero())
}

func TestSeasonalAnalysis_DiasClaveYCrecimiento(t *testing.T) {
	repo := &stubAnalytics{
		delivered: map[time.Time]repository.MonthlySalesResult{
			day(2026, 10, 1): {Total: dec("600"), Count: 12},
			day(2026, 9, 1):  {Total: dec("400"), Count: 8},
		},
		// promedio de días con ventas = 150; línea clave 180, pico 225
		daily: []repository.DailySalesResult{
			{Day: day(2026, 10, 3), Total: dec("100"), Count: 2},
			{Day: day(2026, 10, 10), Total: dec("190"), Count: 4},
			{Day: day(2026, 10, 14), Total: dec("240"), Count: 5},
			{Day: day(2026, 10, 15), Total: dec("70"), Count: 1},
		},
		monthly: []repository.MonthlySalesResult{
			{Month: 9, Total: dec("400"), Count: 8},
			{Month: 10, Total: dec("600"), Count: 12},
		},
	}
	uc := analytics.NewSalesReportUseCase(repo, clock)

	r, err := uc.SeasonalAnalysis(context.Background(), dto.SeasonalRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2026, r.Year)
	assert.Equal(t, 10, r.Month)
	assert.Equal(t, "October", r.MonthName)
	assert.True(t, r.Summary.GrowthRate.Equal(dec("50")), r.Summary.GrowthRate.String())
	assert.True(t, r.Summary.AvgOrderValue.Equal(dec("50")))
	assert.True(t, r.Summary.PreviousMonthSales.Equal(dec("400")))
	assert.Len(t, r.DailySales, 4)

	require.Len(t, r.KeyEvents, 2)
	assert.Equal(t, 10, r.KeyEvents[0].Day)
	assert.False(t, r.KeyEvents[0].IsPeak)
	assert.Equal(t, 14, r.KeyEvents[1].Day)
	assert.True(t, r.KeyEvents[1].IsPeak)
	assert.Equal(t, 2, r.Summary.KeyEventsCount)

	require.Len(t, r.YearlySummary.MonthlyBreakdown, 12)
	assert.True(t, r.YearlySummary.TotalSales.Equal(dec("1000")))
	assert.Equal(t, 20, r.YearlySummary.TotalOrders)
	assert.Equal(t, day(2026, 1, 1), repo.monthlyWindow.start)
	assert.Equal(t, day(2027, 1, 1), repo.monthlyWindow.end)
}

func TestSeasonalAnalysis_SinMesAnterior(t *testing.T) {
	repo := &stubAnalytics{delivered: map[time.Time]repository.MonthlySalesResult{
		day(2025, 3, 1): {Total: dec("80"), Count: 2},
	}}
	uc := analytics.NewSalesReportUseCase(repo, clock)

	r, err := uc.SeasonalAnalysis(context.Background(), dto.SeasonalRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.True(t, r.Summary.GrowthRate.IsZero())
	assert.Empty(t, r.KeyEvents)
	assert.NotNil(t, r.KeyEvents)

	_, err = uc.SeasonalAnalysis(context.Background(), dto.SeasonalRequest{Month: 13})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SeasonalAnalysis(context.Background(), dto.SeasonalRequest{Year: 1999})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestYearlySeasonalSummary(t *testing.T) {
	repo := &stubAnalytics{monthly: []repository.MonthlySalesResult{
		{Month: 2, Total: dec("100"), Count: 2},
		{Month: 3, Total: dec("150"), Count: 3},
		{Month: 12, Total: dec("350"), Count: 7},
	}}
	uc := analytics.NewSalesReportUseCase(repo, clock)

	r, err := uc.YearlySeasonalSummary(context.Background(), dto.SeasonalRequest{Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 2025, r.Year)
	require.Len(t, r.MonthlyData, 12)
	assert.Equal(t, "January", r.MonthlyData[0].MonthName)
	assert.True(t, r.MonthlyData[0].Sales.IsZero())
	assert.True(t, r.MonthlyData[1].GrowthRate.IsZero(), "sin ventas el mes anterior")
	assert.True(t, r.MonthlyData[2].GrowthRate.Equal(dec("50")))
	assert.True(t, r.MonthlyData[3].GrowthRate.Equal(dec("-100")))

	assert.True(t, r.Summary.TotalSales.Equal(dec("600")))
	assert.Equal(t, 12, r.Summary.TotalOrders)
	assert.True(t, r.Summary.AvgMonthlySales.Equal(dec("50")))
	assert.Equal(t, 12, r.Summary.BestMonth.Month)
	assert.Equal(t, 1, r.Summary.WorstMonth.Month, "primer mínimo")
	assert.Equal(t, day(2025, 1, 1), repo.monthlyWindow.start)
}

// ──────────────────────────────────────────────────────────────────────────────
// Export
// ──────────────────────────────────────────────────────────────────────────────

func TestExport(t *testing.T) {
	exp := &stubExporter{}
	reports := analytics.NewInventoryReportUseCase(&stubAnalytics{}, &stubIngredients{}, clock)
	uc := analytics.NewExportUseCase(reports, exp)

	data, name, err := uc.MovementReport(context.Background(), dto.PeriodRequest{StartDate: "2026-10-01", EndDate: "2026-10-18"})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "movimientos_2026-10-01_2026-10-18.xlsx", name)
	require.NotNil(t, exp.movements)

	_, name, err = uc.ConsumptionReport(context.Background(), dto.PeriodRequest{Period: "month"})
	require.NoError(t, err)
	assert.Equal(t, "consumo_2026-09-18_2026-10-18.xlsx", name)
	require.NotNil(t, exp.consumption)
}
