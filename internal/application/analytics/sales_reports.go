package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

const (
	defaultTopCakes = 5
	maxTopCakes     = 50
)

// SalesReportUseCase reportes de ventas sobre pedidos.
type SalesReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewSalesReportUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewSalesReportUseCase(analyticsRepo repository.AnalyticsRepository, now func() time.Time) *SalesReportUseCase {
	if now == nil {
		now = time.Now
	}
	return &SalesReportUseCase{analyticsRepo: analyticsRepo, now: now}
}

// SalesReport ventas totales, ticket promedio y desgloses por estado y método de pago.
func (uc *SalesReportUseCase) SalesReport(ctx context.Context, req dto.PeriodRequest) (*dto.SalesReportDTO, error) {
	w, err := resolveWindow(uc.now(), req, "")
	if err != nil {
		return nil, err
	}

	type totalsResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type groupResult struct {
		rows []repository.SalesGroupResult
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	statusCh := make(chan groupResult, 1)
	paymentCh := make(chan groupResult, 1)

	go func() {
		total, count, err := uc.analyticsRepo.GetSalesTotals(ctx, w.start, w.end)
		totalsCh <- totalsResult{total, count, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetSalesByStatus(ctx, w.start, w.end)
		statusCh <- groupResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetSalesByPayment(ctx, w.start, w.end)
		paymentCh <- groupResult{rows, err}
	}()

	totals := <-totalsCh
	byStatus := <-statusCh
	byPayment := <-paymentCh

	if totals.err != nil {
		return nil, fmt.Errorf("ventas: totales: %w", totals.err)
	}
	if byStatus.err != nil {
		return nil, fmt.Errorf("ventas: por estado: %w", byStatus.err)
	}
	if byPayment.err != nil {
		return nil, fmt.Errorf("ventas: por método de pago: %w", byPayment.err)
	}

	avg := decimal.Zero
	if totals.count > 0 {
		avg = totals.total.Div(decimal.NewFromInt(int64(totals.count))).Round(2)
	}
	return &dto.SalesReportDTO{
		Period:            w.dto(),
		TotalSales:        totals.total.Round(2),
		TotalOrders:       totals.count,
		AverageOrderValue: avg,
		ByStatus:          toSalesDTOs(byStatus.rows),
		ByPaymentMethod:   toSalesDTOs(byPayment.rows),
	}, nil
}

func toSalesDTOs(rows []repository.SalesGroupResult) []dto.SalesGroupDTO {
	out := make([]dto.SalesGroupDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesGroupDTO{Key: r.Key, Count: r.Count, Total: r.Total.Round(2)})
	}
	return out
}

// TopSellingCakes tortas más vendidas en pedidos entregados (week, month o year; month por defecto).
func (uc *SalesReportUseCase) TopSellingCakes(ctx context.Context, req dto.TopCakesRequest) (*dto.TopCakesDTO, error) {
	period := req.Period
	if period == "" {
		period = PeriodMonth
	}
	if _, ok := periodDays[period]; !ok || period == PeriodToday {
		return nil, domain.Invalid("period", "use week, month o year")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultTopCakes
	}
	if limit > maxTopCakes {
		limit = maxTopCakes
	}

	now := uc.now()
	w := namedWindow(now, period)
	rows, err := uc.analyticsRepo.GetTopSellingCakes(ctx, w.start, w.end, limit)
	if err != nil {
		return nil, fmt.Errorf("ventas: top tortas: %w", err)
	}
	cakes := make([]dto.TopCakeDTO, 0, len(rows))
	for _, r := range rows {
		cakes = append(cakes, dto.TopCakeDTO{
			CakeID:        r.CakeID,
			Name:          r.Name,
			UnitPrice:     r.UnitPrice,
			TotalQuantity: r.TotalQuantity,
			TotalRevenue:  r.TotalRevenue.Round(2),
			OrderCount:    r.OrderCount,
		})
	}
	return &dto.TopCakesDTO{Period: w.dto(), GeneratedAt: now, Cakes: cakes}, nil
}

const (
	loyalOrderThreshold = 5
	keyDayFactor        = 1.2
	peakDayFactor       = 1.5
)

// LoyaltyInsights clientes recurrentes (más de un pedido entregado) y fieles (más de cinco).
func (uc *SalesReportUseCase) LoyaltyInsights(ctx context.Context) (*dto.LoyaltyInsightsDTO, error) {
	stats, err := uc.analyticsRepo.GetCustomerOrderStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("fidelización: pedidos por cliente: %w", err)
	}

	var (
		returning, orders int
		revenue           decimal.Decimal
		loyal             []dto.LoyalCustomerDTO
		loyalOrders       int
		loyalSpend        decimal.Decimal
	)
	for _, s := range stats {
		orders += s.OrderCount
		revenue = revenue.Add(s.TotalSpent)
		if s.OrderCount > 1 {
			returning++
		}
		if s.OrderCount > loyalOrderThreshold {
			loyal = append(loyal, dto.LoyalCustomerDTO{
				CustomerID: s.CustomerID,
				Name:       s.Name,
				Orders:     s.OrderCount,
				TotalSpend: s.TotalSpent.Round(2),
			})
			loyalOrders += s.OrderCount
			loyalSpend = loyalSpend.Add(s.TotalSpent)
		}
	}

	total := decimal.NewFromInt(int64(len(stats)))
	out := &dto.LoyaltyInsightsDTO{
		Customers: dto.LoyaltyCustomersDTO{
			RepeatCustomers:    len(loyal),
			TotalCustomers:     len(stats),
			ReturningCustomers: returning,
			Loyal:              loyal,
		},
		Metrics: dto.LoyaltyMetricsDTO{
			RetentionRate:      percentOf(decimal.NewFromInt(int64(returning)), total),
			AvgOrderValue:      decimal.Zero,
			RepeatPurchaseRate: percentOf(decimal.NewFromInt(int64(len(loyal))), total),
		},
		Analytics: dto.LoyaltyAnalyticsDTO{
			TotalLoyalCustomers:  len(loyal),
			AvgLifetimeValue:     decimal.Zero,
			AvgOrdersPerCustomer: decimal.Zero,
		},
	}
	if out.Customers.Loyal == nil {
		out.Customers.Loyal = []dto.LoyalCustomerDTO{}
	}
	if orders > 0 {
		out.Metrics.AvgOrderValue = revenue.Div(decimal.NewFromInt(int64(orders))).Round(2)
	}
	if n := int64(len(loyal)); n > 0 {
		top := loyal[0]
		out.Customers.TopCustomer = &top
		out.Analytics.AvgLifetimeValue = loyalSpend.Div(decimal.NewFromInt(n)).Round(2)
		out.Analytics.AvgOrdersPerCustomer = decimal.NewFromInt(int64(loyalOrders)).Div(decimal.NewFromInt(n)).Round(1)
	}
	return out, nil
}

// SeasonalAnalysis ventas entregadas de un mes: comparación con el mes anterior, días
// clave sobre el promedio diario y el desglose mensual del año.
func (uc *SalesReportUseCase) SeasonalAnalysis(ctx context.Context, req dto.SeasonalRequest) (*dto.SeasonalAnalysisDTO, error) {
	year, month, err := uc.resolveMonth(req)
	if err != nil {
		return nil, err
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	prevStart := start.AddDate(0, -1, 0)

	type totalsResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type dailyResult struct {
		rows []repository.DailySalesResult
		err  error
	}
	type monthlyResult struct {
		rows []repository.MonthlySalesResult
		err  error
	}

	currentCh := make(chan totalsResult, 1)
	previousCh := make(chan totalsResult, 1)
	dailyCh := make(chan dailyResult, 1)
	yearCh := make(chan monthlyResult, 1)

	go func() {
		total, count, err := uc.analyticsRepo.GetDeliveredTotals(ctx, start, end)
		currentCh <- totalsResult{total, count, err}
	}()
	go func() {
		total, count, err := uc.analyticsRepo.GetDeliveredTotals(ctx, prevStart, start)
		previousCh <- totalsResult{total, count, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetDailySales(ctx, start, end)
		dailyCh <- dailyResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetMonthlySales(ctx, yearStart(year), yearStart(year+1))
		yearCh <- monthlyResult{rows, err}
	}()

	current := <-currentCh
	previous := <-previousCh
	daily := <-dailyCh
	monthly := <-yearCh

	if current.err != nil {
		return nil, fmt.Errorf("estacionalidad: mes: %w", current.err)
	}
	if previous.err != nil {
		return nil, fmt.Errorf("estacionalidad: mes anterior: %w", previous.err)
	}
	if daily.err != nil {
		return nil, fmt.Errorf("estacionalidad: ventas diarias: %w", daily.err)
	}
	if monthly.err != nil {
		return nil, fmt.Errorf("estacionalidad: desglose anual: %w", monthly.err)
	}

	days := make([]dto.DailySalesDTO, 0, len(daily.rows))
	var daysTotal decimal.Decimal
	for _, d := range daily.rows {
		days = append(days, dto.DailySalesDTO{Day: d.Day.Day(), Sales: d.Total.Round(2), Orders: d.Count})
		daysTotal = daysTotal.Add(d.Total)
	}

	// Promedio sobre los días con ventas, no sobre los días del mes.
	events := []dto.KeySalesDayDTO{}
	if len(daily.rows) > 0 {
		avg := daysTotal.Div(decimal.NewFromInt(int64(len(daily.rows))))
		keyLine := avg.Mul(decimal.NewFromFloat(keyDayFactor))
		peakLine := avg.Mul(decimal.NewFromFloat(peakDayFactor))
		for _, d := range daily.rows {
			if d.Total.GreaterThan(keyLine) {
				events = append(events, dto.KeySalesDayDTO{
					Day:    d.Day.Day(),
					Sales:  d.Total.Round(2),
					Orders: d.Count,
					IsPeak: d.Total.GreaterThan(peakLine),
				})
			}
		}
	}

	avgOrder := decimal.Zero
	if current.count > 0 {
		avgOrder = current.total.Div(decimal.NewFromInt(int64(current.count))).Round(2)
	}
	breakdown := fillMonths(monthly.rows)
	yearTotal, yearOrders := sumMonths(breakdown)

	return &dto.SeasonalAnalysisDTO{
		Year:      year,
		Month:     month,
		MonthName: time.Month(month).String(),
		Summary: dto.SeasonalSummaryDTO{
			TotalSales:         current.total.Round(2),
			TotalOrders:        current.count,
			AvgOrderValue:      avgOrder,
			PreviousMonthSales: previous.total.Round(2),
			GrowthRate:         percentOf(current.total.Sub(previous.total), previous.total),
			KeyEventsCount:     len(events),
		},
		DailySales: days,
		KeyEvents:  events,
		YearlySummary: dto.SeasonalYearDTO{
			TotalSales:       yearTotal,
			TotalOrders:      yearOrders,
			MonthlyBreakdown: breakdown,
		},
	}, nil
}

// YearlySeasonalSummary doce meses del año con crecimiento mensual, mejor y peor mes.
func (uc *SalesReportUseCase) YearlySeasonalSummary(ctx context.Context, req dto.SeasonalRequest) (*dto.YearlySeasonalDTO, error) {
	year, _, err := uc.resolveMonth(dto.SeasonalRequest{Year: req.Year})
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.GetMonthlySales(ctx, yearStart(year), yearStart(year+1))
	if err != nil {
		return nil, fmt.Errorf("estacionalidad: resumen anual: %w", err)
	}
	months := fillMonths(rows)
	total, orders := sumMonths(months)

	best, worst := months[0], months[0]
	for _, m := range months[1:] {
		if m.Sales.GreaterThan(best.Sales) {
			best = m
		}
		if m.Sales.LessThan(worst.Sales) {
			worst = m
		}
	}
	return &dto.YearlySeasonalDTO{
		Year: year,
		Summary: dto.YearlySummaryDTO{
			TotalSales:      total,
			TotalOrders:     orders,
			AvgMonthlySales: total.Div(decimal.NewFromInt(12)).Round(2),
			BestMonth:       best,
			WorstMonth:      worst,
		},
		MonthlyData: months,
	}, nil
}

// resolveMonth año y mes pedidos; los vacíos toman el mes actual.
func (uc *SalesReportUseCase) resolveMonth(req dto.SeasonalRequest) (int, int, error) {
	now := uc.now().UTC()
	year, month := req.Year, req.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year < 2000 || year > 2100 {
		return 0, 0, domain.Invalid("year", "entre 2000 y 2100")
	}
	if month < 1 || month > 12 {
		return 0, 0, domain.Invalid("month", "entre 1 y 12")
	}
	return year, month, nil
}

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// fillMonths completa los doce meses con ceros. Enero no tiene mes anterior dentro
// del año y queda con crecimiento 0.
func fillMonths(rows []repository.MonthlySalesResult) []dto.MonthlySalesDTO {
	months := make([]dto.MonthlySalesDTO, 12)
	for i := range months {
		months[i] = dto.MonthlySalesDTO{
			Month:      i + 1,
			MonthName:  time.Month(i + 1).String(),
			Sales:      decimal.Zero,
			GrowthRate: decimal.Zero,
		}
	}
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		months[r.Month-1].Sales = r.Total.Round(2)
		months[r.Month-1].Orders = r.Count
	}
	for i := 1; i < len(months); i++ {
		prev := months[i-1].Sales
		months[i].GrowthRate = percentOf(months[i].Sales.Sub(prev), prev)
	}
	return months
}

func sumMonths(months []dto.MonthlySalesDTO) (decimal.Decimal, int) {
	total := decimal.Zero
	orders := 0
	for _, m := range months {
		total = total.Add(m.Sales)
		orders += m.Orders
	}
	return total, orders
}
