package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/orders"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

const dashboardRecent = 10 // movimientos / pedidos recientes en cada dashboard

// DashboardUseCase genera los resúmenes de inventario y de pedidos.
//
// Fuente de datos: AnalyticsRepository para agregados; los listados recientes
// salen de los repositorios de movimientos y pedidos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	movementRepo  repository.StockMovementRepository
	orderRepo     repository.OrderRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	movementRepo repository.StockMovementRepository,
	orderRepo repository.OrderRepository,
	now func() time.Time,
) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		movementRepo:  movementRepo,
		orderRepo:     orderRepo,
		now:           now,
	}
}

// InventoryDashboard totales del inventario y los 10 movimientos más recientes.
//
// Dos llamadas en paralelo:
//  1. GetInventorySnapshot   → TotalIngredients + LowStockCount + TotalValue
//  2. movimientos recientes  → RecentMovements
func (uc *DashboardUseCase) InventoryDashboard(ctx context.Context) (*dto.InventoryDashboardDTO, error) {
	type snapshotResult struct {
		snap repository.InventorySnapshot
		err  error
	}
	type movementsResult struct {
		items []*entity.StockMovement
		err   error
	}

	snapCh := make(chan snapshotResult, 1)
	movCh := make(chan movementsResult, 1)

	go func() {
		snap, err := uc.analyticsRepo.GetInventorySnapshot(ctx)
		snapCh <- snapshotResult{snap, err}
	}()
	go func() {
		items, _, err := uc.movementRepo.List(ctx, repository.MovementFilter{}, dashboardRecent, 0)
		movCh <- movementsResult{items, err}
	}()

	snap := <-snapCh
	movs := <-movCh

	if snap.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", snap.err)
	}
	if movs.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", movs.err)
	}

	recent := make([]dto.MovementResponse, 0, len(movs.items))
	for _, m := range movs.items {
		recent = append(recent, dto.FromMovement(m))
	}
	return &dto.InventoryDashboardDTO{
		TotalIngredients: snap.snap.TotalIngredients,
		LowStockCount:    snap.snap.LowStockCount,
		TotalValue:       snap.snap.TotalValue.Round(2),
		RecentMovements:  recent,
	}, nil
}

// OrdersDashboard ventas del día, conteos por estado y pedidos recientes.
// Las ventas del día son globales; conteos y recientes respetan el alcance del rol.
//
// Tres llamadas en paralelo:
//  1. GetSalesTotals(hoy)       → TodaySales + TodayOrders
//  2. GetOrderStatusCounts      → pendientes, en preparación, listos, en reparto
//  3. pedidos recientes         → RecentOrders
func (uc *DashboardUseCase) OrdersDashboard(ctx context.Context, v orders.Viewer) (*dto.OrdersDashboardDTO, error) {
	todayStart := today(uc.now())
	todayEnd := todayStart.AddDate(0, 0, 1)
	scope := orders.ScopeFilter(v, repository.OrderFilter{})

	type salesResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type countsResult struct {
		counts map[string]int
		err    error
	}
	type recentResult struct {
		items []*entity.Order
		err   error
	}

	salesCh := make(chan salesResult, 1)
	countsCh := make(chan countsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		total, count, err := uc.analyticsRepo.GetSalesTotals(ctx, todayStart, todayEnd)
		salesCh <- salesResult{total, count, err}
	}()
	go func() {
		counts, err := uc.analyticsRepo.GetOrderStatusCounts(ctx, scope)
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		items, _, err := uc.orderRepo.List(ctx, scope, dashboardRecent, 0)
		recentCh <- recentResult{items, err}
	}()

	sales := <-salesCh
	counts := <-countsCh
	recent := <-recentCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", sales.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos por estado: %w", counts.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos recientes: %w", recent.err)
	}

	recentOrders := make([]dto.OrderResponse, 0, len(recent.items))
	for _, o := range recent.items {
		recentOrders = append(recentOrders, dto.FromOrder(o))
	}
	return &dto.OrdersDashboardDTO{
		Date:                 todayStart.Format(dto.DateLayout),
		TodaySales:           sales.total.Round(2),
		TodayOrders:          sales.count,
		PendingOrders:        counts.counts[entity.OrderPending],
		PreparingOrders:      counts.counts[entity.OrderPreparing],
		ReadyOrders:          counts.counts[entity.OrderReady],
		OutForDeliveryOrders: counts.counts[entity.OrderOutForDelivery],
		RecentOrders:         recentOrders,
	}, nil
}
