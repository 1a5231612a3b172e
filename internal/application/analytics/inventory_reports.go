package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

const (
	topConsumption = 10
	topWastage     = 5
	topLowUsage    = 5
	topCostRanking = 10
)

// InventoryReportUseCase reportes de consumo, movimientos y costos del inventario.
//
// Fuente de datos: AnalyticsRepository (agregados SQL) e IngredientRepository
// para el listado de ingredientes activos.
type InventoryReportUseCase struct {
	analyticsRepo  repository.AnalyticsRepository
	ingredientRepo repository.IngredientRepository
	now            func() time.Time
}

// NewInventoryReportUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewInventoryReportUseCase(
	analyticsRepo repository.AnalyticsRepository,
	ingredientRepo repository.IngredientRepository,
	now func() time.Time,
) *InventoryReportUseCase {
	if now == nil {
		now = time.Now
	}
	return &InventoryReportUseCase{analyticsRepo: analyticsRepo, ingredientRepo: ingredientRepo, now: now}
}

// ConsumptionAnalysis agrega las salidas (out + waste) por ingrediente en la ventana pedida.
//
// Cuatro consultas en paralelo:
//  1. GetConsumption(ventana)           → ranking, porcentajes y resumen
//  2. GetConsumption(ventana anterior)  → tendencia
//  3. GetWastage(ventana)               → merma
//  4. ingredientes activos              → bajo uso
func (uc *InventoryReportUseCase) ConsumptionAnalysis(ctx context.Context, req dto.PeriodRequest) (*dto.ConsumptionReportDTO, error) {
	w, err := resolveWindow(uc.now(), req, PeriodWeek)
	if err != nil {
		return nil, err
	}
	prev := w.previous()

	type consumptionResult struct {
		rows []repository.ConsumptionResult
		err  error
	}
	type ingredientsResult struct {
		items []*entity.Ingredient
		err   error
	}

	currentCh := make(chan consumptionResult, 1)
	prevCh := make(chan consumptionResult, 1)
	wasteCh := make(chan consumptionResult, 1)
	activeCh := make(chan ingredientsResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetConsumption(ctx, w.start, w.end)
		currentCh <- consumptionResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetConsumption(ctx, prev.start, prev.end)
		prevCh <- consumptionResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetWastage(ctx, w.start, w.end)
		wasteCh <- consumptionResult{rows, err}
	}()
	go func() {
		active := true
		// limit 0: sin límite
		items, _, err := uc.ingredientRepo.List(ctx, repository.IngredientFilter{Active: &active}, 0, 0)
		activeCh <- ingredientsResult{items, err}
	}()

	current := <-currentCh
	previous := <-prevCh
	waste := <-wasteCh
	active := <-activeCh

	if current.err != nil {
		return nil, fmt.Errorf("consumo: periodo actual: %w", current.err)
	}
	if previous.err != nil {
		return nil, fmt.Errorf("consumo: periodo anterior: %w", previous.err)
	}
	if waste.err != nil {
		return nil, fmt.Errorf("consumo: merma: %w", waste.err)
	}
	if active.err != nil {
		return nil, fmt.Errorf("consumo: ingredientes activos: %w", active.err)
	}

	// ── Totales ────────────────────────────────────────────────────────────────
	total := decimal.Zero
	movements := 0
	consumedBy := make(map[string]decimal.Decimal, len(current.rows))
	for _, r := range current.rows {
		total = total.Add(r.TotalConsumed)
		movements += r.MovementCount
		consumedBy[r.IngredientID] = r.TotalConsumed
	}
	prevBy := make(map[string]decimal.Decimal, len(previous.rows))
	for _, r := range previous.rows {
		prevBy[r.IngredientID] = r.TotalConsumed
	}

	// ── Ranking ────────────────────────────────────────────────────────────────
	rows := current.rows
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalConsumed.GreaterThan(rows[j].TotalConsumed) })
	if len(rows) > topConsumption {
		rows = rows[:topConsumption]
	}
	usage := make([]dto.IngredientUsageDTO, 0, len(rows))
	for _, r := range rows {
		usage = append(usage, dto.IngredientUsageDTO{
			IngredientID:  r.IngredientID,
			Name:          r.Name,
			Unit:          r.Unit,
			CurrentStock:  r.CurrentStock,
			Consumed:      r.TotalConsumed,
			Percentage:    percentOf(r.TotalConsumed, total),
			Trend:         trend(r.TotalConsumed, prevBy[r.IngredientID]),
			MovementCount: r.MovementCount,
		})
	}

	// ── Merma ──────────────────────────────────────────────────────────────────
	wasteRows := waste.rows
	sort.SliceStable(wasteRows, func(i, j int) bool { return wasteRows[i].TotalConsumed.GreaterThan(wasteRows[j].TotalConsumed) })
	if len(wasteRows) > topWastage {
		wasteRows = wasteRows[:topWastage]
	}
	wastage := make([]dto.WastageItemDTO, 0, len(wasteRows))
	for _, r := range wasteRows {
		wastage = append(wastage, dto.WastageItemDTO{
			Name:       r.Name,
			Wasted:     r.TotalConsumed,
			Percentage: percentOf(r.TotalConsumed, total),
		})
	}

	// ── Bajo uso: activos con consumo < 5 % del total (incluye consumo cero) ──
	threshold := total.Mul(lowUsageRate)
	lowUsage := make([]dto.LowUsageItemDTO, 0, topLowUsage)
	for _, ing := range active.items {
		consumed := consumedBy[ing.ID]
		if consumed.LessThan(threshold) {
			lowUsage = append(lowUsage, dto.LowUsageItemDTO{
				Name:       ing.Name,
				Consumed:   consumed,
				Percentage: percentOf(consumed, total),
			})
		}
	}
	sort.SliceStable(lowUsage, func(i, j int) bool { return lowUsage[i].Consumed.LessThan(lowUsage[j].Consumed) })
	if len(lowUsage) > topLowUsage {
		lowUsage = lowUsage[:topLowUsage]
	}

	return &dto.ConsumptionReportDTO{
		Period: w.dto(),
		Summary: dto.ConsumptionSummaryDTO{
			TotalConsumption: total,
			TotalIngredients: len(usage),
			TotalMovements:   movements,
		},
		Ingredients: usage,
		Wastage:     wastage,
		LowUsage:    lowUsage,
	}, nil
}

// trend variación porcentual contra el periodo anterior; 0 si no hubo consumo previo.
func trend(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1)
}

// MovementReport totales de movimientos en el rango, por tipo y por ingrediente.
func (uc *InventoryReportUseCase) MovementReport(ctx context.Context, req dto.PeriodRequest) (*dto.MovementReportDTO, error) {
	w, err := resolveWindow(uc.now(), req, "")
	if err != nil {
		return nil, err
	}

	type groupResult struct {
		rows []repository.MovementGroupResult
		err  error
	}
	byTypeCh := make(chan groupResult, 1)
	byIngCh := make(chan groupResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetMovementsByType(ctx, w.start, w.end)
		byTypeCh <- groupResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetMovementsByIngredient(ctx, w.start, w.end)
		byIngCh <- groupResult{rows, err}
	}()

	byType := <-byTypeCh
	byIng := <-byIngCh
	if byType.err != nil {
		return nil, fmt.Errorf("movimientos: por tipo: %w", byType.err)
	}
	if byIng.err != nil {
		return nil, fmt.Errorf("movimientos: por ingrediente: %w", byIng.err)
	}

	return &dto.MovementReportDTO{
		Period:       w.dto(),
		Summary:      sumGroups(byType.rows),
		ByType:       toGroupDTOs(byType.rows),
		ByIngredient: toGroupDTOs(byIng.rows),
	}, nil
}

func sumGroups(rows []repository.MovementGroupResult) dto.MovementGroupDTO {
	sum := dto.MovementGroupDTO{TotalQuantity: decimal.Zero, TotalValue: decimal.Zero}
	for _, r := range rows {
		sum.Count += r.Count
		sum.TotalQuantity = sum.TotalQuantity.Add(r.TotalQuantity)
		sum.TotalValue = sum.TotalValue.Add(r.TotalValue)
	}
	sum.TotalValue = sum.TotalValue.Round(2)
	return sum
}

func toGroupDTOs(rows []repository.MovementGroupResult) []dto.MovementGroupDTO {
	out := make([]dto.MovementGroupDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MovementGroupDTO{
			Key:           r.Key,
			Count:         r.Count,
			TotalQuantity: r.TotalQuantity,
			TotalValue:    r.TotalValue.Round(2),
		})
	}
	return out
}

// CostAnalysis valor del inventario actual y costo de los movimientos del rango.
//
// Cinco consultas en paralelo; ninguna depende de otra.
func (uc *InventoryReportUseCase) CostAnalysis(ctx context.Context, req dto.PeriodRequest) (*dto.CostAnalysisDTO, error) {
	w, err := resolveWindow(uc.now(), req, "")
	if err != nil {
		return nil, err
	}

	type snapshotResult struct {
		snap repository.InventorySnapshot
		err  error
	}
	type supplierResult struct {
		rows []repository.SupplierValueResult
		err  error
	}
	type rankingResult struct {
		items []*entity.Ingredient
		err   error
	}
	type groupResult struct {
		rows []repository.MovementGroupResult
		err  error
	}

	snapCh := make(chan snapshotResult, 1)
	supCh := make(chan supplierResult, 1)
	expensiveCh := make(chan rankingResult, 1)
	lowStockCh := make(chan rankingResult, 1)
	byTypeCh := make(chan groupResult, 1)

	go func() {
		snap, err := uc.analyticsRepo.GetInventorySnapshot(ctx)
		snapCh <- snapshotResult{snap, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetValueBySupplier(ctx)
		supCh <- supplierResult{rows, err}
	}()
	go func() {
		items, err := uc.analyticsRepo.GetTopByUnitCost(ctx, topCostRanking, false)
		expensiveCh <- rankingResult{items, err}
	}()
	go func() {
		items, err := uc.analyticsRepo.GetTopByUnitCost(ctx, topCostRanking, true)
		lowStockCh <- rankingResult{items, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetMovementsByType(ctx, w.start, w.end)
		byTypeCh <- groupResult{rows, err}
	}()

	snap := <-snapCh
	sup := <-supCh
	expensive := <-expensiveCh
	lowStock := <-lowStockCh
	byType := <-byTypeCh

	switch {
	case snap.err != nil:
		return nil, fmt.Errorf("costos: inventario: %w", snap.err)
	case sup.err != nil:
		return nil, fmt.Errorf("costos: por proveedor: %w", sup.err)
	case expensive.err != nil:
		return nil, fmt.Errorf("costos: más costosos: %w", expensive.err)
	case lowStock.err != nil:
		return nil, fmt.Errorf("costos: stock bajo: %w", lowStock.err)
	case byType.err != nil:
		return nil, fmt.Errorf("costos: movimientos: %w", byType.err)
	}

	suppliers := make([]dto.SupplierValueDTO, 0, len(sup.rows))
	for _, r := range sup.rows {
		suppliers = append(suppliers, dto.SupplierValueDTO{
			SupplierName: r.SupplierName,
			TotalValue:   r.TotalValue.Round(2),
			Count:        r.Count,
			AvgUnitCost:  r.AvgUnitCost.Round(2),
		})
	}

	return &dto.CostAnalysisDTO{
		Period:              w.dto(),
		TotalInventoryValue: snap.snap.TotalValue.Round(2),
		TotalMovementValue:  sumGroups(byType.rows).TotalValue,
		IngredientCount:     snap.snap.TotalIngredients,
		LowStockCount:       snap.snap.LowStockCount,
		ValueBySupplier:     suppliers,
		MostExpensive:       toCostDTOs(expensive.items),
		LowStockHighCost:    toCostDTOs(lowStock.items),
		MovementValueByType: toGroupDTOs(byType.rows),
	}, nil
}

func toCostDTOs(items []*entity.Ingredient) []dto.IngredientCostDTO {
	out := make([]dto.IngredientCostDTO, 0, len(items))
	for _, ing := range items {
		out = append(out, dto.IngredientCostDTO{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Unit:         ing.Unit,
			UnitCost:     ing.UnitCost,
			CurrentStock: ing.CurrentStock,
			TotalValue:   ing.TotalValue().Round(2),
		})
	}
	return out
}
