package excel

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sweetbite/bakery-api/internal/application/dto"
)

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestMovementReportXLSX(t *testing.T) {
	report := &dto.MovementReportDTO{
		Period:  dto.PeriodDTO{StartDate: "2026-10-01", EndDate: "2026-10-18"},
		Summary: dto.MovementGroupDTO{Count: 3, TotalQuantity: decimal.NewFromInt(35), TotalValue: decimal.RequireFromString("99.01")},
		ByType: []dto.MovementGroupDTO{
			{Key: "in", Count: 2, TotalQuantity: decimal.NewFromInt(30), TotalValue: decimal.NewFromInt(90)},
			{Key: "out", Count: 1, TotalQuantity: decimal.NewFromInt(5), TotalValue: decimal.RequireFromString("9.01")},
		},
		ByIngredient: []dto.MovementGroupDTO{
			{Key: "Harina", Count: 3, TotalQuantity: decimal.NewFromInt(35), TotalValue: decimal.RequireFromString("99.01")},
		},
	}

	data, err := NewReportExporter().MovementReportXLSX(report)
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{SheetSummary, SheetByType, SheetByIngredient}, f.GetSheetList())

	rows, err := f.GetRows(SheetByType)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Tipo", "Movimientos", "Cantidad total", "Valor total"}, rows[0])
	assert.Equal(t, "out", rows[2][0])
	assert.Equal(t, "9.01", rows[2][3])

	v, err := f.GetCellValue(SheetSummary, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", v)
}

func TestConsumptionReportXLSX(t *testing.T) {
	report := &dto.ConsumptionReportDTO{
		Period:  dto.PeriodDTO{Type: "week", StartDate: "2026-10-11", EndDate: "2026-10-18"},
		Summary: dto.ConsumptionSummaryDTO{TotalConsumption: decimal.NewFromInt(100), TotalIngredients: 2, TotalMovements: 4},
		Ingredients: []dto.IngredientUsageDTO{
			{Name: "Azúcar", Unit: "kg", Consumed: decimal.NewFromInt(70), Percentage: decimal.NewFromInt(70)},
			{Name: "Harina", Unit: "kg", Consumed: decimal.NewFromInt(30), Percentage: decimal.NewFromInt(30)},
		},
		Wastage: []dto.WastageItemDTO{{Name: "Harina", Wasted: decimal.NewFromInt(10), Percentage: decimal.NewFromInt(100)}},
	}

	data, err := NewReportExporter().ConsumptionReportXLSX(report)
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{SheetSummary, SheetConsumption, SheetWastage, SheetLowUsage}, f.GetSheetList())

	rows, err := f.GetRows(SheetConsumption)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Azúcar", rows[1][0])
	assert.Equal(t, "70", rows[1][3])

	low, err := f.GetRows(SheetLowUsage)
	require.NoError(t, err)
	assert.Len(t, low, 1, "solo cabecera")
}
