// Package excel exporta los reportes de inventario a XLSX con excelize.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sweetbite/bakery-api/internal/application/analytics"
	"github.com/sweetbite/bakery-api/internal/application/dto"
)

var _ analytics.SpreadsheetExporter = (*ReportExporter)(nil)

// Nombres de hoja.
const (
	SheetSummary      = "Resumen"
	SheetByType       = "Por tipo"
	SheetByIngredient = "Por ingrediente"
	SheetConsumption  = "Consumo"
	SheetWastage      = "Merma"
	SheetLowUsage     = "Bajo uso"
)

// ReportExporter una hoja por cada desglose del reporte.
type ReportExporter struct{}

// NewReportExporter construye el exportador.
func NewReportExporter() *ReportExporter { return &ReportExporter{} }

// MovementReportXLSX resumen, movimientos por tipo y por ingrediente.
func (e *ReportExporter) MovementReportXLSX(r *dto.MovementReportDTO) ([]byte, error) {
	w, err := newWorkbook(SheetSummary)
	if err != nil {
		return nil, err
	}
	defer w.close()

	w.table(SheetSummary, []string{"Desde", "Hasta", "Movimientos", "Cantidad total", "Valor total"},
		[][]any{{r.Period.StartDate, r.Period.EndDate, r.Summary.Count, num(r.Summary.TotalQuantity), num(r.Summary.TotalValue)}})

	groupHeader := []string{"", "Movimientos", "Cantidad total", "Valor total"}
	groups := func(list []dto.MovementGroupDTO) [][]any {
		rows := make([][]any, 0, len(list))
		for _, g := range list {
			rows = append(rows, []any{g.Key, g.Count, num(g.TotalQuantity), num(g.TotalValue)})
		}
		return rows
	}
	w.sheet(SheetByType, withFirst(groupHeader, "Tipo"), groups(r.ByType))
	w.sheet(SheetByIngredient, withFirst(groupHeader, "Ingrediente"), groups(r.ByIngredient))
	return w.bytes()
}

// ConsumptionReportXLSX resumen, consumo por ingrediente, merma y bajo uso.
func (e *ReportExporter) ConsumptionReportXLSX(r *dto.ConsumptionReportDTO) ([]byte, error) {
	w, err := newWorkbook(SheetSummary)
	if err != nil {
		return nil, err
	}
	defer w.close()

	w.table(SheetSummary, []string{"Desde", "Hasta", "Consumo total", "Ingredientes", "Movimientos"},
		[][]any{{r.Period.StartDate, r.Period.EndDate, num(r.Summary.TotalConsumption),
			r.Summary.TotalIngredients, r.Summary.TotalMovements}})

	usage := make([][]any, 0, len(r.Ingredients))
	for _, it := range r.Ingredients {
		usage = append(usage, []any{it.Name, it.Unit, num(it.Consumed), num(it.Percentage), num(it.Trend),
			num(it.CurrentStock), it.MovementCount})
	}
	w.sheet(SheetConsumption, []string{"Ingrediente", "Unidad", "Consumido", "% del total", "Tendencia %",
		"Stock actual", "Movimientos"}, usage)

	wastage := make([][]any, 0, len(r.Wastage))
	for _, it := range r.Wastage {
		wastage = append(wastage, []any{it.Name, num(it.Wasted), num(it.Percentage)})
	}
	w.sheet(SheetWastage, []string{"Ingrediente", "Merma", "% de la merma"}, wastage)

	low := make([][]any, 0, len(r.LowUsage))
	for _, it := range r.LowUsage {
		low = append(low, []any{it.Name, num(it.Consumed), num(it.Percentage)})
	}
	w.sheet(SheetLowUsage, []string{"Ingrediente", "Consumido", "% del total"}, low)
	return w.bytes()
}

// ── Workbook ──────────────────────────────────────────────────────────────────

// workbook acumula el primer error para no chequear cada celda.
type workbook struct {
	f      *excelize.File
	header int
	err    error
}

func newWorkbook(first string) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", first); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"9C2760"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}
	return &workbook{f: f, header: header}, nil
}

func (w *workbook) sheet(name string, header []string, rows [][]any) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("excel: crear hoja %s: %w", name, err)
		return
	}
	w.table(name, header, rows)
}

func (w *workbook) table(sheet string, header []string, rows [][]any) {
	if w.err != nil {
		return
	}
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := w.f.SetSheetRow(sheet, "A1", &cells); err != nil {
		w.err = fmt.Errorf("excel: cabecera %s: %w", sheet, err)
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := w.f.SetCellStyle(sheet, "A1", last, w.header); err != nil {
		w.err = fmt.Errorf("excel: estilo %s: %w", sheet, err)
		return
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.f.SetSheetRow(sheet, cell, &r); err != nil {
			w.err = fmt.Errorf("excel: fila %d de %s: %w", i+2, sheet, err)
			return
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	_ = w.f.SetColWidth(sheet, "A", lastCol, 18)
}

func (w *workbook) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *workbook) close() { _ = w.f.Close() }

func withFirst(header []string, first string) []string {
	out := append([]string(nil), header...)
	out[0] = first
	return out
}

// num celdas numéricas (no texto) para que la hoja permita sumar.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
