package analytics

import (
	"context"
	"fmt"

	"github.com/sweetbite/bakery-api/internal/application/dto"
)

// SpreadsheetExporter genera libros .xlsx a partir de los reportes (implementado en infrastructure/excel).
type SpreadsheetExporter interface {
	MovementReportXLSX(r *dto.MovementReportDTO) ([]byte, error)
	ConsumptionReportXLSX(r *dto.ConsumptionReportDTO) ([]byte, error)
}

// ExportUseCase exporta reportes de inventario a Excel.
type ExportUseCase struct {
	reports  *InventoryReportUseCase
	exporter SpreadsheetExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(reports *InventoryReportUseCase, exporter SpreadsheetExporter) *ExportUseCase {
	return &ExportUseCase{reports: reports, exporter: exporter}
}

// MovementReport devuelve el reporte de movimientos como .xlsx y el nombre sugerido del archivo.
func (uc *ExportUseCase) MovementReport(ctx context.Context, req dto.PeriodRequest) ([]byte, string, error) {
	r, err := uc.reports.MovementReport(ctx, req)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.MovementReportXLSX(r)
	if err != nil {
		return nil, "", fmt.Errorf("export movimientos: %w", err)
	}
	return data, fmt.Sprintf("movimientos_%s_%s.xlsx", r.Period.StartDate, r.Period.EndDate), nil
}

// ConsumptionReport devuelve el análisis de consumo como .xlsx.
func (uc *ExportUseCase) ConsumptionReport(ctx context.Context, req dto.PeriodRequest) ([]byte, string, error) {
	r, err := uc.reports.ConsumptionAnalysis(ctx, req)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ConsumptionReportXLSX(r)
	if err != nil {
		return nil, "", fmt.Errorf("export consumo: %w", err)
	}
	return data, fmt.Sprintf("consumo_%s_%s.xlsx", r.Period.StartDate, r.Period.EndDate), nil
}
