package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sweetbite/bakery-api/internal/application/analytics"
	"github.com/sweetbite/bakery-api/internal/application/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalyticsHandler dashboards y reportes de inventario y ventas.
type AnalyticsHandler struct {
	dashboard *analytics.DashboardUseCase
	inventory *analytics.InventoryReportUseCase
	sales     *analytics.SalesReportUseCase
	export    *analytics.ExportUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(
	dashboard *analytics.DashboardUseCase,
	inventory *analytics.InventoryReportUseCase,
	sales *analytics.SalesReportUseCase,
	export *analytics.ExportUseCase,
) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard, inventory: inventory, sales: sales, export: export}
}

// InventoryDashboard godoc
// @Summary      Dashboard de inventario
// @Description  Totales del inventario activo, alertas y movimientos recientes.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryDashboardDTO
// @Router       /api/inventory/dashboard [get]
func (h *AnalyticsHandler) InventoryDashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.InventoryDashboard(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// OrdersDashboard godoc
// @Summary      Dashboard de pedidos
// @Description  Conteos por estado, ingresos del día y pedidos recientes dentro del alcance del usuario.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrdersDashboardDTO
// @Router       /api/orders/dashboard [get]
func (h *AnalyticsHandler) OrdersDashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.OrdersDashboard(c.UserContext(), viewer(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ConsumptionAnalysis godoc
// @Summary      Análisis de consumo
// @Description  Consumo por ingrediente, mermas y artículos de bajo uso en el periodo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        period      query  string  false  "today|week|month|year"
// @Success      200  {object}  dto.ConsumptionReportDTO
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/inventory/reports/consumption [get]
func (h *AnalyticsHandler) ConsumptionAnalysis(c *fiber.Ctx) error {
	var in dto.PeriodRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.inventory.ConsumptionAnalysis(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// MovementReport godoc
// @Summary      Reporte de movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        period      query  string  false  "today|week|month|year"
// @Success      200  {object}  dto.MovementReportDTO
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/inventory/reports/movements [get]
func (h *AnalyticsHandler) MovementReport(c *fiber.Ctx) error {
	var in dto.PeriodRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.inventory.MovementReport(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// CostAnalysis godoc
// @Summary      Análisis de costos
// @Description  Valor del inventario por proveedor, ingredientes más caros y costo de compras y mermas del periodo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        period      query  string  false  "today|week|month|year"
// @Success      200  {object}  dto.CostAnalysisDTO
// @Router       /api/inventory/reports/cost-analysis [get]
func (h *AnalyticsHandler) CostAnalysis(c *fiber.Ctx) error {
	var in dto.PeriodRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.inventory.CostAnalysis(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ExportMovements godoc
// @Summary      Exportar reporte de movimientos (xlsx)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        period      query  string  false  "today|week|month|year"
// @Success      200  {file}  binary
// @Router       /api/inventory/reports/movements/export [get]
func (h *AnalyticsHandler) ExportMovements(c *fiber.Ctx) error {
	var in dto.PeriodRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	data, filename, err := h.export.MovementReport(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return sendFile(c, xlsxContentType, filename, data)
}

// ExportConsumption godoc
// @Summary      Exportar análisis de consumo (xlsx)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        period      query  string  false  "today|week|month|year"
// @Success      200  {file}  binary
// @Router       /api/inventory/reports/consumption/export [get]
func (h *AnalyticsHandler) ExportConsumption(c *fiber.Ctx) error {
	var in dto.PeriodRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	data, filename, err := h.export.ConsumptionReport(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return sendFile(c, xlsxContentType, filename, data)
}

// SalesReport godoc
// @Summary      Reporte de ventas
// @Description  Totales de pedidos del periodo (sin cancelados) agrupados por estado y por método de pago.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        period      query  string  false  "today|week|month|year"
// @Success      200  {object}  dto.SalesReportDTO
// @Router       /api/reports/sales [get]
func (h *AnalyticsHandler) SalesReport(c *fiber.Ctx) error {
	var in dto.PeriodRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.sales.SalesReport(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// TopSellingCakes godoc
// @Summary      Tortas más vendidas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "week|month|year (default month)"
// @Param        limit   query  int     false  "máximo 50 (default 10)"
// @Success      200  {object}  dto.TopCakesDTO
// @Router       /api/reports/top-cakes [get]
func (h *AnalyticsHandler) TopSellingCakes(c *fiber.Ctx) error {
	var in dto.TopCakesRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.sales.TopSellingCakes(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// LoyaltyInsights godoc
// @Summary      Fidelización de clientes
// @Description  Clientes recurrentes y fieles sobre pedidos entregados.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LoyaltyInsightsDTO
// @Router       /api/reports/loyalty [get]
func (h *AnalyticsHandler) LoyaltyInsights(c *fiber.Ctx) error {
	out, err := h.sales.LoyaltyInsights(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// SeasonalAnalysis godoc
// @Summary      Análisis estacional de un mes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "2000..2100 (default año actual)"
// @Param        month  query  int  false  "1..12 (default mes actual)"
// @Success      200  {object}  dto.SeasonalAnalysisDTO
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/reports/seasonal [get]
func (h *AnalyticsHandler) SeasonalAnalysis(c *fiber.Ctx) error {
	var in dto.SeasonalRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.sales.SeasonalAnalysis(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// YearlySeasonalSummary godoc
// @Summary      Resumen estacional del año
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "2000..2100 (default año actual)"
// @Success      200  {object}  dto.YearlySeasonalDTO
// @Router       /api/reports/seasonal/yearly [get]
func (h *AnalyticsHandler) YearlySeasonalSummary(c *fiber.Ctx) error {
	var in dto.SeasonalRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.sales.YearlySeasonalSummary(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// sendFile responde un adjunto descargable.
func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
