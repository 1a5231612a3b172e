// Package analytics contiene los reportes de inventario y ventas y los dashboards.
// Todo es de solo lectura; las consultas independientes se lanzan en paralelo.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
)

const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"

	defaultReportDays = 30
)

var (
	hundred      = decimal.NewFromInt(100)
	lowUsageRate = decimal.NewFromFloat(0.05)
)

// periodDays días hacia atrás desde hoy para cada periodo con nombre.
var periodDays = map[string]int{
	PeriodToday: 0,
	PeriodWeek:  7,
	PeriodMonth: 30,
	PeriodYear:  365,
}

// window rango [start, end) en UTC. end es la medianoche siguiente al último día incluido.
type window struct {
	start time.Time
	end   time.Time
	kind  string
}

func today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// namedWindow ventana que termina hoy (incluido) y empieza days días atrás.
func namedWindow(now time.Time, kind string) window {
	days, ok := periodDays[kind]
	if !ok {
		kind, days = PeriodWeek, periodDays[PeriodWeek]
	}
	t := today(now)
	return window{start: t.AddDate(0, 0, -days), end: t.AddDate(0, 0, 1), kind: kind}
}

// resolveWindow interpreta start_date/end_date (ambos inclusivos) o un periodo con nombre.
// Si falta alguna de las fechas se usa el periodo; sin periodo, defaultKind o los
// últimos 30 días cuando defaultKind es vacío.
func resolveWindow(now time.Time, req dto.PeriodRequest, defaultKind string) (window, error) {
	if req.StartDate != "" && req.EndDate != "" {
		start, err := dto.ParseDate(req.StartDate)
		if err != nil {
			return window{}, domain.Invalid("start_date", "formato esperado YYYY-MM-DD")
		}
		end, err := dto.ParseDate(req.EndDate)
		if err != nil {
			return window{}, domain.Invalid("end_date", "formato esperado YYYY-MM-DD")
		}
		if end.Before(*start) {
			return window{}, domain.Invalid("end_date", "no puede ser anterior a start_date")
		}
		return window{start: *start, end: end.AddDate(0, 0, 1)}, nil
	}
	if req.Period != "" {
		if _, ok := periodDays[req.Period]; !ok {
			return window{}, domain.Invalid("period", "use today, week, month o year")
		}
		return namedWindow(now, req.Period), nil
	}
	if defaultKind != "" {
		return namedWindow(now, defaultKind), nil
	}
	t := today(now)
	return window{start: t.AddDate(0, 0, -defaultReportDays), end: t.AddDate(0, 0, 1)}, nil
}

// previous ventana inmediatamente anterior de igual duración.
func (w window) previous() window {
	return window{start: w.start.Add(-w.end.Sub(w.start)), end: w.start}
}

func (w window) dto() dto.PeriodDTO {
	last := w.end.AddDate(0, 0, -1)
	return dto.PeriodDTO{
		Type:      w.kind,
		StartDate: w.start.Format(dto.DateLayout),
		EndDate:   last.Format(dto.DateLayout),
	}
}

// percentOf part / total × 100 redondeado a 1 decimal; 0 si total no es positivo.
func percentOf(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(1)
}
