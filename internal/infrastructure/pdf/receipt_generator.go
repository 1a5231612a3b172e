// Package pdf genera el comprobante de pedido de SweetBite con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: SweetBite            │  N° Pedido + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto + tipo de pedido                │
//	│  ENTREGA: Dirección + indicaciones (solo online)            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Torta | P.Unit | Total                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Envío / Impuestos / TOTAL               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR del número de pedido + estado y pago             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sweetbite/bakery-api/internal/application/orders"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

var _ orders.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 156, Green: 39, Blue: 96}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[string]string{
	entity.OrderPending:        "Pendiente",
	entity.OrderConfirmed:      "Confirmado",
	entity.OrderPreparing:      "En preparación",
	entity.OrderReady:          "Listo",
	entity.OrderOutForDelivery: "En camino",
	entity.OrderDelivered:      "Entregado",
	entity.OrderCancelled:      "Cancelado",
}

var paymentLabels = map[string]string{
	entity.PaymentCash:   "Efectivo",
	entity.PaymentCard:   "Tarjeta",
	entity.PaymentOnline: "En línea",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa orders.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	printer *message.Printer
}

// NewReceiptGenerator construye el generador. Los montos se formatean con separadores en inglés (1,234.50).
func NewReceiptGenerator() *ReceiptGenerator {
	return &ReceiptGenerator{printer: message.NewPrinter(language.AmericanEnglish)}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes. customer puede ser nil.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, order *entity.Order, customer *entity.User) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+order.OrderNumber, true).
		WithAuthor("SweetBite", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order, customer))
	if order.OrderType == entity.OrderTypeOnline {
		m.AddRows(deliveryRow(order))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(order *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("SweetBite", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New("Pastelería artesanal", props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(order *entity.Order, customer *entity.User) core.Row {
	name, contact := "Cliente", "—"
	if customer != nil {
		if full := customer.FirstName + " " + customer.LastName; len(full) > 1 {
			name = full
		} else {
			name = customer.Username
		}
		contact = nonEmpty(customer.Email, "—")
	}
	kind := "Mostrador"
	if order.OrderType == entity.OrderTypeOnline {
		kind = "Online"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tipo de pedido: %s", contact, kind),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func deliveryRow(order *entity.Order) core.Row {
	date := "—"
	if order.DeliveryDate != nil {
		date = order.DeliveryDate.Format("02/01/2006 15:04")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(order.DeliveryAddress, "—"), props.Text{Size: 9, Top: 6}),
			text.New(fmt.Sprintf("Fecha: %s   |   Indicaciones: %s", date, nonEmpty(order.DeliveryInstructions, "—")),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Torta", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *ReceiptGenerator) itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := nonEmpty(it.CakeName, it.CakeID)
		if it.CustomizationNotes != "" {
			name += " (" + it.CustomizationNotes + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(it.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *ReceiptGenerator) totalsRow(order *entity.Order) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(d decimal.Decimal, top float64) core.Component {
		return text.New(g.money(d), props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 0),
			label("Envío:", 5),
			label("Impuestos:", 10),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 16,
			}),
		),
		col.New(3).Add(
			value(order.Subtotal, 0),
			value(order.DeliveryFee, 5),
			value(order.Tax, 10),
			text.New(g.money(order.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 16,
			}),
		),
	)
}

func footerRow(order *entity.Order) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(order.OrderNumber, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Estado: "+nonEmpty(statusLabels[order.OrderStatus], order.OrderStatus), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary,
			}),
			text.New("Pago: "+nonEmpty(paymentLabels[order.PaymentMethod], order.PaymentMethod)+" ("+order.PaymentStatus+")",
				props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}),
			text.New("Presenta este código al retirar o recibir tu pedido. ¡Gracias por elegir SweetBite!",
				props.Text{Size: 8, Top: 18, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un monto con dos decimales y separador de miles: 1234.5 → "$1,234.50".
func (g *ReceiptGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}
