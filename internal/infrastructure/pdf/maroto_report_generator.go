// Package pdf implementa la exportación del dashboard de ventas a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título  │  Fecha de generación + período           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Profit total / Jobs / Promedio / Tasa de pago         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Equipos                                              │
//	│  TABLA: Top agentes                                          │
//	│  TABLA: ROI por fuente de lead                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ ports.ReportRenderer = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador; los números se formatean en inglés
// (1,234.50) igual que el dashboard.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(language.English)}
}

// RenderDashboardReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderDashboardReport(_ context.Context, r *dto.DashboardReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor("sales-analytics-api", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.kpiRow(r.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Profit by team"))
	m.AddRows(tableHeaderRow([]column{
		{"Team", 4, align.Left}, {"Profit", 3, align.Right}, {"Jobs", 2, align.Center}, {"Payment rate", 3, align.Right},
	}))
	for i, t := range r.Teams {
		m.AddRows(striped(i, row.New(6).Add(
			cell(t.Team, 4, align.Left),
			cell(g.money(t.TotalProfit), 3, align.Right),
			cell(g.printer.Sprintf("%d", t.JobCount), 2, align.Center),
			cell(g.percent(t.PaymentRate), 3, align.Right),
		)))
	}

	m.AddRows(sectionTitle("Top performers"))
	m.AddRows(tableHeaderRow([]column{
		{"#", 1, align.Center}, {"Agent", 4, align.Left}, {"Team", 3, align.Left}, {"Profit", 2, align.Right}, {"Jobs", 2, align.Center},
	}))
	for i, a := range r.TopPerformers {
		m.AddRows(striped(i, row.New(6).Add(
			cell(fmt.Sprintf("%d", a.Rank), 1, align.Center),
			cell(a.Agent, 4, align.Left),
			cell(a.Team, 3, align.Left),
			cell(g.money(a.TotalProfit), 2, align.Right),
			cell(g.printer.Sprintf("%d", a.JobCount), 2, align.Center),
		)))
	}

	m.AddRows(sectionTitle("Lead source ROI"))
	m.AddRows(tableHeaderRow([]column{
		{"Lead source", 4, align.Left}, {"Profit", 3, align.Right}, {"Collected", 3, align.Right}, {"ROI", 2, align.Right},
	}))
	for i, l := range r.LeadROI {
		m.AddRows(striped(i, row.New(6).Add(
			cell(l.LeadSource, 4, align.Left),
			cell(g.money(l.TotalProfit), 3, align.Right),
			cell(g.money(l.PaidProfit), 3, align.Right),
			cell(g.percent(l.ROI), 2, align.Right),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(r *dto.DashboardReportDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New("Generated: "+r.GeneratedAt, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Period: "+periodLabel(r.Period), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// kpiRow cuatro indicadores principales del resumen.
func (g *MarotoReportGenerator) kpiRow(s dto.SummaryDTO) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 7,
			}),
		)
	}
	return row.New(18).Add(
		kpi("TOTAL PROFIT", g.money(s.TotalProfit)),
		kpi("JOBS", g.printer.Sprintf("%d", s.TotalJobs)),
		kpi("AVG PROFIT / JOB", g.money(s.AvgProfitPerJob)),
		kpi("PAYMENT RATE", g.percent(s.PaymentRate)),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 4}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cols []column) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(out...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

// striped alterna el fondo de las filas pares.
func striped(i int, r core.Row) core.Row {
	if i%2 == 1 {
		return r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) money(v float64) string {
	return g.printer.Sprintf("$%.2f", v)
}

func (g *MarotoReportGenerator) percent(v float64) string {
	return g.printer.Sprintf("%.2f%%", v)
}

func periodLabel(p dto.PeriodRequest) string {
	switch {
	case p.Start == "" && p.End == "":
		return "all time"
	case p.Start == "":
		return "until " + p.End
	case p.End == "":
		return "since " + p.Start
	default:
		return p.Start + " to " + p.End
	}
}
