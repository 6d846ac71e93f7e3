// Package pdf genera el reporte de saldos de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empresa    │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Ubicación | Saldo                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: un renglón por producto                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNegative = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador. appName aparece en el encabezado.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

// GenerateBalanceReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBalanceReport(rep *dto.BalanceReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de saldos de inventario", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep, g.appName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow("Producto", "Ubicación", "Saldo"))
	if len(rep.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range balanceRows(rep.Rows) {
		m.AddRows(r)
	}

	if len(rep.Totals) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(tableHeaderRow("Producto", "", "Total"))
		for _, r := range totalRows(rep.Totals) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(
			"Saldo = entradas - salidas por ubicación, calculado sobre el historial completo de movimientos. "+
				"Los saldos negativos se muestran tal cual.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep *dto.BalanceReportResponse, appName string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE SALDOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d filas", len(rep.Rows)), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(first, second, last string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(first, 5, align.Left),
		h(second, 5, align.Left),
		h(last, 2, align.Right),
	)
}

func balanceRows(rows []dto.BalanceRowResponse) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(r.ProductID+" - "+r.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(r.LocationID+" - "+r.LocationName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(quantityText(r.Balance, false)),
		))
	}
	return result
}

func totalRows(totals []dto.ProductTotalResponse) []core.Row {
	result := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		result = append(result, row.New(7).Add(
			col.New(10).Add(text.New(t.ProductID+" - "+t.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(quantityText(t.Total, true)),
		))
	}
	return result
}

func quantityText(n int64, bold bool) core.Component {
	p := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
	if bold {
		p.Style = fontstyle.Bold
	}
	if n < 0 {
		p.Color = colorNegative
	}
	return text.New(report.FormatQuantity(n), p)
}
