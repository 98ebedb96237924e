// Package pdf genera el reporte de conteos de un contenedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Contenedor + Empresa │ Rango de fechas              │
//	│  RESUMEN: Objetivo / Umbral + / Umbral -                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Usuario | Efectivo | Varianza | Nota        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de conteos y conteos fuera de umbral          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"math"
	"time"

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

	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/variance"
	"github.com/jhoicas/CashCount-api/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ ports.CountReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.CountReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	money *money.Formatter
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(f *money.Formatter) *MarotoPDFGenerator {
	if f == nil {
		f = money.Default()
	}
	return &MarotoPDFGenerator{money: f}
}

// GenerateCountReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCountReport(c *entity.Container, counts []*entity.Count, w entity.CountWindow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Conteos - "+c.Name, true).
		WithAuthor(c.CompanyCode, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c, w))
	m.AddRows(g.summaryRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())

	breaches := 0
	for _, cnt := range counts {
		res := variance.Evaluate(*c, cnt.Cash)
		if res.Breach {
			breaches++
		}
		m.AddRows(g.countRow(cnt, res))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(counts), breaches))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(c *entity.Container, w entity.CountWindow) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Empresa: "+c.CompanyCode, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("REPORTE DE CONTEOS", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(windowLabel(w), props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func (g *MarotoPDFGenerator) summaryRow(c *entity.Container) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("OBJETIVO", g.money.Format(c.Target)),
		cell("UMBRAL SOBRANTE", g.money.Format(c.PosThreshold)),
		cell("UMBRAL FALTANTE", g.money.Format(c.NegThreshold)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Usuario", 3, align.Left),
		h("Efectivo", 2, align.Right),
		h("Varianza", 2, align.Right),
		h("Nota", 2, align.Left),
	)
}

func (g *MarotoPDFGenerator) countRow(cnt *entity.Count, res variance.Result) core.Row {
	varStyle := props.Text{Size: 8, Align: align.Right, Top: 1}
	if res.Breach {
		varStyle.Style = fontstyle.Bold
		varStyle.Color = colorAlert
	}
	user := cnt.UserID
	if cnt.FirstName != "" || cnt.LastName != "" {
		u := entity.User{FirstName: cnt.FirstName, LastName: cnt.LastName}
		user = u.DisplayName()
	}
	return row.New(7).Add(
		col.New(3).Add(text.New(cnt.Time, props.Text{Size: 8, Top: 1})),
		col.New(3).Add(text.New(user, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(g.money.Format(cnt.Cash), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(g.money.Format(res.Rounded), varStyle)),
		col.New(2).Add(text.New(cnt.Note, props.Text{Size: 7, Top: 1, Color: colorGray})),
	)
}

func footerRow(total, breaches int) core.Row {
	return row.New(10).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Conteos: %d   |   Fuera de umbral: %d", total, breaches),
			props.Text{Size: 8, Top: 3, Color: colorGray},
		)),
	)
}

func windowLabel(w entity.CountWindow) string {
	from := "inicio"
	if w.Start > 0 {
		from = time.UnixMilli(w.Start).UTC().Format("02/01/2006 15:04")
	}
	to := "hoy"
	if w.End > 0 && w.End != math.MaxInt64 {
		to = time.UnixMilli(w.End).UTC().Format("02/01/2006 15:04")
	}
	return from + " - " + to
}
