package export

import (
	"fmt"
	"io"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
)

// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO del reporte                    Generado: dd/mm/aaaa │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por clave del registro                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  N registros                                                │
//	└─────────────────────────────────────────────────────────────┘

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// PDFWriter serializa un Dataset como una tabla en PDF usando Maroto v2.
type PDFWriter struct {
	author string
	now    func() time.Time
}

// NewPDFWriter construye el writer. author se escribe en los metadatos del documento.
func NewPDFWriter(author string) *PDFWriter {
	return &PDFWriter{author: author, now: time.Now}
}

func (*PDFWriter) Format() string      { return "pdf" }
func (*PDFWriter) ContentType() string { return "application/pdf" }

// Write genera el documento y vuelca sus bytes en w.
func (p *PDFWriter) Write(w io.Writer, ds appexport.Dataset) error {
	grid := max(len(ds.Columns), 1)
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(grid).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle(ds.Title, true).
		WithAuthor(p.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(ds.Title, p.now(), grid))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(ds.Columns))
	m.AddRows(tableRows(ds)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(ds.Rows), grid))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir: %w", err)
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow: título (izq) y fecha de generación (der). Con grillas muy chicas
// todo va en una sola columna.
func titleRow(title string, generated time.Time, grid int) core.Row {
	titleText := text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
	})
	dateText := text.New("Generado: "+generated.Format(displayDate), props.Text{
		Size: 8, Align: align.Right, Top: 3, Color: colorGray,
	})
	if grid < 2 {
		return row.New(14).Add(col.New(grid).Add(titleText, dateText))
	}
	left := grid * 2 / 3
	return row.New(14).Add(
		col.New(left).Add(titleText),
		col.New(grid-left).Add(dateText),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow(columns []appexport.Column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(1).Add(text.New(c.Key, props.Text{
			Style: fontstyle.Bold, Size: 6.5, Align: cellAlign(c.Kind),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(9).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, con franjas alternas.
func tableRows(ds appexport.Dataset) []core.Row {
	result := make([]core.Row, 0, len(ds.Rows))
	for i, values := range ds.Rows {
		cols := make([]core.Col, 0, len(ds.Columns))
		for j, c := range ds.Columns {
			var v any
			if j < len(values) {
				v = values[j]
			}
			cols = append(cols, col.New(1).Add(text.New(displayValue(v, c.Kind), props.Text{
				Size: 6.5, Align: cellAlign(c.Kind), Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(7).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func footerRow(count, grid int) core.Row {
	return row.New(8).Add(col.New(grid).Add(
		text.New(fmt.Sprintf("%d registros", count), props.Text{
			Size: 7, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cellAlign(kind appexport.ColumnKind) align.Type {
	switch kind {
	case appexport.KindMoney, appexport.KindPercent, appexport.KindNumber:
		return align.Right
	case appexport.KindDate:
		return align.Center
	default:
		return align.Left
	}
}
