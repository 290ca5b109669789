package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
)

const (
	maxSheetName  = 31
	xlsxColWidth  = 18
	defaultSheet  = "Sheet1"
	numFmtMoney   = `"$"#,##0.00`
	numFmtPercent = `0.00"%"`
	numFmtNumber  = `#,##0.##`
	numFmtDate    = `yyyy-mm-dd`
)

// XLSXWriter serializa un Dataset en una hoja de Excel con cabecera en negrita.
type XLSXWriter struct{}

// NewXLSXWriter construye el writer.
func NewXLSXWriter() *XLSXWriter { return &XLSXWriter{} }

func (XLSXWriter) Format() string { return "xlsx" }
func (XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write genera el libro en memoria y lo vuelca en w.
func (XLSXWriter) Write(w io.Writer, ds appexport.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(ds.Title)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("xlsx: hoja: %w", err)
	}

	styles, err := columnStyles(f)
	if err != nil {
		return err
	}

	for i, c := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx: cabecera: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, c.Key); err != nil {
			return fmt.Errorf("xlsx: cabecera: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.header); err != nil {
			return fmt.Errorf("xlsx: estilo cabecera: %w", err)
		}
	}

	for r, row := range ds.Rows {
		for i, c := range ds.Columns {
			if i >= len(row) || row[i] == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return fmt.Errorf("xlsx: celda: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, xlsxValue(row[i])); err != nil {
				return fmt.Errorf("xlsx: celda %s: %w", cell, err)
			}
			if style, ok := styles.byKind[c.Kind]; ok {
				if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
					return fmt.Errorf("xlsx: estilo %s: %w", cell, err)
				}
			}
		}
	}

	if n := len(ds.Columns); n > 0 {
		last, err := excelize.ColumnNumberToName(n)
		if err != nil {
			return fmt.Errorf("xlsx: columnas: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", last, xlsxColWidth); err != nil {
			return fmt.Errorf("xlsx: ancho: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

type xlsxStyles struct {
	header int
	byKind map[appexport.ColumnKind]int
}

func columnStyles(f *excelize.File) (xlsxStyles, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return xlsxStyles{}, fmt.Errorf("xlsx: estilo: %w", err)
	}
	out := xlsxStyles{header: header, byKind: map[appexport.ColumnKind]int{}}
	formats := map[appexport.ColumnKind]string{
		appexport.KindMoney:   numFmtMoney,
		appexport.KindPercent: numFmtPercent,
		appexport.KindNumber:  numFmtNumber,
		appexport.KindDate:    numFmtDate,
	}
	for kind, format := range formats {
		format := format
		id, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
		if err != nil {
			return xlsxStyles{}, fmt.Errorf("xlsx: estilo: %w", err)
		}
		out.byKind[kind] = id
	}
	return out, nil
}

// xlsxValue convierte los decimales a float64 para que Excel los trate como números.
func xlsxValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}

func sheetName(title string) string {
	if title == "" {
		return "Reporte"
	}
	if utf8.RuneCountInString(title) <= maxSheetName {
		return title
	}
	return string([]rune(title)[:maxSheetName])
}
