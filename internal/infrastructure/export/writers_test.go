package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
)

func sampleDataset() appexport.Dataset {
	return appexport.Dataset{
		Title: "Márgenes por producto",
		Columns: []appexport.Column{
			{Key: "product_name", Kind: appexport.KindText},
			{Key: "units_sold", Kind: appexport.KindNumber},
			{Key: "revenue", Kind: appexport.KindMoney},
			{Key: "margin_percent", Kind: appexport.KindPercent},
			{Key: "last_sale", Kind: appexport.KindDate},
		},
		Rows: [][]any{
			{"Café, tostado", int64(1200), decimal.RequireFromString("1234567.5"), decimal.RequireFromString("61.9"), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
			{"Pan", int64(3), decimal.NewFromInt(15), decimal.Zero, nil},
		},
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.234.567,50", formatNumber(decimal.RequireFromString("1234567.5"), 2))
	assert.Equal(t, "-1.234.567,00", formatNumber(decimal.NewFromInt(-1234567), 2))
	assert.Equal(t, "0,33", formatNumber(decimal.RequireFromString("0.333"), 2))
	assert.Equal(t, "15", formatNumber(decimal.NewFromInt(15), 0))
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "$1.234.567,50", displayValue(decimal.RequireFromString("1234567.5"), appexport.KindMoney))
	assert.Equal(t, "61,90%", displayValue(decimal.RequireFromString("61.9"), appexport.KindPercent))
	assert.Equal(t, "01/03/2026", displayValue(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), appexport.KindDate))
	assert.Equal(t, "", displayValue(nil, appexport.KindNumber))
	assert.Equal(t, "Pan", displayValue("Pan", appexport.KindText))
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter().Write(&buf, sampleDataset()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "product_name,units_sold,revenue,margin_percent,last_sale", lines[0])
	assert.Equal(t, `"Café, tostado",1200,1234567.5,61.9,2026-03-01`, lines[1])
	assert.Equal(t, "Pan,3,15,0,", lines[2], "celda opcional vacía")
}

func TestXLSXWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewXLSXWriter()
	require.NoError(t, w.Write(&buf, sampleDataset()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Márgenes por producto"
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "product_name", header)

	name, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Café, tostado", name)

	units, err := f.GetCellValue(sheet, "B3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "3", units)

	empty, err := f.GetCellValue(sheet, "E3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSheetName_Trunca(t *testing.T) {
	assert.Equal(t, "Reporte", sheetName(""))
	long := strings.Repeat("á", 40)
	assert.Equal(t, 31, len([]rune(sheetName(long))))
}

func TestPDFWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPDFWriter("pos-analytics")
	w.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, w.Write(&buf, sampleDataset()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFWriter_SinFilas(t *testing.T) {
	var buf bytes.Buffer
	ds := sampleDataset()
	ds.Rows = nil

	require.NoError(t, NewPDFWriter("pos-analytics").Write(&buf, ds))
	assert.NotZero(t, buf.Len())
}

func TestWriters_Formatos(t *testing.T) {
	writers := []appexport.Writer{NewCSVWriter(), NewXLSXWriter(), NewPDFWriter("x")}
	formats := make([]string, 0, len(writers))
	for _, w := range writers {
		formats = append(formats, w.Format())
		assert.NotEmpty(t, w.ContentType())
	}
	assert.Equal(t, []string{"csv", "xlsx", "pdf"}, formats)
}
