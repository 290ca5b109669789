package export

import (
	"encoding/csv"
	"fmt"
	"io"

	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
)

// CSVWriter serializa un Dataset como CSV (RFC 4180) con cabecera de claves.
type CSVWriter struct{}

// NewCSVWriter construye el writer.
func NewCSVWriter() *CSVWriter { return &CSVWriter{} }

func (CSVWriter) Format() string      { return "csv" }
func (CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

// Write escribe cabecera y filas. Las celdas opcionales vacías quedan en blanco.
func (CSVWriter) Write(w io.Writer, ds appexport.Dataset) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c.Key
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv: cabecera: %w", err)
	}

	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = rawValue(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: fila: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
