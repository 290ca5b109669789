// Package export implementa los writers de reportes: CSV, XLSX (excelize) y
// PDF (Maroto v2). Los montos y porcentajes se formatean en español
// (miles con punto, decimales con coma) salvo en CSV, que queda legible por máquina.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
)

const (
	isoDate     = "2006-01-02"
	displayDate = "02/01/2006"
)

var printer = message.NewPrinter(language.Spanish)

// formatNumber formatea un decimal con places decimales: 1234567.5 → "1.234.567,50".
func formatNumber(d decimal.Decimal, places int32) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(places)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		b.WriteString(printer.Sprintf("%d", n))
	} else {
		b.WriteString(intPart)
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}

// displayValue formatea una celda para lectura humana (PDF).
func displayValue(v any, kind appexport.ColumnKind) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(displayDate)
	case decimal.Decimal:
		switch kind {
		case appexport.KindMoney:
			return "$" + formatNumber(x, 2)
		case appexport.KindPercent:
			return formatNumber(x, 2) + "%"
		default:
			return formatNumber(x, 2)
		}
	case int64:
		s := printer.Sprintf("%d", x)
		if kind == appexport.KindPercent {
			s += "%"
		}
		return s
	case string:
		return x
	default:
		return ""
	}
}

// rawValue formatea una celda sin localización (CSV).
func rawValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(isoDate)
	case decimal.Decimal:
		return x.String()
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	default:
		return ""
	}
}
