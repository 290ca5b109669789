package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// percent devuelve part/whole×100 redondeado a 2 decimales; 0 si whole es 0.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(2)
}

// ceilDiv devuelve ⌈num/den⌉ para den > 0 usando una sola división decimal.
func ceilDiv(num, den decimal.Decimal) int {
	return int(num.Div(den).Ceil().IntPart())
}
