package analytics

import "time"

const hoursPerDay = 24

// Period rango de fechas [Start, End] de un reporte.
type Period struct {
	Start time.Time
	End   time.Time
}

// Days devuelve la longitud del período en días completos, mínimo 1.
func (p Period) Days() int {
	d := DaysBetween(p.Start, p.End)
	if d < 1 {
		return 1
	}
	return d
}

// Contains indica si t cae dentro del período (extremos incluidos).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// DaysBetween devuelve los días completos transcurridos de from a to (piso).
// Negativo si to es anterior a from.
func DaysBetween(from, to time.Time) int {
	d := to.Sub(from)
	days := int(d / (hoursPerDay * time.Hour))
	if d < 0 && d%(hoursPerDay*time.Hour) != 0 {
		days--
	}
	return days
}
