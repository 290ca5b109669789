package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/pos-analytics/internal/domain"
	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
)

const dateLayout = "2006-01-02"

// Valores por defecto de los reportes.
const (
	DefaultWindowDays      = 30
	DefaultTopN            = 10
	MaxTopN                = 200
	DefaultRetentionMonths = 6
)

// Settings parámetros compartidos por todos los casos de uso de reportes.
type Settings struct {
	DefaultWindowDays int
	DefaultTopN       int
	MaxTopN           int
	RetentionMonths   int
	Location          *time.Location
	// Clock devuelve el instante de la consulta ("hoy"); nil usa time.Now.
	Clock func() time.Time
}

// DefaultSettings devuelve la configuración por defecto en hora local.
func DefaultSettings() Settings {
	return Settings{
		DefaultWindowDays: DefaultWindowDays,
		DefaultTopN:       DefaultTopN,
		MaxTopN:           MaxTopN,
		RetentionMonths:   DefaultRetentionMonths,
		Location:          time.Local,
	}
}

// withDefaults completa los campos en cero.
func (s Settings) withDefaults() Settings {
	if s.DefaultWindowDays <= 0 {
		s.DefaultWindowDays = DefaultWindowDays
	}
	if s.DefaultTopN <= 0 {
		s.DefaultTopN = DefaultTopN
	}
	if s.MaxTopN <= 0 {
		s.MaxTopN = MaxTopN
	}
	if s.RetentionMonths <= 0 {
		s.RetentionMonths = DefaultRetentionMonths
	}
	if s.Location == nil {
		s.Location = time.Local
	}
	return s
}

// Now devuelve el instante de la consulta en la zona configurada.
func (s Settings) Now() time.Time {
	now := time.Now
	if s.Clock != nil {
		now = s.Clock
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// TopN aplica el valor por defecto y el máximo permitido.
func (s Settings) TopN(n int) int {
	s = s.withDefaults()
	if n <= 0 {
		return s.DefaultTopN
	}
	if n > s.MaxTopN {
		return s.MaxTopN
	}
	return n
}

// ParsePeriod convierte los strings YYYY-MM-DD en un período; aplica valores por defecto si están vacíos.
// end vacío = ahora; start vacío = end − DefaultWindowDays. La fecha final es inclusiva hasta el final del día.
func (s Settings) ParsePeriod(startStr, endStr string) (analytics.Period, error) {
	s = s.withDefaults()
	now := s.Now()

	var start, end time.Time
	var err error
	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation(dateLayout, endStr, s.Location)
		if err != nil {
			return analytics.Period{}, fmt.Errorf("%w: end_date inválido: %q", domain.ErrInvalidPeriod, endStr)
		}
		end = endOfDay(end)
	}

	if startStr == "" {
		start = end.AddDate(0, 0, -s.DefaultWindowDays)
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, s.Location)
		if err != nil {
			return analytics.Period{}, fmt.Errorf("%w: start_date inválido: %q", domain.ErrInvalidPeriod, startStr)
		}
	}

	if start.After(end) {
		return analytics.Period{}, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidPeriod)
	}
	return analytics.Period{Start: start, End: end}, nil
}

// endOfDay devuelve el último instante del día de t en su zona horaria.
func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseEndDate interpreta solo la fecha final (reportes mensuales); vacío = ahora.
func (s Settings) ParseEndDate(endStr string) (time.Time, error) {
	s = s.withDefaults()
	if endStr == "" {
		return s.Now(), nil
	}
	end, err := time.ParseInLocation(dateLayout, endStr, s.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: end_date inválido: %q", domain.ErrInvalidPeriod, endStr)
	}
	return end, nil
}
