package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-analytics/internal/application/usecase"
	"github.com/jhoicas/pos-analytics/internal/domain"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedSettings() usecase.Settings {
	s := usecase.DefaultSettings()
	s.Location = time.UTC
	s.Clock = func() time.Time { return testNow }
	return s
}

func TestParsePeriod_PorDefectoUltimos30Dias(t *testing.T) {
	p, err := fixedSettings().ParsePeriod("", "")
	require.NoError(t, err)

	assert.Equal(t, testNow, p.End)
	assert.Equal(t, testNow.AddDate(0, 0, -30), p.Start)
	assert.Equal(t, 30, p.Days())
}

func TestParsePeriod_FechaFinalInclusiva(t *testing.T) {
	p, err := fixedSettings().ParsePeriod("2026-02-01", "2026-02-28")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2026, 2, 28, 23, 59, 59, 999999999, time.UTC), p.End)
	assert.True(t, p.Contains(time.Date(2026, 2, 28, 18, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2026, 2, 28, 23, 59, 59, 500000000, time.UTC)), "último subsegundo del día")
	assert.False(t, p.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 27, p.Days())
}

func TestParsePeriod_FinDeDiaConCambioDeHorario(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("zona horaria no disponible")
	}
	s := fixedSettings()
	s.Location = ny

	// 2026-03-08 dura 23 horas en Nueva York.
	p, err := s.ParsePeriod("2026-03-08", "2026-03-08")
	require.NoError(t, err)
	assert.True(t, p.End.Equal(time.Date(2026, 3, 8, 23, 59, 59, 999999999, ny)), p.End.String())
}

func TestParsePeriod_SoloFin(t *testing.T) {
	p, err := fixedSettings().ParsePeriod("", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 23, 59, 59, 999999999, time.UTC), p.Start)
}

func TestParsePeriod_Errores(t *testing.T) {
	cases := []struct {
		name, start, end string
	}{
		{"inicio posterior al fin", "2026-03-10", "2026-03-01"},
		{"inicio mal formado", "10/03/2026", ""},
		{"fin mal formado", "", "2026-13-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fixedSettings().ParsePeriod(tc.start, tc.end)
			assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
		})
	}
}

func TestParseEndDate(t *testing.T) {
	s := fixedSettings()

	end, err := s.ParseEndDate("")
	require.NoError(t, err)
	assert.Equal(t, testNow, end)

	end, err = s.ParseEndDate("2026-01-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), end)

	_, err = s.ParseEndDate("ayer")
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestTopN_DefectoYMaximo(t *testing.T) {
	s := usecase.Settings{}
	assert.Equal(t, usecase.DefaultTopN, s.TopN(0))
	assert.Equal(t, 25, s.TopN(25))
	assert.Equal(t, usecase.MaxTopN, s.TopN(5000))
}

func TestNow_UsaZonaConfigurada(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	s := fixedSettings()
	s.Location = bogota

	assert.Equal(t, bogota, s.Now().Location())
	assert.True(t, s.Now().Equal(testNow))
}
