package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-analytics/internal/application/usecase"
)

// memCache caché en memoria con errores inyectables.
type memCache struct {
	mu     sync.Mutex
	items  map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.items[key] = payload
	c.sets++
	return nil
}

type sample struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

func TestReportKey_FormatoYDeterminismo(t *testing.T) {
	k1 := usecase.ReportKey("rfm", "company-1", "2026-01-01", "2026-01-31")
	k2 := usecase.ReportKey("rfm", "company-1", "2026-01-01", "2026-01-31")
	k3 := usecase.ReportKey("rfm", "company-1", "2026-01-01", "2026-02-28")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.True(t, strings.HasPrefix(k1, "report:rfm:company-1:"))
	assert.Len(t, strings.TrimPrefix(k1, "report:rfm:company-1:"), 40, "sha1 en hex")
}

func TestPeriodKey_CambiaConElDia(t *testing.T) {
	s := fixedSettings()
	p, err := s.ParsePeriod("", "")
	require.NoError(t, err)

	hoy := usecase.PeriodKey("rfm", "company-1", p, testNow)
	masTarde := usecase.PeriodKey("rfm", "company-1", p, testNow.Add(time.Hour))
	manana := usecase.PeriodKey("rfm", "company-1", p, testNow.AddDate(0, 0, 1))

	assert.Equal(t, hoy, masTarde, "mismo día, misma clave")
	assert.NotEqual(t, hoy, manana)
	assert.NotEqual(t, hoy, usecase.PeriodKey("rfm", "company-1", p, testNow, "10"))
}

func TestCached_MissCalculaYGuarda(t *testing.T) {
	cache := newMemCache()
	calls := 0
	compute := func() (*sample, error) {
		calls++
		return &sample{Name: "x", Total: 7}, nil
	}

	first, err := usecase.Cached(context.Background(), cache, "k", compute)
	require.NoError(t, err)
	second, err := usecase.Cached(context.Background(), cache, "k", compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "el segundo llamado sale de la caché")
	assert.Equal(t, first, second)
	assert.JSONEq(t, `{"name":"x","total":7}`, string(cache.items["k"]))
}

func TestCached_FallosDeCacheNoRompenElReporte(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("redis caído")
	cache.setErr = errors.New("redis caído")

	out, err := usecase.Cached(context.Background(), cache, "k", func() (*sample, error) {
		return &sample{Total: 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
}

func TestCached_PayloadInvalidoSeRecalcula(t *testing.T) {
	cache := newMemCache()
	cache.items["k"] = []byte("{roto")

	out, err := usecase.Cached(context.Background(), cache, "k", func() (*sample, error) {
		return &sample{Total: 9}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 9, out.Total)
	assert.Equal(t, 1, cache.sets)
}

func TestCached_ErrorDeCalculoNoSeGuarda(t *testing.T) {
	cache := newMemCache()
	boom := errors.New("db")

	_, err := usecase.Cached(context.Background(), cache, "k", func() (*sample, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, cache.sets)
}

func TestCached_SinCache(t *testing.T) {
	out, err := usecase.Cached(context.Background(), nil, "k", func() (*sample, error) {
		return &sample{Total: 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
}
