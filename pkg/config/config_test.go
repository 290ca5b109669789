package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-analytics/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "pos-analytics", cfg.App.Name)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.Equal(t, 30, cfg.Analytics.DefaultWindowDays)
	assert.Equal(t, 10, cfg.Analytics.DefaultTopN)
	assert.Equal(t, 200, cfg.Analytics.MaxTopN)
	assert.Equal(t, 6, cfg.Analytics.RetentionMonths)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL_SECONDS", "120")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ANALYTICS_DEFAULT_WINDOW_DAYS", "90")
	t.Setenv("ANALYTICS_TIMEZONE", "UTC")
	t.Setenv("EXPORT_ROLES", "admin, gerente,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 90, cfg.Analytics.DefaultWindowDays)
	assert.Equal(t, []string{"admin", "gerente"}, cfg.JWT.ExportRoles)

	loc, err := cfg.Analytics.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_VentanaInvalida(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ANALYTICS_DEFAULT_WINDOW_DAYS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss/word", DBName: "pos", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%2Fword@db:5432/pos?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
