// Package cache implementa ports.ReportCache sobre Redis, con un noop para
// cuando la caché está deshabilitada.
package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-analytics/internal/application/ports"
	"github.com/jhoicas/pos-analytics/pkg/config"
)

const (
	defaultReportTTL = time.Minute
	pingTimeout      = 5 * time.Second
)

var (
	_ ports.ReportCache = (*RedisReportCache)(nil)
	_ ports.ReportCache = NoopReportCache{}
)

// RedisReportCache guarda el JSON de cada reporte con un TTL fijo.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NoopReportCache nunca encuentra nada y descarta lo que recibe.
type NoopReportCache struct{}

// NewReportCache devuelve el noop si la caché está deshabilitada; si no, conecta
// a Redis y verifica la conexión con un ping.
func NewReportCache(ctx context.Context, cfg config.CacheConfig) (ports.ReportCache, func() error, error) {
	if !cfg.Enabled {
		return NoopReportCache{}, func() error { return nil }, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisReportCache(client, time.Duration(cfg.TTLSeconds)*time.Second), client.Close, nil
}

// NewRedisReportCache envuelve un cliente ya creado. ttl ≤ 0 usa un minuto.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = defaultReportTTL
	}
	return &RedisReportCache{client: client, ttl: ttl}
}

func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return payload, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (NoopReportCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopReportCache) Set(context.Context, string, []byte) error         { return nil }

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}
