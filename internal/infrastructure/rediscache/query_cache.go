package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/pkg/config"
)

var _ ledger.QueryCache = (*QueryCache)(nil)

// QueryCache cache de reportes del ledger sobre Redis, con serialización JSON.
// Solo lo consumen las consultas de reportes; las rutas de mutación nunca leen
// de aquí, así que una entrada vencida a lo sumo atrasa un reporte unos segundos.
type QueryCache struct {
	client *redis.Client
}

// New conecta al Redis configurado y verifica la conexión.
func New(ctx context.Context, cfg config.RedisConfig) (*QueryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &QueryCache{client: client}, nil
}

// Get deserializa el valor cacheado en dest. Devuelve (false, nil) si la clave no existe.
func (c *QueryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("unmarshal cache %s: %w", key, err)
	}
	return true, nil
}

// Set serializa y guarda el valor con TTL.
func (c *QueryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close cierra la conexión.
func (c *QueryCache) Close() error {
	return c.client.Close()
}
