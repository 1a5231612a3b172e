// Package redis numera pedidos y órdenes de compra con contadores INCR de Redis.
// El contador de cada día se siembra desde PostgreSQL la primera vez que se usa,
// de modo que un reinicio de Redis no repite números ya emitidos.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sweetbite/bakery-api/internal/domain/numbering"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
	"github.com/sweetbite/bakery-api/pkg/config"
)

var _ repository.SequenceGenerator = (*SequenceGenerator)(nil)

const (
	keyPrefix  = "seq:"
	counterTTL = 48 * time.Hour
	lockTTL    = 5 * time.Second
)

// Seeder devuelve el mayor número emitido para (prefix, day) en la base de datos.
type Seeder interface {
	MaxIssued(ctx context.Context, prefix string, day time.Time) (int64, error)
}

// SequenceGenerator implementa repository.SequenceGenerator sobre Redis.
type SequenceGenerator struct {
	rdb    goredis.UniversalClient
	locker *redislock.Client
	seeder Seeder
	log    zerolog.Logger
}

// NewClient abre la conexión y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewSequenceGenerator construye el generador.
func NewSequenceGenerator(rdb goredis.UniversalClient, seeder Seeder, log zerolog.Logger) *SequenceGenerator {
	return &SequenceGenerator{
		rdb:    rdb,
		locker: redislock.New(rdb),
		seeder: seeder,
		log:    log,
	}
}

// Next incrementa el contador de (prefix, day).
func (g *SequenceGenerator) Next(ctx context.Context, prefix string, day time.Time) (int64, error) {
	key := keyPrefix + numbering.DayKey(prefix, day)

	exists, err := g.rdb.Exists(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis exists %s: %w", key, err)
	}
	if exists == 0 {
		if err := g.seed(ctx, key, prefix, day); err != nil {
			return 0, err
		}
	}

	n, err := g.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return n, nil
}

// seed fija el valor inicial bajo lock; SETNX evita pisar un contador que otro
// proceso haya sembrado mientras esperábamos.
func (g *SequenceGenerator) seed(ctx context.Context, key, prefix string, day time.Time) error {
	lock, err := g.locker.Obtain(ctx, "lock:"+key, lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 40),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return fmt.Errorf("lock %s no obtenido", key)
	}
	if err != nil {
		return fmt.Errorf("obtain lock %s: %w", key, err)
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			g.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el lock del contador")
		}
	}()

	max, err := g.seeder.MaxIssued(ctx, prefix, day)
	if err != nil {
		return fmt.Errorf("seed %s: %w", key, err)
	}
	set, err := g.rdb.SetNX(ctx, key, max, counterTTL).Result()
	if err != nil {
		return fmt.Errorf("redis setnx %s: %w", key, err)
	}
	if set {
		g.log.Info().Str("key", key).Int64("seed", max).Msg("contador diario sembrado")
	}
	return nil
}
