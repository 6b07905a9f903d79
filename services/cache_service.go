package services

import (
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	catalogKeyPrefix   = "catalog:"
	blacklistKeyPrefix = "blacklist:"
)

// CacheService wraps Redis. With caching disabled every read misses and every write is a no-op.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	cs := &CacheService{logger: logger, config: cfg}
	if cfg.Cache != nil && cfg.Cache.Enabled {
		cs.client = newRedisClient(cfg.Cache)
	}
	return cs
}

func newRedisClient(cfg *structs.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,

		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
	})
}

func (cs *CacheService) Enabled() bool {
	return cs.client != nil
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if cs.client != nil {
		return cs.client.Close()
	}
	return nil
}

func (cs *CacheService) Ping(ctx context.Context) error {
	if cs.client == nil {
		return nil
	}
	return cs.client.Ping(ctx).Err()
}

// withRetry retries transient Redis failures with jittered exponential backoff
func (cs *CacheService) withRetry(ctx context.Context, operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxRetries || !isRetryableCacheError(err) {
			break
		}

		backoff := min(100*time.Millisecond<<attempt, 2*time.Second)
		jittered := backoff/2 + rand.N(backoff/2+1)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(jittered):
		}
	}

	return fmt.Errorf("redis operation failed: %w", lastErr)
}

func isRetryableCacheError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	errStr := err.Error()
	for _, retryable := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}

// Get returns "" on a miss
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	if cs.client == nil {
		return "", nil
	}
	var result string
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)
	return result, err
}

func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if cs.client == nil {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, 3)
}

// DeletePattern removes all keys matching a pattern using SCAN
func (cs *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	if cs.client == nil {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		var cursor uint64
		for {
			keys, next, err := cs.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			if len(keys) > 0 {
				if err := cs.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("delete failed: %w", err)
				}
			}
			cursor = next
			if cursor == 0 {
				return nil
			}
		}
	}, 3)
}

func catalogKey(filter structs.ProductFilter) string {
	active := "any"
	if filter.Active != nil {
		active = fmt.Sprintf("%t", *filter.Active)
	}
	return fmt.Sprintf("%slist:%s:%s:%s", catalogKeyPrefix, filter.Category, active, strings.ToLower(strings.TrimSpace(filter.Search)))
}

// GetProductList returns nil on a miss
func (cs *CacheService) GetProductList(ctx context.Context, filter structs.ProductFilter) ([]tables.Product, error) {
	products, err := getJSON[[]tables.Product](ctx, cs, catalogKey(filter))
	if err != nil || products == nil {
		return nil, err
	}
	return *products, nil
}

func (cs *CacheService) SetProductList(ctx context.Context, filter structs.ProductFilter, products []tables.Product) error {
	return setJSON(ctx, cs, catalogKey(filter), products, cs.config.Cache.CatalogTTL)
}

// InvalidateCatalog drops every cached product listing
func (cs *CacheService) InvalidateCatalog(ctx context.Context) error {
	return cs.DeletePattern(ctx, catalogKeyPrefix+"*")
}

// BlacklistToken rejects the token id until the token would have expired anyway
func (cs *CacheService) BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return cs.Set(ctx, blacklistKeyPrefix+jti.String(), "1", ttl)
}

// IsTokenBlacklisted always reports false with caching disabled
func (cs *CacheService) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error) {
	val, err := cs.Get(ctx, blacklistKeyPrefix+jti.String())
	if err != nil {
		return false, err
	}
	return val != "", nil
}

func setJSON[T any](ctx context.Context, cs *CacheService, key string, value T, ttl time.Duration) error {
	if cs.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(ctx, key, data, ttl)
}

func getJSON[T any](ctx context.Context, cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil
	}

	var result T
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
