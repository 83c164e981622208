package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"maitri-medico/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "products:"

// ProductCache holds public category listings. Errors are logged and
// treated as misses, so callers always fall back to the database.
type ProductCache interface {
	GetCategory(ctx context.Context, category string) ([]model.Product, bool)
	SetCategory(ctx context.Context, category string, products []model.Product)
	Invalidate(ctx context.Context)
}

type redisProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProductCache returns a redis-backed cache, or a no-op one when rdb is nil.
func NewProductCache(rdb *redis.Client, ttl time.Duration) ProductCache {
	if rdb == nil {
		return NoopProductCache{}
	}
	return &redisProductCache{rdb: rdb, ttl: ttl}
}

func categoryKey(category string) string {
	return fmt.Sprintf("%scategory:%s", keyPrefix, category)
}

func (c *redisProductCache) GetCategory(ctx context.Context, category string) ([]model.Product, bool) {
	val, err := c.rdb.Get(ctx, categoryKey(category)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		zap.L().Warn("product cache get", zap.String("category", category), zap.Error(err))
		return nil, false
	}
	var products []model.Product
	if err := json.Unmarshal(val, &products); err != nil {
		zap.L().Warn("product cache decode", zap.String("category", category), zap.Error(err))
		return nil, false
	}
	return products, true
}

func (c *redisProductCache) SetCategory(ctx context.Context, category string, products []model.Product) {
	val, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, categoryKey(category), val, c.ttl).Err(); err != nil {
		zap.L().Warn("product cache set", zap.String("category", category), zap.Error(err))
	}
}

// Invalidate drops every cached listing.
func (c *redisProductCache) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		zap.L().Warn("product cache scan", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		zap.L().Warn("product cache invalidate", zap.Error(err))
	}
}

// NoopProductCache never hits.
type NoopProductCache struct{}

func (NoopProductCache) GetCategory(context.Context, string) ([]model.Product, bool) { return nil, false }
func (NoopProductCache) SetCategory(context.Context, string, []model.Product)        {}
func (NoopProductCache) Invalidate(context.Context)                                  {}
