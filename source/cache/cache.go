// Package cache keeps a time-boxed copy of the order snapshot in redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	nt "cafedash/entity"
	"cafedash/source"
)

const (
	// DefaultTTL matches the backend's revalidation interval.
	DefaultTTL = 60 * time.Second
	DefaultKey = "cafedash:orders"
)

// Counter is satisfied by prometheus counters.
type Counter interface {
	Inc()
}

// Cache wraps a Fetcher, serving from redis until the ttl expires.
type Cache struct {
	Key    string
	TTL    time.Duration
	Hits   Counter
	Misses Counter

	rdb    *redis.Client
	next   source.Fetcher
	logger nt.Logger
}

// New creates a cache with the default key and ttl.
func New(rdb *redis.Client, next source.Fetcher, lgr nt.Logger) *Cache {

	return &Cache{
		Key:    DefaultKey,
		TTL:    DefaultTTL,
		rdb:    rdb,
		next:   next,
		logger: lgr,
	}
}

// FetchOrders returns cached orders when fresh, fetching and storing them otherwise.
// Redis trouble is logged and bypassed.
func (cache *Cache) FetchOrders(ctx context.Context) (orders []nt.Order, err error) {

	data, err := cache.rdb.Get(ctx, cache.Key).Bytes()
	switch {
	case err == nil:
		orders, err = source.Decode(data)
		if err == nil {
			inc(cache.Hits)
			return
		}
		cache.logger.Error(ctx, "discarding bad cache entry", err, "key", cache.Key)
	case err == redis.Nil:
	default:
		cache.logger.Error(ctx, "failed to get from cache", err, "key", cache.Key)
	}
	inc(cache.Misses)

	orders, err = cache.next.FetchOrders(ctx)
	if err != nil {
		return
	}

	data, err = json.Marshal(orders)
	if err != nil {
		err = errors.Wrapf(err, "failed to encode orders")
		return
	}

	err = cache.rdb.Set(ctx, cache.Key, data, cache.TTL).Err()
	if err != nil {
		cache.logger.Error(ctx, "failed to set cache", err, "key", cache.Key)
		err = nil
	}
	return
}

// Invalidate drops the cached snapshot so the next fetch goes upstream.
func (cache *Cache) Invalidate(ctx context.Context) (err error) {

	err = cache.rdb.Del(ctx, cache.Key).Err()
	err = errors.Wrapf(err, "failed to delete %s", cache.Key)
	return
}

func inc(counter Counter) {
	if counter != nil {
		counter.Inc()
	}
}
