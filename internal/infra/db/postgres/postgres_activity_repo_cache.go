package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/repository"
	"github.com/Antonio1491/parksys-sub000/internal/infra/metrics"
	red "github.com/Antonio1491/parksys-sub000/internal/infra/redis"
)

var _ repository.ActivityRepository = (*activityRepoCacheDecorator)(nil)

// activityRepoCacheDecorator fronts the activity catalog with a redis
// cache. Pricing configuration changes rarely and every checkout and
// confirmation reads it.
type activityRepoCacheDecorator struct {
	inner repository.ActivityRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewActivityRepoCacheDecorator(inner repository.ActivityRepository, cache red.RedisClient, ttl time.Duration) repository.ActivityRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &activityRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func (d *activityRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Activity, error) {
	// Transactional reads bypass the cache.
	if tx != nil {
		return d.inner.FindByID(ctx, tx, id)
	}

	key := fmt.Sprintf("activity:%s", id)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var act model.Activity
		if json.Unmarshal([]byte(val), &act) == nil {
			metrics.IncCacheRequest("activity", "hit")
			return &act, nil
		}
	} else if err != redis.Nil {
		// Redis being down degrades to the database.
	}

	metrics.IncCacheRequest("activity", "miss")
	act, err := d.inner.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(act); err == nil {
		_ = d.cache.Set(ctx, key, b, d.ttl)
	}
	return act, nil
}

func (d *activityRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, a *model.Activity) error {
	_ = d.cache.Del(ctx, fmt.Sprintf("activity:%s", a.ID))
	return d.inner.Save(ctx, tx, a)
}
