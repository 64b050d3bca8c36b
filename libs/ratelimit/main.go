package ratelimit

import (
	"context"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Store is the counter storage shared by all limiter instances, usually a
// *cache.Cache backed by redis.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTtl(ctx context.Context, key string, value string, ttl time.Duration) error
	SetKeepTtl(ctx context.Context, key string, value string) error
}

type SharedRateLimiter struct {
	store Store
}

func NewSharedRateLimiter(store Store) *SharedRateLimiter {
	return &SharedRateLimiter{
		store: store,
	}
}

// AllowIfTracked consumes one request from an existing window and returns the
// amount left, negative once the limit is exceeded. An error means the key is
// not tracked (or the store failed) and AllowNew should be used.
func (srl *SharedRateLimiter) AllowIfTracked(ctx context.Context, key string) (int, error) {
	stored, err := srl.store.Get(ctx, "ratelimiter:"+key)
	if err != nil {
		return 0, err
	}

	amountLeft, err := strconv.Atoi(stored)
	if err != nil {
		log.WithField("event", "ratelimiter_parse").Error(err)
		return 0, err
	}

	amountLeft--
	if amountLeft < 0 {
		return amountLeft, nil
	}

	err = srl.store.SetKeepTtl(ctx, "ratelimiter:"+key, strconv.Itoa(amountLeft))
	if err != nil {
		log.WithField("event", "ratelimiter_update").Error(err)
		return 0, err
	}

	return amountLeft, nil
}

// AllowNew opens a window of limit requests for key, counting the current one.
func (srl *SharedRateLimiter) AllowNew(ctx context.Context, key string, limit int, interval time.Duration) (int, error) {
	err := srl.store.SetWithTtl(ctx, "ratelimiter:"+key, strconv.Itoa(limit-1), interval)
	if err != nil {
		log.WithField("event", "ratelimiter_set").Error(err)
		return 0, err
	}
	return limit - 1, nil
}
