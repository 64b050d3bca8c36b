package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

type memStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", errMissing
	}
	return v, nil
}

func (m *memStore) SetWithTtl(_ context.Context, key string, value string, ttl time.Duration) error {
	m.values[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memStore) SetKeepTtl(_ context.Context, key string, value string) error {
	m.values[key] = value
	return nil
}

func TestSharedRateLimiter_UntrackedKey(t *testing.T) {
	srl := NewSharedRateLimiter(newMemStore())

	_, err := srl.AllowIfTracked(context.Background(), "apikey:abc")
	assert.ErrorIs(t, err, errMissing)
}

func TestSharedRateLimiter_CountsDown(t *testing.T) {
	store := newMemStore()
	srl := NewSharedRateLimiter(store)
	ctx := context.Background()

	left, err := srl.AllowNew(ctx, "apikey:abc", 3, 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, left)
	assert.Equal(t, 5*time.Minute, store.ttls["ratelimiter:apikey:abc"])

	left, err = srl.AllowIfTracked(ctx, "apikey:abc")
	require.NoError(t, err)
	assert.Equal(t, 1, left)

	left, err = srl.AllowIfTracked(ctx, "apikey:abc")
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	left, err = srl.AllowIfTracked(ctx, "apikey:abc")
	require.NoError(t, err)
	assert.Equal(t, -1, left)
	assert.Equal(t, "0", store.values["ratelimiter:apikey:abc"])
}

func TestSharedRateLimiter_CorruptCounter(t *testing.T) {
	store := newMemStore()
	store.values["ratelimiter:apikey:abc"] = "many"
	srl := NewSharedRateLimiter(store)

	_, err := srl.AllowIfTracked(context.Background(), "apikey:abc")
	assert.Error(t, err)
}
