package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/model"
)

var errBackend = errors.New("backend down")

// flakyStore fails every call until healed.
type flakyStore struct {
	data    map[string][]byte
	failing bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{data: make(map[string][]byte)}
}

func (s *flakyStore) Get(_ context.Context, key model.SessionKey) ([]byte, error) {
	if s.failing {
		return nil, errBackend
	}
	data, ok := s.data[key.String()]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", key, common.ErrNotFound)
	}
	return data, nil
}

func (s *flakyStore) Put(_ context.Context, key model.SessionKey, data []byte) error {
	if s.failing {
		return errBackend
	}
	s.data[key.String()] = data
	return nil
}

func (s *flakyStore) Close() error { return nil }

func TestBreakerStorePassesThroughWhenHealthy(t *testing.T) {
	inner := newFlakyStore()
	store := NewBreakerStore(inner)
	ctx := context.Background()
	key := model.SessionKey{UserID: "u1", SessionID: "main"}

	require.NoError(t, store.Put(ctx, key, []byte("hello")))

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestBreakerStoreNotFoundDoesNotTrip(t *testing.T) {
	inner := newFlakyStore()
	store := NewBreakerStore(inner)
	ctx := context.Background()
	key := model.SessionKey{UserID: "missing", SessionID: "main"}

	for i := 0; i < 20; i++ {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, common.ErrNotFound,
			"not found is a normal outcome and must never open the circuit")
	}
}

func TestBreakerStoreOpensAfterConsecutiveFailures(t *testing.T) {
	inner := newFlakyStore()
	inner.failing = true
	store := NewBreakerStore(inner)
	ctx := context.Background()
	key := model.SessionKey{UserID: "u1", SessionID: "main"}

	for i := 0; i < 5; i++ {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, errBackend)
	}

	// Circuit is now open: callers fail fast with the sentinel the cache
	// degrades on, without hitting the backend.
	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	err = store.Put(ctx, key, []byte("x"))
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}
