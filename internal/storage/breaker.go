package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/model"
	"github.com/montlabs/mont-core/internal/service"
)

// BreakerStore wraps a SessionStore with a circuit breaker so that a
// struggling backend fails fast instead of stalling every chat turn. Not
// found is a normal outcome and never counts as a failure.
type BreakerStore struct {
	inner   service.SessionStore
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerStore wraps the given store. The circuit opens after five
// consecutive failures and probes again after thirty seconds.
func NewBreakerStore(inner service.SessionStore) *BreakerStore {
	settings := gobreaker.Settings{
		Name:    "session-store",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			common.LogInfo("session store circuit state changed", common.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	}

	return &BreakerStore{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Get fetches through the breaker.
func (b *BreakerStore) Get(ctx context.Context, key model.SessionKey) ([]byte, error) {
	result, err := b.breaker.Execute(func() (any, error) {
		data, err := b.inner.Get(ctx, key)
		if errors.Is(err, common.ErrNotFound) {
			// Pass through without tripping the breaker.
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		return nil, wrapBreakerErr(err)
	}
	if result == nil {
		return nil, fmt.Errorf("session %s: %w", key, common.ErrNotFound)
	}
	return result.([]byte), nil
}

// Put writes through the breaker.
func (b *BreakerStore) Put(ctx context.Context, key model.SessionKey, data []byte) error {
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, b.inner.Put(ctx, key, data)
	})
	if err != nil {
		return wrapBreakerErr(err)
	}
	return nil
}

// Close closes the wrapped store.
func (b *BreakerStore) Close() error {
	return b.inner.Close()
}

func wrapBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return err
}
