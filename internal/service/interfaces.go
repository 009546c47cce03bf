// Package service defines the boundary contracts the core consumes.
package service

import (
	"context"
	"time"

	"github.com/montlabs/mont-core/internal/model"
)

// SessionStore is the durable record store behind the memory cache. The
// cache owns the serialization format; implementations only move opaque
// bytes. Get returns common.ErrNotFound when no session exists for the key.
type SessionStore interface {
	Get(ctx context.Context, key model.SessionKey) ([]byte, error)
	Put(ctx context.Context, key model.SessionKey, data []byte) error
	Close() error
}

// Notifier receives structured alert events. Delivery semantics belong to
// the collaborator; the core only emits.
type Notifier interface {
	Notify(ctx context.Context, category, message string, payload map[string]any)
}

// RetryOptions configures retry behavior for storage operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
