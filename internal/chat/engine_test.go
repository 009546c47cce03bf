package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/memory"
	"github.com/montlabs/mont-core/internal/model"
	"github.com/montlabs/mont-core/internal/nlp"
	"github.com/montlabs/mont-core/internal/recovery"
	"github.com/montlabs/mont-core/internal/respond"
)

// memStore is a minimal in-memory SessionStore for wiring the engine.
type memStore struct {
	data map[string][]byte
}

func (s *memStore) Get(_ context.Context, key model.SessionKey) ([]byte, error) {
	data, ok := s.data[key.String()]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", key, common.ErrNotFound)
	}
	return data, nil
}

func (s *memStore) Put(_ context.Context, key model.SessionKey, data []byte) error {
	s.data[key.String()] = data
	return nil
}

func (s *memStore) Close() error { return nil }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	cache := memory.New(&memStore{data: make(map[string][]byte)}, memory.DefaultConfig())
	dispatcher, err := recovery.NewDispatcher()
	require.NoError(t, err)

	return NewEngine(nlp.NewProcessor(), cache, dispatcher,
		respond.NewResponder(respond.WithPicker(func(int) int { return 0 })))
}

func TestTurnValidExpense(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	reply, result := engine.Turn(ctx, "u1", "Gastos ko ₱150 sa pagkain sa Jollibee")

	assert.Contains(t, reply, "₱150.00")
	assert.Contains(t, reply, "food")
	assert.True(t, result.Validation.IsValid)

	history := engine.History(ctx, "u1", 10)
	require.Len(t, history, 2, "user and bot turns are both recorded")
	assert.False(t, history[0].IsBot)
	assert.True(t, history[1].IsBot)
	assert.NotEmpty(t, history[0].ID)
	assert.InDelta(t, 150, history[1].Data["amount"], 0.001)
}

func TestTurnInvalidInputRecovers(t *testing.T) {
	engine := newTestEngine(t)

	reply, result := engine.Turn(context.Background(), "u1", "I spent money")

	assert.False(t, result.Validation.IsValid)
	assert.Contains(t, reply, "How much was it?")
}

func TestTurnFollowUpUsesSessionContext(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, first := engine.Turn(ctx, "u1", "Gastos ko ₱200 sa pagkain")
	require.True(t, first.Validation.IsValid)

	reply, second := engine.Turn(ctx, "u1", "pareho")

	assert.True(t, second.Validation.IsValid)
	assert.True(t, second.Validation.ContextUsed)
	assert.Contains(t, reply, "₱200.00")
}

func TestTurnBareNumberAfterInvalidTurn(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	// The first turn fails validation but still classifies as an expense.
	_, first := engine.Turn(ctx, "u1", "I spent money")
	require.Equal(t, model.IntentExpenseLog, first.Intent)
	require.False(t, first.Validation.IsValid)

	// The clarification reply is a bare amount; it must resolve against
	// the intent of the turn that just failed.
	reply, second := engine.Turn(ctx, "u1", "150")

	assert.Equal(t, model.IntentExpenseLog, second.Intent)
	require.True(t, second.Entities.HasAmount())
	assert.InDelta(t, 150, *second.Entities.Amount, 0.001)
	assert.True(t, second.Validation.IsValid)
	assert.Contains(t, reply, "₱150.00")
}

func TestTurnSessionsAreIsolated(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	engine.Turn(ctx, "u1", "Gastos ko ₱200 sa pagkain")
	_, other := engine.Turn(ctx, "u2", "pareho")

	assert.False(t, other.Validation.IsValid, "one user's context never leaks into another's")
}
