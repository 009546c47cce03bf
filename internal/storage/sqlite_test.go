package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	key := model.SessionKey{UserID: "u1", SessionID: "main"}

	require.NoError(t, store.Put(ctx, key, []byte(`{"messages":[]}`)))

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"messages":[]}`), data)
}

func TestSQLiteStoreUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	key := model.SessionKey{UserID: "u1", SessionID: "main"}

	require.NoError(t, store.Put(ctx, key, []byte("v1")))
	require.NoError(t, store.Put(ctx, key, []byte("v2")))

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestSQLiteStoreNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), model.SessionKey{UserID: "nobody", SessionID: "main"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStoreKeysIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, model.SessionKey{UserID: "u1", SessionID: "main"}, []byte("a")))
	require.NoError(t, store.Put(ctx, model.SessionKey{UserID: "u2", SessionID: "main"}, []byte("b")))

	data, err := store.Get(ctx, model.SessionKey{UserID: "u2", SessionID: "main"})
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), data)
}

func TestSQLiteStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
