package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjanadri/bakebook/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGet_MissingKey_NotFoundWithoutError(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Get(context.Background(), "earnings")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetGet_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := `[{"id":1,"amount":12.5}]`
	require.NoError(t, s.Set(ctx, "earnings", doc))

	got, ok, err := s.Get(ctx, "earnings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, doc, got)
}

func TestSet_ExistingKey_Overwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "earnings", "[1]"))
	require.NoError(t, s.Set(ctx, "earnings", "[2]"))

	got, ok, err := s.Get(ctx, "earnings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", got)
}

func TestRemove_ThenGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "orders", "[]"))
	require.NoError(t, s.Remove(ctx, "orders"))

	_, ok, err := s.Get(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove_MissingKey_IsNoOp(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Remove(context.Background(), "nope"))
}

func TestKeys_SortedListing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "orders", "[]"))
	require.NoError(t, s.Set(ctx, "earnings", "[]"))
	require.NoError(t, s.Set(ctx, "items", "[]"))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"earnings", "items", "orders"}, keys)
}
