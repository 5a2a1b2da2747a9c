package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store, err := NewStore(client, 24*time.Hour)
	require.NoError(t, err)
	return store, mr
}

func TestMarkDispatchedFirstSeen(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.MarkDispatched(context.Background(), "req-1")
	require.NoError(t, err)
	assert.True(t, first)
}

func TestMarkDispatchedDuplicate(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.MarkDispatched(context.Background(), "req-1")
	require.NoError(t, err)

	again, err := store.MarkDispatched(context.Background(), "req-1")
	require.NoError(t, err)
	assert.False(t, again)
}

func TestMarkDispatchedExpires(t *testing.T) {
	store, mr := newTestStore(t)

	_, err := store.MarkDispatched(context.Background(), "req-1")
	require.NoError(t, err)

	mr.FastForward(25 * time.Hour)

	again, err := store.MarkDispatched(context.Background(), "req-1")
	require.NoError(t, err)
	assert.True(t, again)
}

func TestUnmarkAllowsRedispatch(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.MarkDispatched(context.Background(), "req-1")
	require.NoError(t, err)
	require.True(t, first)

	require.NoError(t, store.Unmark(context.Background(), "req-1"))

	again, err := store.MarkDispatched(context.Background(), "req-1")
	require.NoError(t, err)
	assert.True(t, again)
}

func TestUnmarkUnknownIDIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	assert.NoError(t, store.Unmark(context.Background(), "never-marked"))
}

func TestNewStoreRequiresTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	_, err := NewStore(client, 0)
	assert.Error(t, err)
}
