package status

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreUnknownUserIsIdle(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, got.State)
	assert.Nil(t, got.FinishedAt)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "user-1", Status{State: StateProcessing}))

	now := time.Now().UTC()
	require.NoError(t, s.Set(ctx, "user-1", Status{State: StateFinished, FinishedAt: &now}))

	got, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, StateFinished, got.State)
	require.NotNil(t, got.FinishedAt)
	assert.True(t, got.FinishedAt.Equal(now))
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "user-1", Status{State: StateFailed}))

	got, err := s.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, got.State)
}

func TestStatusJSONShape(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	data, err := json.Marshal(Status{State: StateFinished, FinishedAt: &now})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "finished", "finished_at": "2025-06-01T12:00:00Z"}`, string(data))

	data, err = json.Marshal(Idle())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "idle", "finished_at": null}`, string(data))
}
