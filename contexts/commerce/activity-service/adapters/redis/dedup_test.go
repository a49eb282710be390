package redisadapter

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "orderflow/contexts/commerce/activity-service/domain/errors"
)

// TestDedupStoreIntegration requires a running Redis and skips otherwise.
func TestDedupStoreIntegration(t *testing.T) {
	client := NewClient("localhost:6379")
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Skipping Redis integration test: redis not available")
	}

	store := NewDedupStore(client)
	eventID := uuid.NewString()
	expiresAt := time.Now().Add(time.Minute)

	replayed, err := store.ReserveEvent(ctx, eventID, "hash-a", expiresAt)
	require.NoError(t, err)
	assert.False(t, replayed)

	replayed, err = store.ReserveEvent(ctx, eventID, "hash-a", expiresAt)
	require.NoError(t, err)
	assert.True(t, replayed)

	_, err = store.ReserveEvent(ctx, eventID, "hash-b", expiresAt)
	require.ErrorIs(t, err, domainerrors.ErrEventPayloadConflict)

	require.NoError(t, store.ReleaseEvent(ctx, eventID, "hash-b"))
	replayed, err = store.ReserveEvent(ctx, eventID, "hash-a", expiresAt)
	require.NoError(t, err)
	assert.True(t, replayed)

	require.NoError(t, store.ReleaseEvent(ctx, eventID, "hash-a"))
	replayed, err = store.ReserveEvent(ctx, eventID, "hash-a", expiresAt)
	require.NoError(t, err)
	assert.False(t, replayed)
}
