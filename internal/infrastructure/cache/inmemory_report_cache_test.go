package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryReportCacheSetGet(t *testing.T) {
	c := NewInMemoryReportCache()
	ctx := context.Background()
	ownerID := uuid.New()

	_, found, err := c.Get(ctx, ownerID, "summary")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, ownerID, "summary", []byte(`{"income":"100.00"}`), time.Minute))

	payload, found, err := c.Get(ctx, ownerID, "summary")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"income":"100.00"}`, string(payload))

	// keys are owner-scoped
	_, found, err = c.Get(ctx, uuid.New(), "summary")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryReportCacheExpiry(t *testing.T) {
	c := NewInMemoryReportCache()
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, c.Set(ctx, ownerID, "summary", []byte("x"), -time.Second))

	_, found, err := c.Get(ctx, ownerID, "summary")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryReportCacheInvalidateOwner(t *testing.T) {
	c := NewInMemoryReportCache()
	ctx := context.Background()
	ownerID := uuid.New()
	other := uuid.New()

	require.NoError(t, c.Set(ctx, ownerID, "summary", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, ownerID, "daily", []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, other, "summary", []byte("c"), time.Minute))

	require.NoError(t, c.InvalidateOwner(ctx, ownerID))

	_, found, _ := c.Get(ctx, ownerID, "summary")
	assert.False(t, found)
	_, found, _ = c.Get(ctx, ownerID, "daily")
	assert.False(t, found)

	// other owners keep their entries
	_, found, _ = c.Get(ctx, other, "summary")
	assert.True(t, found)
}
