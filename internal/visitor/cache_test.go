package visitor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, err := c.Get(ctx, "session-1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, "session-1", "visitor-abc"))

	id, err := c.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "visitor-abc", id)
}

func TestMemoryCache_StableAcrossReads(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "session-1", "visitor-abc"))

	for i := 0; i < 5; i++ {
		id, err := c.Get(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, "visitor-abc", id, "the same session always resolves the same visitor")
	}
}
