package sink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySink_MergesWrites(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "v-1", Document{"pagename": "flights", "online": true}))
	require.NoError(t, s.Write(ctx, "v-1", Document{"pagename": "pay", "cardNumber": "4111111111111111"}))

	doc, ok := s.Document("v-1")
	require.True(t, ok)
	assert.Equal(t, "pay", doc["pagename"], "later writes overwrite shared keys")
	assert.Equal(t, true, doc["online"], "unrelated keys survive the merge")
	assert.Equal(t, "4111111111111111", doc["cardNumber"])
}

func TestMemorySink_IsolatesVisitors(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "v-1", Document{"otp": "111111"}))
	require.NoError(t, s.Write(ctx, "v-2", Document{"otp": "222222"}))

	doc1, _ := s.Document("v-1")
	doc2, _ := s.Document("v-2")
	assert.Equal(t, "111111", doc1["otp"])
	assert.Equal(t, "222222", doc2["otp"])
	assert.ElementsMatch(t, []string{"v-1", "v-2"}, s.VisitorIDs())
}

func TestMemorySink_DocumentReturnsCopy(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "v-1", Document{"status": "processing"}))

	doc, _ := s.Document("v-1")
	doc["status"] = "mutated"

	fresh, _ := s.Document("v-1")
	assert.Equal(t, "processing", fresh["status"])
}

func TestMemorySink_UnknownVisitor(t *testing.T) {
	s := NewMemorySink()

	_, ok := s.Document("nobody")
	assert.False(t, ok)
}
