package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDocumentDropsConversation(t *testing.T) {
	s := &Session{}
	s.SetDocument("report.pdf", "doc-1")
	s.Append("q1", "a1")

	s.SetDocument("other.pdf", "doc-2")

	assert.Equal(t, "other.pdf", s.Filename)
	assert.Equal(t, "doc-2", s.DocumentID)
	assert.Empty(t, s.Conversation)
}

func TestAppendPreservesOrder(t *testing.T) {
	s := &Session{}
	s.SetDocument("report.pdf", "doc-1")
	s.Append("What is the total revenue?", "42 million")
	s.Append("And last year?", "40 million")

	require.Len(t, s.Conversation, 2)
	assert.Equal(t, "What is the total revenue?", s.Conversation[0].Question)
	assert.Equal(t, "42 million", s.Conversation[0].Answer)
	assert.Equal(t, "And last year?", s.Conversation[1].Question)
}

func TestResetClearsEverything(t *testing.T) {
	s := &Session{}
	s.SetDocument("report.pdf", "doc-1")
	s.Append("q", "a")

	s.Reset()

	assert.Empty(t, s.Filename)
	assert.Empty(t, s.DocumentID)
	assert.Empty(t, s.Conversation)
	assert.False(t, s.HasDocument())
}

func TestClearConversationKeepsDocument(t *testing.T) {
	s := &Session{}
	s.SetDocument("report.pdf", "doc-1")
	s.Append("q", "a")

	s.ClearConversation()

	assert.Empty(t, s.Conversation)
	assert.True(t, s.HasDocument())
	assert.Equal(t, "report.pdf", s.Filename)
	assert.Equal(t, "doc-1", s.DocumentID)
}

func TestMemoryStoreRoundtrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, found)

	s := &Session{}
	s.SetDocument("report.pdf", "doc-1")
	s.Append("q", "a")
	require.NoError(t, store.Save(ctx, "sid-1", s))

	loaded, found, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, s.Filename, loaded.Filename)
	assert.Equal(t, s.Conversation, loaded.Conversation)

	require.NoError(t, store.Delete(ctx, "sid-1"))
	_, found, err = store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a := &Session{}
	a.SetDocument("a.pdf", "doc-a")
	b := &Session{}
	b.SetDocument("b.pdf", "doc-b")

	require.NoError(t, store.Save(ctx, "sid-a", a))
	require.NoError(t, store.Save(ctx, "sid-b", b))

	loadedA, _, err := store.Get(ctx, "sid-a")
	require.NoError(t, err)
	assert.Equal(t, "doc-a", loadedA.DocumentID)

	loadedB, _, err := store.Get(ctx, "sid-b")
	require.NoError(t, err)
	assert.Equal(t, "doc-b", loadedB.DocumentID)
}
