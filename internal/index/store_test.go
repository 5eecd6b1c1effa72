package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreRoundtrip(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	idx := &Index{
		DocumentID: "doc-42",
		Model:      "test-embedding",
		Chunks: []Chunk{
			{Content: "first chunk", Embedding: []float32{0.1, 0.2}},
			{Content: "second chunk", Embedding: []float32{0.3, 0.4}},
		},
		BuiltAt: time.Now().UTC().Truncate(time.Second),
	}

	require.False(t, store.Exists("doc-42"))
	require.NoError(t, store.Save(idx))
	require.True(t, store.Exists("doc-42"))

	loaded, err := store.Load("doc-42")
	require.NoError(t, err)
	assert.Equal(t, idx.DocumentID, loaded.DocumentID)
	assert.Equal(t, idx.Model, loaded.Model)
	assert.Equal(t, idx.Chunks, loaded.Chunks)
}

func TestDiskStoreOneDirPerDocument(t *testing.T) {
	base := t.TempDir()
	store := NewDiskStore(base)

	require.NoError(t, store.Save(&Index{DocumentID: "a", Chunks: []Chunk{{Content: "x"}}}))
	require.NoError(t, store.Save(&Index{DocumentID: "b", Chunks: []Chunk{{Content: "y"}}}))

	_, err := os.Stat(filepath.Join(base, "a", "index.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "b", "index.json"))
	assert.NoError(t, err)
}

func TestDiskStoreLoadMissing(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	_, err := store.Load("nope")
	assert.Error(t, err)
	assert.False(t, store.Exists("nope"))
}
