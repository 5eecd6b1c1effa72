package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *Index {
	return &Index{
		DocumentID: "doc-1",
		Model:      "test-embedding",
		Chunks: []Chunk{
			{Content: "alpha", Embedding: []float32{1, 0, 0}},
			{Content: "beta", Embedding: []float32{0, 1, 0}},
			{Content: "gamma", Embedding: []float32{0.9, 0.1, 0}},
		},
	}
}

func TestSearchOrdering(t *testing.T) {
	idx := testIndex()

	hits := idx.Search([]float32{1, 0, 0}, 3)
	require.Len(t, hits, 3)

	assert.Equal(t, "alpha", hits[0].Chunk.Content)
	assert.Equal(t, "gamma", hits[1].Chunk.Content)
	assert.Equal(t, "beta", hits[2].Chunk.Content)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
}

func TestSearchTopKClamped(t *testing.T) {
	idx := testIndex()

	hits := idx.Search([]float32{1, 0, 0}, 10)
	assert.Len(t, hits, 3)

	hits = idx.Search([]float32{1, 0, 0}, 1)
	require.Len(t, hits, 1)
	assert.Equal(t, "alpha", hits[0].Chunk.Content)
}

func TestSearchZeroTopK(t *testing.T) {
	idx := testIndex()
	assert.Nil(t, idx.Search([]float32{1, 0, 0}, 0))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-5)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-5)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-5)

	// Mismatched or empty vectors score zero instead of failing.
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Zero(t, cosineSimilarity(nil, nil))
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}
