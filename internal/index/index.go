package index

import (
	"math"
	"sort"
	"time"
)

// Chunk is one retrievable unit: the chunk text and its embedding.
type Chunk struct {
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding"`
}

// Index is the persisted retrieval structure for one document. It is built
// once per document id and never invalidated; every upload mints a fresh id.
type Index struct {
	DocumentID string    `json:"document_id"`
	Model      string    `json:"model"`
	Chunks     []Chunk   `json:"chunks"`
	BuiltAt    time.Time `json:"built_at"`
}

// ScoredChunk is a retrieval hit with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// Search returns the topK chunks most similar to the query vector, best
// first. Ties keep document order, so results are deterministic.
func (idx *Index) Search(queryVec []float32, topK int) []ScoredChunk {
	if topK <= 0 || len(idx.Chunks) == 0 {
		return nil
	}

	scored := make([]ScoredChunk, len(idx.Chunks))
	for i := range idx.Chunks {
		scored[i] = ScoredChunk{
			Chunk: idx.Chunks[i],
			Score: cosineSimilarity(queryVec, idx.Chunks[i].Embedding),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK]
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
