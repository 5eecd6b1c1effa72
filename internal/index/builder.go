package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"docchat/internal/chunker"
	"docchat/internal/model"
)

// embeddingBatchSize keeps embedding requests inside provider input limits.
const embeddingBatchSize = 10

// DocumentLoader produces a document's page texts.
type DocumentLoader interface {
	Load(ctx context.Context, doc *model.Document) ([]string, error)
}

// Embedder turns chunk texts into vectors.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Builder owns the per-document index lifecycle: loaded indexes are held in
// an in-memory TTL cache, persisted indexes are loaded from disk, and
// anything else is built from scratch. Builds for the same document id are
// serialized so concurrent first requests do not embed twice.
type Builder struct {
	loader   DocumentLoader
	chunker  *chunker.Chunker
	embedder Embedder
	store    *DiskStore
	emModel  string

	loaded *gocache.Cache

	mu    sync.Mutex
	locks map[string]*buildLock
}

// buildLock carries a holder count so the last releaser can drop the map
// entry; ids are never built twice, so kept entries would only accumulate.
type buildLock struct {
	mu   sync.Mutex
	refs int
}

func NewBuilder(loader DocumentLoader, ck *chunker.Chunker, embedder Embedder, store *DiskStore, embeddingModel string) *Builder {
	return &Builder{
		loader:   loader,
		chunker:  ck,
		embedder: embedder,
		store:    store,
		emModel:  embeddingModel,
		loaded:   gocache.New(15*time.Minute, 30*time.Minute),
		locks:    make(map[string]*buildLock),
	}
}

// GetOrBuild returns the index for the document, building and persisting it
// on first access. Any load/extract/embed failure propagates to the caller.
func (b *Builder) GetOrBuild(ctx context.Context, doc *model.Document) (*Index, error) {
	if cached, ok := b.loaded.Get(doc.ID); ok {
		return cached.(*Index), nil
	}

	lock := b.acquireBuildLock(doc.ID)
	defer b.releaseBuildLock(doc.ID, lock)

	// Another request may have finished the build while we waited.
	if cached, ok := b.loaded.Get(doc.ID); ok {
		return cached.(*Index), nil
	}

	if b.store.Exists(doc.ID) {
		idx, err := b.store.Load(doc.ID)
		if err != nil {
			return nil, err
		}
		b.loaded.SetDefault(doc.ID, idx)
		return idx, nil
	}

	idx, err := b.build(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := b.store.Save(idx); err != nil {
		return nil, err
	}
	b.loaded.SetDefault(doc.ID, idx)
	return idx, nil
}

func (b *Builder) build(ctx context.Context, doc *model.Document) (*Index, error) {
	pages, err := b.loader.Load(ctx, doc)
	if err != nil {
		return nil, err
	}

	texts := b.chunker.Split(pages)
	if len(texts) == 0 {
		return nil, fmt.Errorf("document %s produced no chunks", doc.ID)
	}

	var embeddings [][]float32
	for i := 0; i < len(texts); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := b.embedder.EmbedBatch(ctx, texts[i:end])
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, batch...)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: %d chunks, %d vectors", len(texts), len(embeddings))
	}

	chunks := make([]Chunk, len(texts))
	for i := range texts {
		chunks[i] = Chunk{Content: texts[i], Embedding: embeddings[i]}
	}
	return &Index{
		DocumentID: doc.ID,
		Model:      b.emModel,
		Chunks:     chunks,
		BuiltAt:    time.Now(),
	}, nil
}

func (b *Builder) acquireBuildLock(documentID string) *buildLock {
	b.mu.Lock()
	lock, ok := b.locks[documentID]
	if !ok {
		lock = &buildLock{}
		b.locks[documentID] = lock
	}
	lock.refs++
	b.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (b *Builder) releaseBuildLock(documentID string, lock *buildLock) {
	lock.mu.Unlock()

	b.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(b.locks, documentID)
	}
	b.mu.Unlock()
}
