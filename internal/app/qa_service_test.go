package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/ai"
	"docchat/internal/index"
	"docchat/internal/model"
)

type fakeIndexProvider struct {
	idx *index.Index
	err error
}

func (p *fakeIndexProvider) GetOrBuild(ctx context.Context, doc *model.Document) (*index.Index, error) {
	return p.idx, p.err
}

type fakeQueryEmbedder struct {
	vec []float32
	err error
}

func (e *fakeQueryEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vec, e.err
}

type fakeCompleter struct {
	answer   string
	err      error
	messages []ai.ChatMessage
}

func (c *fakeCompleter) Complete(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	c.messages = messages
	return c.answer, c.err
}

type fakePublisher struct {
	records []model.QARecord
}

func (p *fakePublisher) Publish(ctx context.Context, rec model.QARecord) error {
	p.records = append(p.records, rec)
	return nil
}

func qaFixture() (*fakeIndexProvider, *fakeQueryEmbedder, *fakeCompleter) {
	idx := &index.Index{
		DocumentID: "doc-1",
		Chunks: []index.Chunk{
			{Content: "revenue was 42 million", Embedding: []float32{1, 0}},
			{Content: "the weather was sunny", Embedding: []float32{0, 1}},
		},
	}
	return &fakeIndexProvider{idx: idx},
		&fakeQueryEmbedder{vec: []float32{1, 0}},
		&fakeCompleter{answer: "  42 million  "}
}

func TestAnswerReturnsTrimmedCompletion(t *testing.T) {
	indexes, embedder, completer := qaFixture()
	svc := NewQAService(indexes, embedder, completer, nil, 2)

	answer, err := svc.Answer(context.Background(), &model.Document{ID: "doc-1"}, "What is the revenue?")
	require.NoError(t, err)
	assert.Equal(t, "42 million", answer)
}

func TestAnswerStuffsRetrievedChunks(t *testing.T) {
	indexes, embedder, completer := qaFixture()
	svc := NewQAService(indexes, embedder, completer, nil, 1)

	_, err := svc.Answer(context.Background(), &model.Document{ID: "doc-1"}, "What is the revenue?")
	require.NoError(t, err)

	require.Len(t, completer.messages, 2)
	assert.Equal(t, "system", completer.messages[0].Role)
	assert.Equal(t, "user", completer.messages[1].Role)
	assert.Contains(t, completer.messages[1].Content, "revenue was 42 million")
	assert.NotContains(t, completer.messages[1].Content, "the weather was sunny", "only top-k chunks go into the prompt")
	assert.Contains(t, completer.messages[1].Content, "Question: What is the revenue?")
}

func TestAnswerRejectsEmptyQuestion(t *testing.T) {
	indexes, embedder, completer := qaFixture()
	svc := NewQAService(indexes, embedder, completer, nil, 2)

	_, err := svc.Answer(context.Background(), &model.Document{ID: "doc-1"}, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnswerPropagatesBuildFailure(t *testing.T) {
	buildErr := errors.New("embed api down")
	svc := NewQAService(&fakeIndexProvider{err: buildErr}, &fakeQueryEmbedder{}, &fakeCompleter{}, nil, 2)

	_, err := svc.Answer(context.Background(), &model.Document{ID: "doc-1"}, "anything")
	assert.ErrorIs(t, err, buildErr)
}

func TestAnswerPropagatesCompletionFailure(t *testing.T) {
	indexes, embedder, _ := qaFixture()
	llmErr := errors.New("completion failed")
	svc := NewQAService(indexes, embedder, &fakeCompleter{err: llmErr}, nil, 2)

	_, err := svc.Answer(context.Background(), &model.Document{ID: "doc-1"}, "anything")
	assert.ErrorIs(t, err, llmErr)
}

func TestAnswerPublishesAuditRecord(t *testing.T) {
	indexes, embedder, completer := qaFixture()
	publisher := &fakePublisher{}
	svc := NewQAService(indexes, embedder, completer, publisher, 2)

	_, err := svc.Answer(context.Background(), &model.Document{ID: "doc-1"}, "What is the revenue?")
	require.NoError(t, err)

	require.Len(t, publisher.records, 1)
	assert.Equal(t, "doc-1", publisher.records[0].DocumentID)
	assert.Equal(t, "What is the revenue?", publisher.records[0].Question)
	assert.Equal(t, "42 million", publisher.records[0].Answer)
}
