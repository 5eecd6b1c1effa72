package app

import (
	"context"
	"log"
	"strings"

	"docchat/internal/ai"
	"docchat/internal/index"
	"docchat/internal/model"
)

const defaultTopK = 5

// IndexProvider hands out the retrieval index for a document, building it on
// first access.
type IndexProvider interface {
	GetOrBuild(ctx context.Context, doc *model.Document) (*index.Index, error)
}

// QueryEmbedder embeds a single question.
type QueryEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer runs one chat completion.
type Completer interface {
	Complete(ctx context.Context, messages []ai.ChatMessage) (string, error)
}

// RecordPublisher receives answered questions for async persistence.
type RecordPublisher interface {
	Publish(ctx context.Context, rec model.QARecord) error
}

// QAService answers questions against one document: retrieve the top-k most
// similar chunks, stuff them into a single prompt with the question, and
// return the model's text answer unmodified.
type QAService struct {
	indexes   IndexProvider
	embedder  QueryEmbedder
	completer Completer
	publisher RecordPublisher // optional
	topK      int
}

func NewQAService(indexes IndexProvider, embedder QueryEmbedder, completer Completer, publisher RecordPublisher, topK int) *QAService {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &QAService{
		indexes:   indexes,
		embedder:  embedder,
		completer: completer,
		publisher: publisher,
		topK:      topK,
	}
}

const systemPrompt = "You are a helpful assistant. Answer the user's question based only on the following context. If the context does not contain enough information, say so. Do not make up facts."

// Answer runs the full retrieval-augmented pipeline for one question.
// Upstream failures (index build, embedding, completion) propagate as-is.
func (s *QAService) Answer(ctx context.Context, doc *model.Document, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrInvalidInput
	}

	idx, err := s.indexes.GetOrBuild(ctx, doc)
	if err != nil {
		return "", err
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", err
	}

	hits := idx.Search(queryVec, s.topK)

	var contextBlock strings.Builder
	for _, h := range hits {
		contextBlock.WriteString("\n---\n")
		contextBlock.WriteString(h.Chunk.Content)
	}
	contextBlock.WriteString("\n---")

	messages := []ai.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Context:" + contextBlock.String() + "\n\nQuestion: " + question + "\n\nAnswer:"},
	}
	answer, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)

	if s.publisher != nil {
		rec := model.QARecord{
			DocumentID: doc.ID,
			Question:   question,
			Answer:     answer,
		}
		if err := s.publisher.Publish(ctx, rec); err != nil {
			// Audit trail is best effort; the answer still stands.
			log.Printf("publish qa record failed: %v", err)
		}
	}

	return answer, nil
}
