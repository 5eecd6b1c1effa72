package ai

import "context"

// EmbeddingService binds a client to one embedding model so callers do not
// carry API configuration around.
type EmbeddingService struct {
	client *OpenAICompatibleClient
	cfg    EmbeddingConfig
}

func NewEmbeddingService(client *OpenAICompatibleClient, cfg EmbeddingConfig) *EmbeddingService {
	return &EmbeddingService{client: client, cfg: cfg}
}

func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.client.Embed(ctx, s.cfg, text)
}

func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return s.client.EmbedBatch(ctx, s.cfg, texts)
}

// ChatService binds a client to one chat model and temperature.
type ChatService struct {
	client *OpenAICompatibleClient
	cfg    ChatConfig
}

func NewChatService(client *OpenAICompatibleClient, cfg ChatConfig) *ChatService {
	return &ChatService{client: client, cfg: cfg}
}

func (s *ChatService) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	return s.client.Complete(ctx, s.cfg, messages)
}
