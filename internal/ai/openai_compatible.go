package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
}

// OpenAICompatibleClient talks to any /chat/completions + /embeddings
// compatible API. Every call runs under the configured timeout and retry
// policy; 4xx responses are never retried.
type OpenAICompatibleClient struct {
	httpClient *http.Client
	retryOpts  []retry.Option
}

// Policy is the outbound call policy shared by completion and embedding
// requests. Attempts of 1 means no retry.
type Policy struct {
	Timeout  time.Duration
	Attempts uint
	Delay    time.Duration
}

func NewOpenAICompatibleClient(policy Policy) *OpenAICompatibleClient {
	if policy.Timeout <= 0 {
		policy.Timeout = 90 * time.Second
	}
	if policy.Attempts == 0 {
		policy.Attempts = 1
	}
	if policy.Delay <= 0 {
		policy.Delay = 200 * time.Millisecond
	}
	return &OpenAICompatibleClient{
		httpClient: &http.Client{Timeout: policy.Timeout},
		retryOpts: []retry.Option{
			retry.Attempts(policy.Attempts),
			retry.Delay(policy.Delay),
			retry.LastErrorOnly(true),
		},
	}
}

func (c *OpenAICompatibleClient) Complete(ctx context.Context, cfg ChatConfig, messages []ChatMessage) (string, error) {
	reqBody := map[string]interface{}{
		"model":       cfg.Model,
		"messages":    messages,
		"temperature": cfg.Temperature,
		"stream":      false,
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.postJSON(ctx, url, cfg.APIKey, reqBody)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse llm json failed: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty llm choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// postJSON sends one JSON request and retries transport errors and 5xx
// responses per the configured policy.
func (c *OpenAICompatibleClient) postJSON(ctx context.Context, url, apiKey string, body interface{}) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	opts := append([]retry.Option{retry.Context(ctx)}, c.retryOpts...)
	return retry.DoWithData(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, retry.Unrecoverable(fmt.Errorf("build request failed: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response failed: %w", err)
		}
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("response status %d: %s", resp.StatusCode, string(raw))
		}
		if resp.StatusCode >= 300 {
			return nil, retry.Unrecoverable(fmt.Errorf("response status %d: %s", resp.StatusCode, string(raw)))
		}
		return raw, nil
	}, opts...)
}
