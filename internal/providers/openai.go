// internal/providers/openai.go
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pitchforge/internal/common/config"
	commonhttp "pitchforge/internal/common/http"
	"pitchforge/internal/common/logger"
)

// OpenAI calls the chat completions REST API.
type OpenAI struct {
	config config.OpenAIConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewOpenAI(cfg config.OpenAIConfig, log logger.Logger) *OpenAI {
	return &OpenAI{
		config: cfg,
		client: commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
		logger: log.WithFields(map[string]interface{}{"provider": "openai"}),
	}
}

func (o *OpenAI) Name() string {
	return "openai"
}

func (o *OpenAI) Available() bool {
	return o.config.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate posts a chat completion request, retrying rate limits and
// server errors with exponential backoff until the context expires.
func (o *OpenAI) Generate(ctx context.Context, params Params) (string, error) {
	if o.config.APIKey == "" {
		return "", fmt.Errorf("openai: no API key configured")
	}

	messages := make([]chatMessage, 0, 2)
	if params.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: params.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: params.Prompt})

	payload := chatRequest{
		Model:       o.config.Model,
		Messages:    messages,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + o.config.APIKey,
	}
	url := o.config.BaseURL + "/chat/completions"

	var lastErr error
	for attempt := 0; attempt <= o.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Apply exponential backoff
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		status, body, err := o.client.PostJSON(ctx, url, headers, payload)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			continue
		}

		if status == http.StatusTooManyRequests || status >= 500 {
			lastErr = fmt.Errorf("status %d", status)
			o.logger.Warn("retryable failure", map[string]interface{}{
				"status":  status,
				"attempt": attempt,
			})
			continue
		}
		if status != http.StatusOK {
			return "", fmt.Errorf("openai: status %d", status)
		}

		var parsed chatResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("openai: decode response: %w", err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("openai: api error: %s", parsed.Error.Message)
		}
		if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
			return "", fmt.Errorf("%w: openai", ErrEmptyCompletion)
		}
		return parsed.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("openai: retries exhausted: %w", lastErr)
}
