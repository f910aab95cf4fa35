// internal/providers/gemini.go
package providers

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"pitchforge/internal/common/config"
	"pitchforge/internal/common/logger"
)

// Gemini calls the Google Gemini API through the official SDK.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  logger.Logger
}

// NewGemini builds the Gemini provider. Without an API key the provider
// comes up in an unavailable state so the chain skips it.
func NewGemini(ctx context.Context, cfg config.GeminiConfig, log logger.Logger) (*Gemini, error) {
	g := &Gemini{
		model:   cfg.Model,
		timeout: config.GetDuration(cfg.Timeout),
		logger:  log.WithFields(map[string]interface{}{"provider": "gemini"}),
	}
	if cfg.APIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *Gemini) Name() string {
	return "gemini"
}

func (g *Gemini) Available() bool {
	return g.client != nil
}

func (g *Gemini) Generate(ctx context.Context, params Params) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("gemini: no API key configured")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromText(params.Prompt, genai.RoleUser),
	}
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(params.Temperature)),
		MaxOutputTokens: int32(params.MaxTokens),
	}
	if params.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(params.SystemPrompt, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini", ErrEmptyCompletion)
	}

	g.logger.Debug("completion received", map[string]interface{}{
		"model":  g.model,
		"length": len(text),
	})
	return text, nil
}
