// internal/providers/provider.go

// Package providers contains the model backends the generation pipeline
// can call, plus the ordered chain that tries them in turn.
package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pitchforge/internal/common/logger"
	"pitchforge/internal/common/metrics"
)

var (
	ErrNoProviders     = errors.New("NO_PROVIDERS_AVAILABLE")
	ErrEmptyCompletion = errors.New("EMPTY_COMPLETION")
)

// Params carries one completion request to a provider.
type Params struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float64
}

// Provider is a single text completion backend.
type Provider interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, params Params) (string, error)
}

// Chain tries each provider in order and returns the first successful
// completion. Order is fixed at construction time.
type Chain struct {
	providers []Provider
	logger    logger.Logger
}

func NewChain(log logger.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    log.WithFields(map[string]interface{}{"component": "provider-chain"}),
	}
}

// Available reports whether at least one provider has credentials.
func (c *Chain) Available() bool {
	for _, p := range c.providers {
		if p.Available() {
			return true
		}
	}
	return false
}

// Names lists the providers in call order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// Generate walks the chain. Unavailable providers are skipped, failed
// calls are logged and the next provider is tried. Returns the cleaned
// completion and the name of the provider that produced it.
func (c *Chain) Generate(ctx context.Context, params Params) (string, string, error) {
	var lastErr error

	for _, p := range c.providers {
		if !p.Available() {
			continue
		}

		start := time.Now()
		text, err := p.Generate(ctx, params)
		if err != nil {
			metrics.ProviderCalls.WithLabelValues(p.Name(), "error").Inc()
			c.logger.Warn("provider call failed", map[string]interface{}{
				"provider": p.Name(),
				"error":    err.Error(),
			})
			lastErr = err
			if ctx.Err() != nil {
				return "", "", lastErr
			}
			continue
		}
		metrics.ProviderCalls.WithLabelValues(p.Name(), "success").Inc()
		metrics.ProviderCallDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())

		text = cleanCompletion(text)
		if text == "" {
			lastErr = fmt.Errorf("%w: %s", ErrEmptyCompletion, p.Name())
			continue
		}
		return text, p.Name(), nil
	}

	if lastErr != nil {
		return "", "", lastErr
	}
	return "", "", ErrNoProviders
}

// cleanCompletion strips a wrapping markdown code fence that models
// sometimes add around the whole deck.
func cleanCompletion(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```markdown") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	} else {
		return cleaned
	}

	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
