// internal/providers/build.go
package providers

import (
	"context"

	"pitchforge/internal/common/config"
	"pitchforge/internal/common/logger"
)

// BuildChain constructs the provider chain from configuration. The
// preferred provider goes first; the other stays in the chain as a
// fallback. Providers without credentials are kept so the chain can
// still report what exists, they just never get called.
func BuildChain(ctx context.Context, cfg *config.Config, log logger.Logger) (*Chain, error) {
	gemini, err := NewGemini(ctx, cfg.Providers.Gemini, log)
	if err != nil {
		return nil, err
	}
	openai := NewOpenAI(cfg.Providers.OpenAI, log)

	if cfg.Generation.UseGemini {
		return NewChain(log, gemini, openai), nil
	}
	return NewChain(log, openai, gemini), nil
}
