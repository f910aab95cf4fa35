// internal/pipeline/normalize-request/handler.go
package normalizerequest

import (
	"context"
	"errors"
	"strings"

	"pitchforge/internal/common/logger"
)

const StageName = "normalize-request"

var (
	ErrEmptyIdea = errors.New("EMPTY_IDEA")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute trims all text fields and fills declared defaults. An idea
// that is empty after trimming short-circuits the whole pipeline, so
// no inference or sampling ever sees it.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	req := *input.Request

	req.Idea = strings.TrimSpace(req.Idea)
	if req.Idea == "" {
		h.logger.Warn("empty idea provided", map[string]interface{}{
			"requestId": req.RequestID,
		})
		return nil, ErrEmptyIdea
	}

	req.TargetAudience = strings.TrimSpace(req.TargetAudience)
	if req.TargetAudience == "" {
		req.TargetAudience = h.config.DefaultAudience
	}

	req.FundingStage = strings.TrimSpace(req.FundingStage)
	if req.FundingStage == "" {
		req.FundingStage = h.config.DefaultStage
	}

	req.PresentationStyle = strings.TrimSpace(req.PresentationStyle)
	if req.PresentationStyle == "" {
		req.PresentationStyle = h.config.DefaultStyle
	}

	// Optional fields without declared defaults stay empty.
	req.Industry = strings.TrimSpace(req.Industry)
	req.BusinessModel = strings.TrimSpace(req.BusinessModel)
	req.CompetitorContext = strings.TrimSpace(req.CompetitorContext)
	req.RequestID = strings.TrimSpace(req.RequestID)

	return &Output{Normalized: req}, nil
}
