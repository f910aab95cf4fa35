// internal/pipeline/build-response/handler.go
package buildresponse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "pitchforge/internal/common/errors"
	"pitchforge/internal/common/logger"
	"pitchforge/internal/models"
	"pitchforge/pkg/schemas"
)

const StageName = "build-response"

var (
	ErrEmptyDeck       = errors.New("EMPTY_DECK")
	ErrEnvelopeInvalid = errors.New("ENVELOPE_VALIDATION_FAILED")
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

// execute wraps the pipeline result into the response envelope. Exactly
// one of the two shapes leaves here: success with a non-empty deck, or
// failure with an empty deck and a sanitized message.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	var response models.PitchResponse

	if input.ErrorCode != "" {
		response = models.PitchResponse{
			Deck:    "",
			Success: false,
			Message: apperrors.UserMessage(input.ErrorCode),
		}
		h.logger.Debug("failure envelope built", map[string]interface{}{
			"errorCode": string(input.ErrorCode),
		})
	} else {
		if strings.TrimSpace(input.Deck) == "" {
			return nil, ErrEmptyDeck
		}
		response = models.PitchResponse{
			Deck:    input.Deck,
			Success: true,
			Message: successMessage(input.Mock, input.Detailed),
		}
		h.logger.Debug("success envelope built", map[string]interface{}{
			"mock":     input.Mock,
			"detailed": input.Detailed,
			"length":   len(input.Deck),
		})
	}

	if h.config.ValidateEnvelope {
		if err := h.validateEnvelope(&response); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEnvelopeInvalid, err)
		}
	}

	return &Output{Response: response}, nil
}

func successMessage(mock, detailed bool) string {
	switch {
	case mock && detailed:
		return "Detailed mock pitch deck generated successfully"
	case mock:
		return "Mock pitch deck generated successfully"
	case detailed:
		return "Detailed pitch deck generated successfully"
	default:
		return "Pitch deck generated successfully"
	}
}

func (h *Handler) validateEnvelope(response *models.PitchResponse) error {
	raw, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	issues, err := schemas.ValidateResponse(raw)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return fmt.Errorf("envelope validation failed: %v", issues)
	}
	return nil
}
