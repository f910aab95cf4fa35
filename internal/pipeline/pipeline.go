// internal/pipeline/pipeline.go

// Package pipeline chains the generation stages into one run per
// request: normalize-request, derive-context, then either
// render-template or llm-generate, and finally build-response.
// Every run returns a well-formed response envelope; stage errors are
// logged in full and collapse into a sanitized failure envelope.
package pipeline

import (
	"context"
	"errors"
	"time"

	"pitchforge/internal/common/config"
	apperrors "pitchforge/internal/common/errors"
	"pitchforge/internal/common/logger"
	"pitchforge/internal/common/metrics"
	"pitchforge/internal/common/observability"
	"pitchforge/internal/models"
	buildresponse "pitchforge/internal/pipeline/build-response"
	derivecontext "pitchforge/internal/pipeline/derive-context"
	llmgenerate "pitchforge/internal/pipeline/llm-generate"
	normalizerequest "pitchforge/internal/pipeline/normalize-request"
	rendertemplate "pitchforge/internal/pipeline/render-template"
)

const (
	endpointGenerate         = "generate"
	endpointGenerateDetailed = "generate-detailed"

	strategyMock  = "mock"
	strategyModel = "model"
)

type Generator struct {
	cfg    *config.Config
	logger logger.Logger
	obs    *observability.Observability
	errors *apperrors.ErrorHandler

	normalize *normalizerequest.Handler
	derive    *derivecontext.Handler
	render    *rendertemplate.Handler
	generate  *llmgenerate.Handler
	build     *buildresponse.Handler
}

// New wires the stage handlers. The provider chain may be nil when no
// provider is configured; llm-generate reports that per request.
func New(cfg *config.Config, chain llmgenerate.TextGenerator, obs *observability.Observability, log logger.Logger) *Generator {
	if obs == nil {
		obs = &observability.Observability{}
	}
	plog := log.WithFields(map[string]interface{}{"component": "pipeline"})

	return &Generator{
		cfg:    cfg,
		logger: plog,
		obs:    obs,
		errors: apperrors.NewErrorHandler(plog),

		normalize: normalizerequest.NewHandler(normalizerequest.LoadConfig(), log),
		derive:    derivecontext.NewHandler(derivecontext.LoadConfig(), log),
		render:    rendertemplate.NewHandler(rendertemplate.LoadConfig(), log),
		generate: llmgenerate.NewHandler(&llmgenerate.Config{
			Temperature:       cfg.Generation.Temperature,
			MaxTokens:         cfg.Generation.MaxTokens,
			DetailedMaxTokens: cfg.Generation.DetailedMaxTokens,
		}, chain, log),
		build: buildresponse.NewHandler(buildresponse.LoadConfig(), log),
	}
}

// Generate produces the five-slide deck envelope.
func (g *Generator) Generate(ctx context.Context, req *models.PitchRequest) models.PitchResponse {
	return g.run(ctx, req, false)
}

// GenerateDetailed produces the ten-slide deck envelope.
func (g *Generator) GenerateDetailed(ctx context.Context, req *models.PitchRequest) models.PitchResponse {
	return g.run(ctx, req, true)
}

// MockDeck runs the template strategy directly and returns the raw deck
// text, regardless of the configured strategy. The mock smoke-test
// endpoint uses it.
func (g *Generator) MockDeck(ctx context.Context, req *models.PitchRequest, detailed bool) (string, error) {
	normalized, err := g.normalize.Execute(ctx, &normalizerequest.Input{Request: req})
	if err != nil {
		return "", err
	}

	derived, err := g.derive.Execute(ctx, &derivecontext.Input{Request: &normalized.Normalized})
	if err != nil {
		return "", err
	}

	out, err := g.render.Execute(ctx, &rendertemplate.Input{
		Request:  &normalized.Normalized,
		Context:  &derived.Context,
		Detailed: detailed,
	})
	if err != nil {
		return "", err
	}
	return out.Deck, nil
}

func (g *Generator) run(ctx context.Context, req *models.PitchRequest, detailed bool) models.PitchResponse {
	endpoint := endpointGenerate
	if detailed {
		endpoint = endpointGenerateDetailed
	}
	strategy := strategyModel
	if g.cfg.Generation.MockMode {
		strategy = strategyMock
	}

	start := time.Now()
	ctx, span := g.obs.StartSpan(ctx, "pipeline."+endpoint)
	defer span.End()

	response := g.runStages(ctx, req, detailed)

	status := "error"
	if response.Success {
		status = "success"
	}
	elapsed := time.Since(start)
	metrics.DecksGenerated.WithLabelValues(endpoint, strategy, status).Inc()
	metrics.GenerationDuration.WithLabelValues(endpoint, strategy).Observe(elapsed.Seconds())
	g.obs.RecordDeckGenerated(ctx, strategy, status)
	g.obs.RecordGenerationDuration(ctx, elapsed, strategy)

	g.logger.Debug("pipeline run finished", map[string]interface{}{
		"endpoint":   endpoint,
		"strategy":   strategy,
		"status":     status,
		"durationMs": elapsed.Milliseconds(),
	})

	return response
}

func (g *Generator) runStages(ctx context.Context, req *models.PitchRequest, detailed bool) models.PitchResponse {
	normalized, err := g.normalize.Execute(ctx, &normalizerequest.Input{Request: req})
	if err != nil {
		return g.failure(ctx, req.RequestID, err)
	}
	requestID := normalized.Normalized.RequestID

	derived, err := g.derive.Execute(ctx, &derivecontext.Input{Request: &normalized.Normalized})
	if err != nil {
		return g.failure(ctx, requestID, err)
	}

	var deck string
	if g.cfg.Generation.MockMode {
		out, err := g.render.Execute(ctx, &rendertemplate.Input{
			Request:  &normalized.Normalized,
			Context:  &derived.Context,
			Detailed: detailed,
		})
		if err != nil {
			return g.failure(ctx, requestID, err)
		}
		deck = out.Deck
	} else {
		genCtx, genSpan := g.obs.StartSpan(ctx, "pipeline.llm-generate")
		out, err := g.generate.Execute(genCtx, &llmgenerate.Input{
			Request:  &normalized.Normalized,
			Context:  &derived.Context,
			Detailed: detailed,
		})
		genSpan.End()
		if err != nil {
			return g.failure(ctx, requestID, err)
		}
		deck = out.Deck
	}

	built, err := g.build.Execute(ctx, &buildresponse.Input{
		Deck:     deck,
		Mock:     g.cfg.Generation.MockMode,
		Detailed: detailed,
	})
	if err != nil {
		return g.failure(ctx, requestID, err)
	}
	return built.Response
}

// failure normalizes a stage error, logs the full detail, and wraps
// the sanitized code into a failure envelope.
func (g *Generator) failure(ctx context.Context, requestID string, err error) models.PitchResponse {
	code, _ := g.errors.Handle(requestID, g.normalizeStageError(err))

	out, berr := g.build.Execute(ctx, &buildresponse.Input{ErrorCode: code})
	if berr != nil {
		// The failure path through build-response cannot reject, but the
		// envelope invariant must hold even if that changes.
		return models.PitchResponse{Success: false, Message: apperrors.UserMessage(code)}
	}
	return out.Response
}

func (g *Generator) normalizeStageError(err error) error {
	switch {
	case errors.Is(err, normalizerequest.ErrEmptyIdea):
		return apperrors.NewEmptyIdeaError()
	case errors.Is(err, llmgenerate.ErrProviderUnavailable):
		return apperrors.NewProviderUnavailableError(err.Error())
	case errors.Is(err, llmgenerate.ErrProviderTimeout):
		return apperrors.NewProviderTimeoutError(g.cfg.PrimaryProvider(), err)
	case errors.Is(err, llmgenerate.ErrGenerationFailed):
		return apperrors.NewGenerationFailedError(err.Error())
	case errors.Is(err, rendertemplate.ErrRenderFailed):
		return apperrors.NewTemplateRenderError(err)
	default:
		return apperrors.NewInternalError(err)
	}
}
