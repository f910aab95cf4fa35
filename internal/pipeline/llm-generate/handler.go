// internal/pipeline/llm-generate/handler.go
package llmgenerate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pitchforge/internal/common/logger"
	"pitchforge/internal/providers"
)

const StageName = "llm-generate"

var (
	ErrProviderUnavailable = errors.New("PROVIDER_UNAVAILABLE")
	ErrProviderTimeout     = errors.New("PROVIDER_TIMEOUT")
	ErrGenerationFailed    = errors.New("GENERATION_FAILED")
)

const (
	regularSystemPrompt  = "You are a startup advisor and pitch deck expert with deep knowledge of what investors look for in successful pitches."
	detailedSystemPrompt = "You are a startup advisor who has successfully helped companies raise over $100M in funding. You understand what makes investors excited."
)

const regularSlideInstructions = `**SLIDE 1: PROBLEM**
- Clearly define the pain point or market gap
- Include statistics or market evidence
- Make it relatable and urgent

**SLIDE 2: SOLUTION**
- Present your unique solution approach
- Highlight key differentiators
- Explain why this solution is better than alternatives

**SLIDE 3: MARKET OPPORTUNITY**
- Define Total Addressable Market (TAM)
- Identify target customer segments
- Show market trends and growth potential

**SLIDE 4: BUSINESS MODEL**
- Explain how you'll make money
- Outline key revenue streams
- Include basic unit economics if applicable

**SLIDE 5: CALL TO ACTION**
- Specify funding requirements
- Outline key milestones and use of funds
- Present compelling next steps for investors`

const detailedSlideInstructions = `**SLIDE 1: TITLE & VISION**
- Company name suggestion and tagline
- Clear vision statement
- Founder introduction placeholder

**SLIDE 2: PROBLEM**
- Market pain points with statistics
- Current inadequate solutions
- Cost of the problem

**SLIDE 3: SOLUTION**
- Your unique approach
- Key features and benefits
- Technology differentiators

**SLIDE 4: PRODUCT DEMO**
- Core product walkthrough
- User experience highlights
- Technical architecture overview

**SLIDE 5: MARKET SIZE**
- TAM, SAM, SOM analysis
- Market trends and drivers
- Growth projections

**SLIDE 6: BUSINESS MODEL**
- Revenue streams
- Pricing strategy
- Unit economics

**SLIDE 7: COMPETITION**
- Competitive landscape
- Positioning matrix
- Competitive advantages

**SLIDE 8: TRACTION**
- Key metrics and milestones
- Customer testimonials
- Growth trajectory

**SLIDE 9: FINANCIAL PROJECTIONS**
- 3-year revenue forecast
- Key assumptions
- Path to profitability

**SLIDE 10: FUNDING & USE OF FUNDS**
- Funding requirements
- Detailed use of funds
- Key milestones to achieve`

// TextGenerator is the slice of the provider chain this stage needs.
type TextGenerator interface {
	Available() bool
	Generate(ctx context.Context, params providers.Params) (string, string, error)
}

type Handler struct {
	config *Config
	chain  TextGenerator
	logger logger.Logger
}

func NewHandler(config *Config, chain TextGenerator, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		chain:  chain,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if h.chain == nil || !h.chain.Available() {
		h.logger.Warn("no provider available", map[string]interface{}{
			"detailed": input.Detailed,
		})
		return nil, ErrProviderUnavailable
	}

	params := providers.Params{
		SystemPrompt: regularSystemPrompt,
		Prompt:       h.buildPrompt(input),
		MaxTokens:    h.config.MaxTokens,
		Temperature:  h.config.Temperature,
	}
	if input.Detailed {
		params.SystemPrompt = detailedSystemPrompt
		params.MaxTokens = h.config.DetailedMaxTokens
	}

	deck, providerName, err := h.chain.Generate(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrProviderTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	h.logger.Info("deck generated", map[string]interface{}{
		"provider": providerName,
		"detailed": input.Detailed,
		"length":   len(deck),
	})
	return &Output{Deck: deck, Provider: providerName}, nil
}

func (h *Handler) buildPrompt(input *Input) string {
	var parts []string

	if input.Detailed {
		parts = append(parts, "You are an experienced startup advisor creating a comprehensive 10-slide investor pitch deck.")
		parts = append(parts, "\nCreate a detailed, professional pitch deck with the following structure:")
		parts = append(parts, "\n"+detailedSlideInstructions)
	} else {
		parts = append(parts, "You are an experienced startup advisor and pitch deck expert who has helped hundreds of startups raise funding.")
		parts = append(parts, "\nCreate a comprehensive, investor-ready pitch deck for the following startup idea. Structure it as 5 detailed slides:")
		parts = append(parts, "\n"+regularSlideInstructions)
	}

	parts = append(parts, fmt.Sprintf("\nStartup Idea: %s", input.Request.Idea))
	parts = append(parts, fmt.Sprintf("Target Audience: %s", input.Request.TargetAudience))

	industry := input.Request.Industry
	if industry == "" {
		industry = "Not specified"
	}
	parts = append(parts, fmt.Sprintf("Industry: %s", industry))
	parts = append(parts, fmt.Sprintf("Funding Stage: %s", input.Request.FundingStage))

	if input.Request.BusinessModel != "" {
		parts = append(parts, fmt.Sprintf("Business Model: %s", input.Request.BusinessModel))
	}
	if input.Request.CompetitorContext != "" {
		parts = append(parts, fmt.Sprintf("Known Competitors: %s", input.Request.CompetitorContext))
	}

	if input.Context != nil {
		parts = append(parts, fmt.Sprintf("\nPresentation angle: %s.", input.Context.Approach))
		parts = append(parts, fmt.Sprintf("Emphasize %s and %s, and anchor claims in %s.",
			input.Context.PrimaryFocus, input.Context.SecondaryFocus, input.Context.MetricsFocus))
	}

	if input.Detailed {
		parts = append(parts, "\nMake it investor-ready with specific numbers, market insights, and compelling narrative.")
	} else {
		parts = append(parts, "\nMake the content professional, data-driven, and compelling. Use bullet points and clear formatting.")
	}

	return strings.Join(parts, "\n")
}
