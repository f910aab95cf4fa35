// internal/pipeline/derive-context/handler.go
package derivecontext

import (
	"context"
	"math/rand"
	"strings"

	"pitchforge/internal/common/logger"
	"pitchforge/internal/models"

	"github.com/cespare/xxhash/v2"
)

const StageName = "derive-context"

// DefaultCategory is used when neither the industry field nor the idea
// text matches a known category.
const DefaultCategory = "default"

type keywordRule struct {
	Category string
	Keywords []string
}

// industryRules is evaluated in order; the first category with a
// keyword hit in the idea text wins.
var industryRules = []keywordRule{
	{Category: "foodtech", Keywords: []string{"food", "delivery", "restaurant", "meal", "kitchen"}},
	{Category: "healthtech", Keywords: []string{"health", "fitness", "wellness", "medical", "exercise"}},
	{Category: "edtech", Keywords: []string{"education", "learning", "student", "school", "course", "teach"}},
	{Category: "fintech", Keywords: []string{"crypto", "trading", "bitcoin", "blockchain", "finance"}},
}

type styleProfile struct {
	Approach     string
	MetricsFocus string
}

var styleProfiles = map[string]styleProfile{
	"data-driven":        {Approach: "metrics-first argument", MetricsFocus: "unit economics"},
	"storytelling":       {Approach: "narrative customer journey", MetricsFocus: "customer outcomes"},
	"technology-focused": {Approach: "product and architecture deep dive", MetricsFocus: "technical differentiation"},
	"market-opportunity": {Approach: "top-down market sizing", MetricsFocus: "market capture rate"},
	"problem-solving":    {Approach: "pain-point walkthrough", MetricsFocus: "problem resolution rate"},
}

// alternativeStyles and metricsFocusOptions are sampled when the style
// is "balanced" or unrecognized.
var alternativeStyles = []string{
	"data-driven", "storytelling", "technology-focused", "market-opportunity", "problem-solving",
}

var metricsFocusOptions = []string{
	"unit economics", "customer outcomes", "technical differentiation", "market capture rate", "problem resolution rate",
}

var industryFocusAreas = map[string][]string{
	"foodtech":   {"delivery speed", "restaurant partnerships", "dietary personalization", "logistics efficiency", "customer retention"},
	"healthtech": {"patient engagement", "preventive care", "wearable integration", "clinical outcomes", "care accessibility"},
	"edtech":     {"learning outcomes", "student engagement", "curriculum personalization", "teacher tooling", "completion rates"},
	"fintech":    {"risk management", "portfolio automation", "fraud prevention", "regulatory compliance", "trading transparency"},
	"default":    {"user growth", "product innovation", "operational efficiency", "customer satisfaction", "market expansion"},
}

var fundingStages = map[string]models.FundingContext{
	"idea": {
		Stage:       "idea",
		AmountRange: "$100K-$250K",
		Runway:      "12-month runway",
		Priorities:  []string{"Prototype development (50%)", "Founder salaries (30%)", "Market validation (20%)"},
	},
	"pre-seed": {
		Stage:       "pre-seed",
		AmountRange: "$250K-$500K",
		Runway:      "12-month runway",
		Priorities:  []string{"MVP launch (45%)", "Early hires (35%)", "Go-to-market experiments (20%)"},
	},
	"seed": {
		Stage:       "seed",
		AmountRange: "$500K-$1.5M",
		Runway:      "18-month runway",
		Priorities:  []string{"Product development (45%)", "Marketing (35%)", "Team (20%)"},
	},
	"series-a": {
		Stage:       "series-a",
		AmountRange: "$3M-$8M",
		Runway:      "24-month runway",
		Priorities:  []string{"Go-to-market scaling (40%)", "Engineering expansion (35%)", "Customer success (25%)"},
	},
	"series-b": {
		Stage:       "series-b",
		AmountRange: "$15M-$30M",
		Runway:      "30-month runway",
		Priorities:  []string{"International expansion (40%)", "New product lines (30%)", "Strategic hires (30%)"},
	},
}

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

// execute is total: every lookup has a default branch, so no input can
// make it fail. All sampling draws from a PRNG seeded by the request
// hash, never from the wall clock, in a fixed order: style first, then
// the two focus areas.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	req := input.Request
	seed := DeriveSeed(req)
	rng := rand.New(rand.NewSource(int64(seed)))

	industry := detectIndustry(req)
	style, approach, metricsFocus := resolveStyle(req.PresentationStyle, rng)
	primary, secondary := sampleFocusAreas(industry, rng)
	funding := lookupFundingStage(req.FundingStage)

	h.logger.Debug("context derived", map[string]interface{}{
		"industry": industry,
		"style":    style,
		"stage":    funding.Stage,
	})

	return &Output{
		Context: models.DerivedContext{
			Industry:       industry,
			Style:          style,
			Approach:       approach,
			MetricsFocus:   metricsFocus,
			PrimaryFocus:   primary,
			SecondaryFocus: secondary,
			Funding:        funding,
			Seed:           seed,
		},
	}, nil
}

// DeriveSeed hashes the canonicalized parameter tuple. Identical full
// tuples always map to the same seed; changing any single field changes
// it.
func DeriveSeed(req *models.PitchRequest) uint64 {
	canonical := strings.Join([]string{
		req.Idea,
		req.TargetAudience,
		req.Industry,
		req.FundingStage,
		req.PresentationStyle,
		req.BusinessModel,
		req.CompetitorContext,
		req.RequestID,
	}, "|")
	return xxhash.Sum64String(canonical)
}

// detectIndustry uses an explicit industry verbatim as the category
// key, otherwise scans the idea text case-insensitively against the
// ordered keyword rules.
func detectIndustry(req *models.PitchRequest) string {
	if req.Industry != "" {
		return req.Industry
	}

	ideaLower := strings.ToLower(req.Idea)
	for _, rule := range industryRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(ideaLower, keyword) {
				return rule.Category
			}
		}
	}
	return DefaultCategory
}

func resolveStyle(requested string, rng *rand.Rand) (style, approach, metricsFocus string) {
	if profile, ok := styleProfiles[requested]; ok {
		return requested, profile.Approach, profile.MetricsFocus
	}

	// "balanced" or anything unrecognized: sample a concrete style and
	// an independent metrics focus.
	style = alternativeStyles[rng.Intn(len(alternativeStyles))]
	metricsFocus = metricsFocusOptions[rng.Intn(len(metricsFocusOptions))]
	return style, styleProfiles[style].Approach, metricsFocus
}

// sampleFocusAreas picks two distinct entries from the industry's
// focus-area list, falling back to the default list for unknown
// categories.
func sampleFocusAreas(industry string, rng *rand.Rand) (primary, secondary string) {
	areas, ok := industryFocusAreas[industry]
	if !ok {
		areas = industryFocusAreas[DefaultCategory]
	}

	i := rng.Intn(len(areas))
	j := rng.Intn(len(areas) - 1)
	if j >= i {
		j++
	}
	return areas[i], areas[j]
}

func lookupFundingStage(stage string) models.FundingContext {
	if fc, ok := fundingStages[stage]; ok {
		return fc
	}
	return fundingStages["seed"]
}
