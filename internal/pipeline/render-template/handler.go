// internal/pipeline/render-template/handler.go
package rendertemplate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"text/template"

	"pitchforge/internal/common/logger"
)

const StageName = "render-template"

var (
	ErrRenderFailed = errors.New("TEMPLATE_RENDER_FAILED")
)

// ==========================
// Industry Profiles
// ==========================

var industryProfiles = map[string][]industryProfile{
	"foodtech": {
		{
			IndustryContext: "food & delivery",
			MarketSize:      "$150B food service market",
			Technology:      "Smart logistics and recommendation engine",
			ProblemBullets: []string{
				"Food delivery is slow, expensive, and unreliable",
				"45% of orders arrive late or incorrect",
				"Limited options for dietary restrictions",
				"High fees burden both customers and restaurants",
			},
			ModelBullets: []string{
				"Commission from restaurants: 15-25% per order",
				"Delivery fees: $2-5 per order + surge pricing",
				"Subscription model: $9.99/month for free delivery",
				"Advertising revenue from featured restaurants",
			},
		},
		{
			IndustryContext: "food & delivery",
			MarketSize:      "$95B online food ordering market",
			Technology:      "Ghost-kitchen network with demand forecasting",
			ProblemBullets: []string{
				"Restaurant margins shrink under rising rents and labor costs",
				"Peak-hour demand swings leave kitchens idle or overwhelmed",
				"Diners wait 40+ minutes for cold, inconsistent orders",
				"Independent restaurants lack tools to reach nearby customers",
			},
			ModelBullets: []string{
				"Kitchen-as-a-service leases: $1.5K-4K per month",
				"Order routing fees: $0.75 per fulfilled order",
				"Premium placement: $500/month per virtual brand",
				"Data insight subscriptions for restaurant groups",
			},
		},
	},
	"healthtech": {
		{
			IndustryContext: "health & wellness",
			MarketSize:      "$280B healthcare market",
			Technology:      "Data-driven health optimization platform",
			ProblemBullets: []string{
				"73% of people struggle to maintain fitness routines",
				"Lack of personalized health guidance",
				"Expensive personal trainers and nutritionists",
				"Poor tracking of health metrics and progress",
			},
			ModelBullets: []string{
				"Subscription tiers: Basic ($4.99), Premium ($14.99), Pro ($29.99)",
				"Corporate wellness programs: $5-15 per employee/month",
				"Wearable device partnerships and data licensing",
				"In-app purchases for specialized programs",
			},
		},
		{
			IndustryContext: "health & wellness",
			MarketSize:      "$96B fitness industry",
			Technology:      "Wearable-connected coaching engine",
			ProblemBullets: []string{
				"Generic workout plans ignore individual health baselines",
				"60% of gym memberships go unused after February",
				"Chronic conditions need daily habits, not annual checkups",
				"Health data sits siloed across apps and devices",
			},
			ModelBullets: []string{
				"Coaching subscriptions: $9.99-$39.99 per month",
				"Employer wellness contracts: $8 per employee/month",
				"Hardware margin on partnered wearable bundles",
				"Anonymized cohort insights for insurers",
			},
		},
	},
	"edtech": {
		{
			IndustryContext: "education technology",
			MarketSize:      "$75B education technology market",
			Technology:      "Intelligent learning and matching platform",
			ProblemBullets: []string{
				"Traditional education methods are outdated and ineffective",
				"67% of students struggle to find relevant learning resources",
				"High cost of quality education creates barriers",
				"Lack of personalized learning paths",
			},
			ModelBullets: []string{
				"Course fees: $99-499 per course",
				"Subscription model: $29.99/month for unlimited access",
				"Corporate training contracts: $10K-50K annually",
				"Certification and placement fees",
			},
		},
		{
			IndustryContext: "education technology",
			MarketSize:      "$102B corporate training market",
			Technology:      "Skill-graph driven micro-learning platform",
			ProblemBullets: []string{
				"Employees forget 70% of training within a week",
				"Course catalogs are bloated and untargeted",
				"Managers cannot see skill gaps across their teams",
				"Certification costs price out individual learners",
			},
			ModelBullets: []string{
				"Per-seat licenses: $12/month per learner",
				"Team analytics add-on: $99/month per department",
				"Marketplace revenue share: 30% on expert-authored content",
				"Cohort-based certificate programs: $299 per seat",
			},
		},
	},
	"fintech": {
		{
			IndustryContext: "fintech & trading",
			MarketSize:      "$180B cryptocurrency market",
			Technology:      "AI-powered trading algorithms and risk management",
			ProblemBullets: []string{
				"80% of crypto traders lose money due to poor timing",
				"Complex trading interfaces intimidate new users",
				"Lack of automated risk management tools",
				"Emotional trading leads to significant losses",
			},
			ModelBullets: []string{
				"Trading fees: 0.1-0.5% per transaction",
				"Premium features: $49.99/month subscription",
				"Copy-trading commissions: 10% of profits",
				"API access for institutional clients",
			},
		},
		{
			IndustryContext: "fintech & trading",
			MarketSize:      "$120B retail investing market",
			Technology:      "Risk-aware portfolio automation engine",
			ProblemBullets: []string{
				"New investors copy strategies they do not understand",
				"Hidden spreads and fees erode small portfolios",
				"Panic selling wipes out years of gains in downturns",
				"Tax reporting across exchanges is a manual nightmare",
			},
			ModelBullets: []string{
				"Managed portfolio fee: 0.25% of assets annually",
				"Pro tooling: $29.99/month subscription",
				"Transparent $1 trade tickets with no order-flow sales",
				"White-label API for regional brokers",
			},
		},
	},
	"default": {
		{
			IndustryContext: "emerging technology",
			MarketSize:      "$50B+ addressable market",
			Technology:      "Innovative technology platform",
			ProblemBullets: []string{
				"Current market solutions are fragmented and inefficient",
				"68% dissatisfaction with existing alternatives",
				"High costs and poor user experience",
				"Lack of modern, user-friendly solutions",
			},
			ModelBullets: []string{
				"Subscription model: $19.99/month for premium features",
				"Transaction fees: 3-5% per successful transaction",
				"Enterprise partnerships: $25K+ annual contracts",
				"Freemium model with paid upgrades",
			},
		},
		{
			IndustryContext: "emerging technology",
			MarketSize:      "$30B+ workflow automation market",
			Technology:      "Composable automation platform",
			ProblemBullets: []string{
				"Teams stitch together 10+ point tools to get work done",
				"Manual handoffs create errors and slow cycle times",
				"Legacy vendors charge enterprise prices for basic features",
				"Switching costs trap users in outdated workflows",
			},
			ModelBullets: []string{
				"Tiered subscriptions: $15-79 per month",
				"Usage-based automation credits",
				"Implementation services for mid-market accounts",
				"Partner marketplace with 20% revenue share",
			},
		},
	},
}

var detailedProfiles = map[string][]detailedProfile{
	"foodtech": {
		{
			CompanyName:     "FoodFlow",
			Tagline:         "Revolutionizing Food Delivery",
			TechStack:       "Real-time logistics, AI routing, Payment processing",
			TargetMarket:    "45M active food delivery users",
			TAM:             "$150B food delivery market",
			Competition:     "DoorDash, Uber Eats, Grubhub",
			Traction:        "2,800 restaurant partners, 15K monthly orders",
			IndustryContext: "food & delivery",
		},
		{
			CompanyName:     "DishDash",
			Tagline:         "Dinner, Solved",
			TechStack:       "Demand forecasting, Route optimization, In-app ordering",
			TargetMarket:    "30M urban households ordering weekly",
			TAM:             "$95B online food ordering market",
			Competition:     "Uber Eats, Deliveroo, regional couriers",
			Traction:        "1,900 restaurant partners, 11K weekly orders",
			IndustryContext: "food & delivery",
		},
	},
	"healthtech": {
		{
			CompanyName:     "HealthTech Pro",
			Tagline:         "Your Personal Health Companion",
			TechStack:       "IoT integration, ML analytics, HIPAA compliance",
			TargetMarket:    "180M health-conscious consumers",
			TAM:             "$280B digital health market",
			Competition:     "MyFitnessPal, Fitbit, Apple Health",
			Traction:        "12K beta users, 4.8/5 app rating, 2 clinical trials",
			IndustryContext: "health & wellness",
		},
		{
			CompanyName:     "VitalLoop",
			Tagline:         "Small Habits, Better Health",
			TechStack:       "Wearable APIs, Habit engine, Secure health records",
			TargetMarket:    "90M adults tracking at least one health metric",
			TAM:             "$96B fitness and wellness market",
			Competition:     "Whoop, Noom, Oura",
			Traction:        "7,400 active users, 62% 90-day retention",
			IndustryContext: "health & wellness",
		},
	},
	"edtech": {
		{
			CompanyName:     "EduConnect",
			Tagline:         "Bridging Learning Gaps",
			TechStack:       "Adaptive learning AI, Video streaming, Progress tracking",
			TargetMarket:    "65M students and professionals seeking skills",
			TAM:             "$366B global education market",
			Competition:     "Coursera, Udemy, Khan Academy",
			Traction:        "8,500 enrolled students, 89% completion rate",
			IndustryContext: "education technology",
		},
		{
			CompanyName:     "SkillSprint",
			Tagline:         "Learn the Next Thing Faster",
			TechStack:       "Skill graphs, Spaced repetition, Live cohorts",
			TargetMarket:    "40M professionals reskilling annually",
			TAM:             "$102B corporate training market",
			Competition:     "LinkedIn Learning, Pluralsight, Maven",
			Traction:        "5,200 learners, 78% course completion",
			IndustryContext: "education technology",
		},
	},
	"fintech": {
		{
			CompanyName:     "CryptoEdge",
			Tagline:         "Smart Trading for Everyone",
			TechStack:       "AI algorithms, Real-time data, Risk management",
			TargetMarket:    "50M cryptocurrency traders globally",
			TAM:             "$180B cryptocurrency market",
			Competition:     "Coinbase, Binance, Robinhood",
			Traction:        "5,200 active traders, $2.3M in managed assets",
			IndustryContext: "fintech & trading",
		},
		{
			CompanyName:     "LedgerPilot",
			Tagline:         "Invest with Guardrails",
			TechStack:       "Portfolio automation, Tax engine, Exchange aggregation",
			TargetMarket:    "35M retail investors with multi-exchange holdings",
			TAM:             "$120B retail investing market",
			Competition:     "eToro, Wealthfront, Public",
			Traction:        "3,800 funded accounts, $1.1M under automation",
			IndustryContext: "fintech & trading",
		},
	},
	"default": {
		{
			CompanyName:     "InnovateCorp",
			Tagline:         "Building Tomorrow's Solutions",
			TechStack:       "Modern cloud architecture, AI/ML, Mobile-first",
			TargetMarket:    "25M+ potential users in target segment",
			TAM:             "$45B+ addressable market",
			Competition:     "Legacy solutions and traditional incumbents",
			Traction:        "3,100 beta users, strong early adoption signals",
			IndustryContext: "emerging technology",
		},
		{
			CompanyName:     "NimbusWorks",
			Tagline:         "Workflows Without the Busywork",
			TechStack:       "Composable APIs, Workflow engine, Edge deployment",
			TargetMarket:    "18M teams running manual back-office processes",
			TAM:             "$30B+ workflow automation market",
			Competition:     "Zapier, Airtable, legacy suites",
			Traction:        "2,400 teams onboarded, 21% weekly usage growth",
			IndustryContext: "emerging technology",
		},
	},
}

// ==========================
// Funding Scenarios & Milestones
// ==========================

// fundingScenarios lists concrete asks inside each stage's amount
// range; the seed picks one.
var fundingScenarios = map[string][]string{
	"idea":     {"$150K angel round", "$200K angel round"},
	"pre-seed": {"$250K pre-seed round", "$400K pre-seed round"},
	"seed":     {"$750K seed funding", "$1.2M seed funding"},
	"series-a": {"$5M Series A", "$6.5M Series A"},
	"series-b": {"$20M Series B", "$25M Series B"},
}

var milestoneSets = []string{
	"5K users by month 12, $500K ARR by month 18",
	"10K users by month 12, $1M ARR by month 24",
	"3 enterprise pilots by month 9, $250K ARR by month 15",
}

// ==========================
// Deck Templates
// ==========================

const regularDeckTemplate = `**SLIDE 1: PROBLEM**
{{.Problem}}

**SLIDE 2: SOLUTION**
• {{.Technology}} designed specifically for this use case
• Addresses key user pain points through innovative approach
• Leverages modern technology stack for superior user experience
• Scalable solution with competitive advantages

**SLIDE 3: MARKET OPPORTUNITY**
• {{.MarketSize}} with 12% annual growth
• Target demographic represents 15M+ potential users
• Early adopter segment shows strong demand signals
• Market timing is optimal for this type of solution

**SLIDE 4: BUSINESS MODEL**
{{.BusinessModel}}

**SLIDE 5: CALL TO ACTION**
• Seeking {{.FundingAsk}} for {{.Runway}}
• Use of funds: {{.UseOfFunds}}
• Target milestones: {{.Milestones}}
• Looking for strategic investors with {{.IndustryContext}} expertise

*Mock pitch deck generated for: "{{.Idea}}"*`

const detailedDeckTemplate = `**SLIDE 1: TITLE & VISION**
• Company: {{.CompanyName}} - "{{.Tagline}}"
• Vision: Transform the industry through innovative technology solutions
• Mission: Make {{.PrimaryFocus}} effortless for every customer segment
• Founded by experienced entrepreneurs with domain expertise

**SLIDE 2: PROBLEM**
{{.Problem}}
• Market inefficiencies cost billions annually
• Existing alternatives fail the fastest-growing customer segments

**SLIDE 3: SOLUTION**
• Revolutionary platform addressing core market pain points
• {{.TechStack}} enabling superior performance and user experience
• Proprietary algorithms delivering 3x better results than competitors
• Scalable architecture supporting rapid growth and expansion
• Early roadmap prioritizes {{.PrimaryFocus}} and {{.SecondaryFocus}}

**SLIDE 4: PRODUCT DEMO**
• Intuitive interface with streamlined 3-step user journey
• Real-time updates and intelligent notifications
• Cross-platform compatibility (iOS, Android, Web)
• Advanced analytics and personalization features
• Offline-first experience with seamless cloud synchronization

**SLIDE 5: MARKET SIZE**
• TAM: {{.TAM}}
• SAM: $8.5B (addressable segment)
• SOM: $850M (serviceable obtainable market)
• {{.TargetMarket}}
• Market timing favors fast movers in {{.IndustryContext}}

**SLIDE 6: BUSINESS MODEL**
{{.BusinessModel}}
• Projected 70% gross margins at scale with multiple revenue streams

**SLIDE 7: COMPETITION**
• Main competitors: {{.Competition}}
• Our advantages: Superior UX, advanced algorithms, mobile-first approach
• Competitive moat: Network effects, data advantages, and patent protection
• 2-3 year technology lead on next-generation features
• Switching costs stay low for customers, high for competitors

**SLIDE 8: TRACTION**
• {{.Traction}}
• Strong month-over-month growth (18% average)
• Strategic partnerships with 3 industry leaders
• $85K in pre-revenue commitments secured

**SLIDE 9: FINANCIAL PROJECTIONS**
• Year 1: $120K revenue, 8K users (current trajectory)
• Year 2: $890K revenue, 35K users (scale phase)
• Year 3: $4.2M revenue, 125K users (market expansion)
• Gross margin improves from 48% to 70% as volume scales
• Break-even: Month 26, clear path to profitability

**SLIDE 10: FUNDING & USE OF FUNDS**
• Seeking {{.FundingAsk}} for {{.Runway}}
• Use of funds: {{.UseOfFunds}}
• Key milestones: {{.Milestones}}
• Investors gain a partner focused on {{.MetricsFocus}}

*Detailed mock pitch deck customized for: "{{.Idea}}"*`

var (
	regularTmpl  = template.Must(template.New("regular-deck").Parse(regularDeckTemplate))
	detailedTmpl = template.Must(template.New("detailed-deck").Parse(detailedDeckTemplate))
)

type regularDeckData struct {
	Problem         string
	Technology      string
	MarketSize      string
	BusinessModel   string
	FundingAsk      string
	Runway          string
	UseOfFunds      string
	Milestones      string
	IndustryContext string
	Idea            string
}

type detailedDeckData struct {
	CompanyName     string
	Tagline         string
	PrimaryFocus    string
	SecondaryFocus  string
	Problem         string
	TechStack       string
	TAM             string
	TargetMarket    string
	IndustryContext string
	BusinessModel   string
	Competition     string
	Traction        string
	FundingAsk      string
	Runway          string
	UseOfFunds      string
	Milestones      string
	MetricsFocus    string
	Idea            string
}

// ==========================
// Handler
// ==========================

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

// execute renders a deck entirely from the derived context. Every
// selection draws from a PRNG seeded by the request hash, so identical
// full parameter tuples yield byte-identical decks. Draw order is
// fixed: profile, funding ask, milestone set.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	rng := rand.New(rand.NewSource(int64(input.Context.Seed)))

	var deck string
	var err error
	if input.Detailed {
		deck, err = h.renderDetailed(input, rng)
	} else {
		deck, err = h.renderRegular(input, rng)
	}
	if err != nil {
		return nil, err
	}

	h.logger.Debug("deck rendered", map[string]interface{}{
		"industry": input.Context.Industry,
		"detailed": input.Detailed,
		"length":   len(deck),
	})
	return &Output{Deck: deck}, nil
}

func (h *Handler) renderRegular(input *Input, rng *rand.Rand) (string, error) {
	ctx := input.Context
	profiles := profilesFor(ctx.Industry)
	profile := profiles[rng.Intn(len(profiles))]

	data := regularDeckData{
		Problem:         bulletList(profile.ProblemBullets),
		Technology:      profile.Technology,
		MarketSize:      profile.MarketSize,
		BusinessModel:   bulletList(profile.ModelBullets),
		FundingAsk:      pickFundingAsk(ctx.Funding.Stage, rng),
		Runway:          ctx.Funding.Runway,
		UseOfFunds:      strings.Join(ctx.Funding.Priorities, ", "),
		Milestones:      milestoneSets[rng.Intn(len(milestoneSets))],
		IndustryContext: profile.IndustryContext,
		Idea:            input.Request.Idea,
	}

	return render(regularTmpl, data)
}

func (h *Handler) renderDetailed(input *Input, rng *rand.Rand) (string, error) {
	ctx := input.Context
	regular := profilesFor(ctx.Industry)
	detailed := detailedProfilesFor(ctx.Industry)

	// One index draw covers both profile sets so the problem and model
	// content stays aligned with the company framing.
	idx := rng.Intn(len(detailed))
	company := detailed[idx]
	profile := regular[idx%len(regular)]

	data := detailedDeckData{
		CompanyName:     company.CompanyName,
		Tagline:         company.Tagline,
		PrimaryFocus:    ctx.PrimaryFocus,
		SecondaryFocus:  ctx.SecondaryFocus,
		Problem:         bulletList(profile.ProblemBullets),
		TechStack:       company.TechStack,
		TAM:             company.TAM,
		TargetMarket:    company.TargetMarket,
		IndustryContext: company.IndustryContext,
		BusinessModel:   bulletList(profile.ModelBullets),
		Competition:     company.Competition,
		Traction:        company.Traction,
		FundingAsk:      pickFundingAsk(ctx.Funding.Stage, rng),
		Runway:          ctx.Funding.Runway,
		UseOfFunds:      strings.Join(ctx.Funding.Priorities, ", "),
		Milestones:      milestoneSets[rng.Intn(len(milestoneSets))],
		MetricsFocus:    ctx.MetricsFocus,
		Idea:            input.Request.Idea,
	}

	return render(detailedTmpl, data)
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}

func profilesFor(industry string) []industryProfile {
	if profiles, ok := industryProfiles[industry]; ok {
		return profiles
	}
	return industryProfiles["default"]
}

func detailedProfilesFor(industry string) []detailedProfile {
	if profiles, ok := detailedProfiles[industry]; ok {
		return profiles
	}
	return detailedProfiles["default"]
}

func pickFundingAsk(stage string, rng *rand.Rand) string {
	scenarios, ok := fundingScenarios[stage]
	if !ok {
		scenarios = fundingScenarios["seed"]
	}
	return scenarios[rng.Intn(len(scenarios))]
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}
