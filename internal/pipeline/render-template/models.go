// internal/pipeline/render-template/models.go
package rendertemplate

import "pitchforge/internal/models"

type Input struct {
	Request  *models.PitchRequest   `json:"request"`
	Context  *models.DerivedContext `json:"context"`
	Detailed bool                   `json:"detailed"`
}

type Output struct {
	Deck string `json:"deck"`
}

// industryProfile is one interchangeable content set for the regular
// five-slide deck. Each category carries several; the seed picks one.
type industryProfile struct {
	IndustryContext string
	MarketSize      string
	Technology      string
	ProblemBullets  []string
	ModelBullets    []string
}

// detailedProfile extends a category with the company framing used by
// the ten-slide deck.
type detailedProfile struct {
	CompanyName     string
	Tagline         string
	TechStack       string
	TargetMarket    string
	TAM             string
	Competition     string
	Traction        string
	IndustryContext string
}
