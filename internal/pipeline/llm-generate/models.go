// internal/pipeline/llm-generate/models.go
package llmgenerate

import "pitchforge/internal/models"

type Input struct {
	Request  *models.PitchRequest   `json:"request"`
	Context  *models.DerivedContext `json:"derived_context"`
	Detailed bool                   `json:"detailed"`
}

type Output struct {
	Deck     string `json:"deck"`
	Provider string `json:"provider"`
}
