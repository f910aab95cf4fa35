// internal/pipeline/normalize-request/models.go
package normalizerequest

import "pitchforge/internal/models"

type Input struct {
	Request *models.PitchRequest `json:"request"`
}

type Output struct {
	Normalized models.PitchRequest `json:"normalized"`
}
