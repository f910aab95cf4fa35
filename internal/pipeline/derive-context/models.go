// internal/pipeline/derive-context/models.go
package derivecontext

import "pitchforge/internal/models"

// Input carries an already normalized request.
type Input struct {
	Request *models.PitchRequest `json:"request"`
}

type Output struct {
	Context models.DerivedContext `json:"context"`
}
