// internal/pipeline/build-response/models.go
package buildresponse

import (
	apperrors "pitchforge/internal/common/errors"
	"pitchforge/internal/models"
)

// Input carries either a rendered deck or the error code a failed
// pipeline run was normalized to. ErrorCode set means failure envelope.
type Input struct {
	Deck      string              `json:"deck"`
	Mock      bool                `json:"mock"`
	Detailed  bool                `json:"detailed"`
	ErrorCode apperrors.ErrorCode `json:"error_code,omitempty"`
}

type Output struct {
	Response models.PitchResponse `json:"response"`
}
