// internal/models/pitch.go
package models

// PitchRequest is the body accepted by both generation endpoints. Only
// the idea is required; everything else has a documented default or is
// optional free text.
type PitchRequest struct {
	Idea              string `json:"idea"`
	TargetAudience    string `json:"target_audience,omitempty"`
	Industry          string `json:"industry,omitempty"`
	FundingStage      string `json:"funding_stage,omitempty"`
	PresentationStyle string `json:"presentation_style,omitempty"`
	BusinessModel     string `json:"business_model,omitempty"`
	CompetitorContext string `json:"competitor_context,omitempty"`
	RequestID         string `json:"request_id,omitempty"`
}

// PitchResponse is the envelope returned by both generation endpoints.
// Exactly one of {success=true, deck non-empty} or {success=false,
// deck=""} holds.
type PitchResponse struct {
	Deck    string `json:"deck"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FundingContext is the stage-dependent financial framing looked up
// during context derivation.
type FundingContext struct {
	Stage       string   `json:"stage"`
	AmountRange string   `json:"amount_range"`
	Runway      string   `json:"runway"`
	Priorities  []string `json:"priorities"`
}

// DerivedContext carries everything inferred from a normalized request.
// It lives for one request and is never persisted.
type DerivedContext struct {
	Industry       string         `json:"industry"`
	Style          string         `json:"style"`
	Approach       string         `json:"approach"`
	MetricsFocus   string         `json:"metrics_focus"`
	PrimaryFocus   string         `json:"primary_focus"`
	SecondaryFocus string         `json:"secondary_focus"`
	Funding        FundingContext `json:"funding"`
	Seed           uint64         `json:"seed"`
}
