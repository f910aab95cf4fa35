// pkg/schemas/validate_test.go
package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantIssues bool
	}{
		{
			name:       "minimal valid request",
			body:       `{"idea": "AI meal planner"}`,
			wantIssues: false,
		},
		{
			name:       "full valid request",
			body:       `{"idea": "AI meal planner", "target_audience": "busy parents", "industry": "foodtech", "funding_stage": "seed", "presentation_style": "storytelling", "business_model": "subscription", "competitor_context": "HelloFresh", "request_id": "req-1"}`,
			wantIssues: false,
		},
		{
			name:       "unknown fields are ignored",
			body:       `{"idea": "AI meal planner", "color": "blue"}`,
			wantIssues: false,
		},
		{
			name:       "missing idea",
			body:       `{"target_audience": "investors"}`,
			wantIssues: true,
		},
		{
			name:       "idea has wrong type",
			body:       `{"idea": 42}`,
			wantIssues: true,
		},
		{
			name:       "optional field has wrong type",
			body:       `{"idea": "AI meal planner", "industry": ["foodtech"]}`,
			wantIssues: true,
		},
		{
			name:       "body is not an object",
			body:       `["idea"]`,
			wantIssues: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := ValidateRequest([]byte(tt.body))
			require.NoError(t, err)
			if tt.wantIssues {
				assert.NotEmpty(t, issues)
			} else {
				assert.Empty(t, issues)
			}
		})
	}
}

func TestValidateRequest_IssueTextNamesField(t *testing.T) {
	issues, err := ValidateRequest([]byte(`{"target_audience": "investors"}`))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "idea")
}

func TestValidateResponse(t *testing.T) {
	t.Run("valid envelope", func(t *testing.T) {
		issues, err := ValidateResponse([]byte(`{"deck": "SLIDE 1", "success": true, "message": "ok"}`))
		require.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("extra fields rejected", func(t *testing.T) {
		issues, err := ValidateResponse([]byte(`{"deck": "", "success": false, "message": "x", "debug": true}`))
		require.NoError(t, err)
		assert.NotEmpty(t, issues)
	})
}

func TestValidateHealth(t *testing.T) {
	issues, err := ValidateHealth([]byte(`{"status": "healthy", "ai_provider": "mock", "mock_mode": true, "gemini_available": false, "openai_configured": false}`))
	require.NoError(t, err)
	assert.Empty(t, issues)
}
