// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchforge/internal/common/config"
	"pitchforge/internal/common/logger"
	"pitchforge/internal/models"
	"pitchforge/internal/providers"
)

// ==========================
// Test Helper Functions
// ==========================

type stubChain struct {
	available bool
	deck      string
	provider  string
	err       error
}

func (s *stubChain) Available() bool { return s.available }

func (s *stubChain) Generate(_ context.Context, _ providers.Params) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return s.deck, s.provider, nil
}

func createTestConfig(mockMode bool) *config.Config {
	cfg := &config.Config{}
	cfg.Generation.MockMode = mockMode
	cfg.Generation.Temperature = 0.7
	cfg.Generation.MaxTokens = 1500
	cfg.Generation.DetailedMaxTokens = 3000
	return cfg
}

func createTestGenerator(tb testing.TB, cfg *config.Config, chain *stubChain) *Generator {
	if chain == nil {
		return New(cfg, nil, nil, logger.NewTestLogger(tb))
	}
	return New(cfg, chain, nil, logger.NewTestLogger(tb))
}

func createRequest(idea string) *models.PitchRequest {
	return &models.PitchRequest{
		Idea:         idea,
		Industry:     "foodtech",
		FundingStage: "seed",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestGenerator_Generate_MockMode(t *testing.T) {
	generator := createTestGenerator(t, createTestConfig(true), nil)

	response := generator.Generate(context.Background(), createRequest("A mobile app for food delivery"))

	assert.True(t, response.Success)
	assert.Equal(t, "Mock pitch deck generated successfully", response.Message)
	assert.Contains(t, response.Deck, "**SLIDE 1: PROBLEM**")
	assert.Contains(t, response.Deck, "**SLIDE 5: CALL TO ACTION**")
	assert.Contains(t, response.Deck, "A mobile app for food delivery")
}

func TestGenerator_GenerateDetailed_MockMode(t *testing.T) {
	generator := createTestGenerator(t, createTestConfig(true), nil)

	response := generator.GenerateDetailed(context.Background(), createRequest("A mobile app for food delivery"))

	assert.True(t, response.Success)
	assert.Equal(t, "Detailed mock pitch deck generated successfully", response.Message)
	assert.Contains(t, response.Deck, "**SLIDE 1: TITLE & VISION**")
	assert.Contains(t, response.Deck, "**SLIDE 10: FUNDING & USE OF FUNDS**")
}

func TestGenerator_Generate_ModelMode(t *testing.T) {
	chain := &stubChain{available: true, deck: "model generated deck", provider: "gemini"}
	generator := createTestGenerator(t, createTestConfig(false), chain)

	response := generator.Generate(context.Background(), createRequest("A mobile app for food delivery"))

	assert.True(t, response.Success)
	assert.Equal(t, "Pitch deck generated successfully", response.Message)
	assert.Equal(t, "model generated deck", response.Deck)
}

func TestGenerator_GenerateDetailed_ModelMode(t *testing.T) {
	chain := &stubChain{available: true, deck: "detailed model deck", provider: "openai"}
	generator := createTestGenerator(t, createTestConfig(false), chain)

	response := generator.GenerateDetailed(context.Background(), createRequest("A mobile app for food delivery"))

	assert.True(t, response.Success)
	assert.Equal(t, "Detailed pitch deck generated successfully", response.Message)
	assert.Equal(t, "detailed model deck", response.Deck)
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	generator := createTestGenerator(t, createTestConfig(true), nil)
	request := createRequest("An AI bookkeeping assistant for freelancers")

	first := generator.Generate(context.Background(), request)
	second := generator.Generate(context.Background(), request)

	require.True(t, first.Success)
	assert.Equal(t, first.Deck, second.Deck)
}

func TestGenerator_DetailedAtLeastTwiceRegular(t *testing.T) {
	generator := createTestGenerator(t, createTestConfig(true), nil)
	request := createRequest("A mobile app for food delivery")

	regular := generator.Generate(context.Background(), request)
	detailed := generator.GenerateDetailed(context.Background(), request)

	require.True(t, regular.Success)
	require.True(t, detailed.Success)
	assert.GreaterOrEqual(t, len(detailed.Deck), 2*len(regular.Deck))
}

func TestGenerator_MockDeck_IgnoresConfiguredStrategy(t *testing.T) {
	// Model mode configured, no provider; the preview still renders.
	generator := createTestGenerator(t, createTestConfig(false), nil)

	deck, err := generator.MockDeck(context.Background(), createRequest("A mobile app for food delivery"), false)

	require.NoError(t, err)
	assert.Contains(t, deck, "**SLIDE 1: PROBLEM**")
}

// ==========================
// Edge Cases
// ==========================

func TestGenerator_Generate_EmptyIdea(t *testing.T) {
	tests := []struct {
		name string
		idea string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := createTestGenerator(t, createTestConfig(true), nil)

			response := generator.Generate(context.Background(), createRequest(tt.idea))

			assert.False(t, response.Success)
			assert.Empty(t, response.Deck)
			assert.Equal(t, "Please provide a valid startup idea.", response.Message)
		})
	}
}

func TestGenerator_GenerateDetailed_EmptyIdea(t *testing.T) {
	generator := createTestGenerator(t, createTestConfig(true), nil)

	response := generator.GenerateDetailed(context.Background(), createRequest(""))

	assert.False(t, response.Success)
	assert.Empty(t, response.Deck)
	assert.Equal(t, "Please provide a valid startup idea.", response.Message)
}

func TestGenerator_Generate_NoProviderConfigured(t *testing.T) {
	generator := createTestGenerator(t, createTestConfig(false), nil)

	response := generator.Generate(context.Background(), createRequest("A mobile app for food delivery"))

	assert.False(t, response.Success)
	assert.Empty(t, response.Deck)
	assert.Equal(t, "No AI provider configured. Set an API key or enable mock mode.", response.Message)
}

func TestGenerator_Generate_ProviderFailure(t *testing.T) {
	chain := &stubChain{available: true, err: errors.New("upstream exploded: secret-key-123")}
	generator := createTestGenerator(t, createTestConfig(false), chain)

	response := generator.Generate(context.Background(), createRequest("A mobile app for food delivery"))

	assert.False(t, response.Success)
	assert.Empty(t, response.Deck)
	assert.Equal(t, "Failed to generate pitch deck", response.Message)
	// Provider detail stays in the logs, never in the envelope.
	assert.NotContains(t, response.Message, "secret-key-123")
}

func TestGenerator_MockDeck_EmptyIdea(t *testing.T) {
	generator := createTestGenerator(t, createTestConfig(true), nil)

	_, err := generator.MockDeck(context.Background(), createRequest(""), false)

	assert.Error(t, err)
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkGenerator_Generate_Mock(b *testing.B) {
	generator := createTestGenerator(b, createTestConfig(true), nil)
	requests := []*models.PitchRequest{
		createRequest("A mobile app for food delivery"),
		createRequest("An AI fitness coach"),
		createRequest("A crypto portfolio tracker"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		response := generator.Generate(context.Background(), requests[i%len(requests)])
		if !response.Success {
			b.Fatal("generation failed")
		}
	}
}
