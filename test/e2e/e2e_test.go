// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchforge/internal/common/config"
	"pitchforge/internal/common/logger"
	"pitchforge/internal/models"
	"pitchforge/internal/pipeline"
	"pitchforge/internal/server"
)

var (
	baseURL string
	client  *http.Client
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.App.Name = "pitchforge"
	cfg.App.Version = "1.0.0"
	cfg.Server.Port = 8000
	cfg.Generation.MockMode = true
	cfg.Generation.UseGemini = true
	cfg.Generation.Temperature = 0.7
	cfg.Generation.MaxTokens = 1500
	cfg.Generation.DetailedMaxTokens = 3000

	log := logger.NewNoOpLogger()
	generator := pipeline.New(cfg, nil, nil, log)
	srv := httptest.NewServer(server.New(cfg, generator, log).Handler())

	baseURL = srv.URL
	client = &http.Client{Timeout: 30 * time.Second}

	code := m.Run()

	srv.Close()
	os.Exit(code)
}

// ==========================
// Test Helper Functions
// ==========================

func postJSON(t *testing.T, path string, payload map[string]interface{}) (*http.Response, []byte) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func generateDeck(t *testing.T, path string, payload map[string]interface{}) models.PitchResponse {
	t.Helper()

	resp, raw := postJSON(t, path, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response models.PitchResponse
	require.NoError(t, json.Unmarshal(raw, &response))
	return response
}

func getJSON(t *testing.T, path string) (*http.Response, map[string]interface{}) {
	t.Helper()

	resp, err := client.Get(baseURL + path)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

// ==========================
// Core Functionality Tests
// ==========================

func TestE2E_GenerateFoodDeliveryPitch(t *testing.T) {
	t.Log("🚀 Generating pitch for a food delivery startup...")

	response := generateDeck(t, "/generate", map[string]interface{}{
		"idea":          "A mobile app for food delivery",
		"industry":      "foodtech",
		"funding_stage": "seed",
	})

	require.True(t, response.Success)
	assert.Equal(t, "Mock pitch deck generated successfully", response.Message)

	headings := []string{
		"**SLIDE 1: PROBLEM**",
		"**SLIDE 2: SOLUTION**",
		"**SLIDE 3: MARKET OPPORTUNITY**",
		"**SLIDE 4: BUSINESS MODEL**",
		"**SLIDE 5: CALL TO ACTION**",
	}
	for _, heading := range headings {
		assert.Contains(t, response.Deck, heading)
	}
	assert.Contains(t, response.Deck, "food delivery")

	t.Log("✅ Five-slide deck generated")
}

func TestE2E_DetailedDeckIsLonger(t *testing.T) {
	payload := map[string]interface{}{
		"idea":          "A marketplace for renting industrial equipment",
		"funding_stage": "series-a",
	}

	regular := generateDeck(t, "/generate", payload)
	detailed := generateDeck(t, "/generate-detailed", payload)

	require.True(t, regular.Success)
	require.True(t, detailed.Success)
	assert.Equal(t, "Detailed mock pitch deck generated successfully", detailed.Message)

	assert.Contains(t, detailed.Deck, "**SLIDE 1: TITLE & VISION**")
	assert.Contains(t, detailed.Deck, "**SLIDE 10: FUNDING & USE OF FUNDS**")
	assert.GreaterOrEqual(t, len(detailed.Deck), 2*len(regular.Deck),
		"detailed deck should carry at least twice the content")
}

func TestE2E_SameRequestSameDeck(t *testing.T) {
	payload := map[string]interface{}{
		"idea":     "An AI tutor for high school math",
		"industry": "edtech",
	}

	first := generateDeck(t, "/generate", payload)
	second := generateDeck(t, "/generate", payload)

	require.True(t, first.Success)
	assert.Equal(t, first.Deck, second.Deck, "identical requests must render identical decks")
}

func TestE2E_FundingStageShapesDeck(t *testing.T) {
	seed := generateDeck(t, "/generate", map[string]interface{}{
		"idea":          "A platform for fractional real estate investing",
		"funding_stage": "seed",
	})
	seriesA := generateDeck(t, "/generate", map[string]interface{}{
		"idea":          "A platform for fractional real estate investing",
		"funding_stage": "series-a",
	})

	require.True(t, seed.Success)
	require.True(t, seriesA.Success)
	assert.NotEqual(t, seed.Deck, seriesA.Deck, "funding stage must influence the deck content")
}

func TestE2E_ConcurrentGeneration(t *testing.T) {
	payload := map[string]interface{}{"idea": "A subscription service for houseplants"}
	reference := generateDeck(t, "/generate", payload)
	require.True(t, reference.Success)

	const workers = 8
	decks := make([]string, workers)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()

			body, _ := json.Marshal(payload)
			resp, err := client.Post(baseURL+"/generate", "application/json", bytes.NewReader(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()

			var response models.PitchResponse
			if json.NewDecoder(resp.Body).Decode(&response) == nil && response.Success {
				decks[slot] = response.Deck
			}
		}(i)
	}
	wg.Wait()

	for i, deck := range decks {
		assert.Equal(t, reference.Deck, deck, "worker %d produced a divergent deck", i)
	}
}

func TestE2E_Health(t *testing.T) {
	resp, health := getJSON(t, "/health")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "pitch-deck-generator", health["service"])
	assert.Equal(t, "mock", health["ai_provider"])
	assert.Equal(t, true, health["mock_mode"])
	assert.Equal(t, false, health["gemini_available"])
	assert.Equal(t, false, health["openai_configured"])
}

func TestE2E_RootServiceInfo(t *testing.T) {
	resp, info := getJSON(t, "/")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pitchforge Pitch Deck Generator", info["service"])
	assert.Equal(t, "running", info["status"])
}

func TestE2E_MetricsExposed(t *testing.T) {
	// Generate once so the counter family is present.
	generateDeck(t, "/generate", map[string]interface{}{"idea": "A drone delivery network"})

	resp, err := client.Get(baseURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "pitch_decks_generated_total")
	assert.Contains(t, string(raw), "pitch_generation_duration_seconds")
}

// ==========================
// Edge Cases
// ==========================

func TestE2E_EmptyIdeaFailsGracefully(t *testing.T) {
	for _, path := range []string{"/generate", "/generate-detailed"} {
		t.Run(path, func(t *testing.T) {
			response := generateDeck(t, path, map[string]interface{}{"idea": "   "})

			assert.False(t, response.Success)
			assert.Empty(t, response.Deck)
			assert.Equal(t, "Please provide a valid startup idea.", response.Message)
		})
	}
}

func TestE2E_RequestValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"idea": "broken`},
		{"missing idea", `{"industry": "fintech"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Post(baseURL+"/generate", "application/json",
				bytes.NewReader([]byte(tt.body)))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		})
	}
}

func TestE2E_RequestIDRoundTrip(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "e2e-trace-42")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "e2e-trace-42", resp.Header.Get("X-Request-ID"))
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkE2E_Generate(b *testing.B) {
	payloads := make([][]byte, 3)
	for i, idea := range []string{
		"A mobile app for food delivery",
		"A B2B analytics dashboard",
		"A carbon accounting platform",
	} {
		payloads[i], _ = json.Marshal(map[string]interface{}{"idea": idea})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := client.Post(baseURL+"/generate", "application/json",
			bytes.NewReader(payloads[i%len(payloads)]))
		if err != nil {
			b.Fatal(err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

func BenchmarkE2E_GenerateDetailed(b *testing.B) {
	payload, _ := json.Marshal(map[string]interface{}{
		"idea": fmt.Sprintf("A fleet management platform %d", os.Getpid()),
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := client.Post(baseURL+"/generate-detailed", "application/json",
			bytes.NewReader(payload))
		if err != nil {
			b.Fatal(err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
