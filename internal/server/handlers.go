// internal/server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"pitchforge/internal/models"
	"pitchforge/pkg/schemas"
)

// maxBodyBytes caps request bodies at 1 MiB. Ideas are short text; a
// larger body is always a caller bug.
const maxBodyBytes = 1 << 20

type validationFailure struct {
	Error  string   `json:"error"`
	Issues []string `json:"issues,omitempty"`
}

// healthResponse reports readiness and which credentials are present.
// Presence booleans only; raw key material never appears here.
type healthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	AIProvider       string `json:"ai_provider"`
	MockMode         bool   `json:"mock_mode"`
	GeminiAvailable  bool   `json:"gemini_available"`
	OpenAIConfigured bool   `json:"openai_configured"`
	Time             string `json:"time"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.serveGeneration(w, r, false)
}

func (s *Server) handleGenerateDetailed(w http.ResponseWriter, r *http.Request) {
	s.serveGeneration(w, r, true)
}

func (s *Server) serveGeneration(w http.ResponseWriter, r *http.Request, detailed bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			jsonError(w, "Request body exceeds 1 MiB", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	issues, err := schemas.ValidateRequest(body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationFailure{
			Error: "Request body is not valid JSON",
		})
		return
	}
	if len(issues) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, validationFailure{
			Error:  "Request body failed validation",
			Issues: issues,
		})
		return
	}

	var req models.PitchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationFailure{
			Error: "Request body is not valid JSON",
		})
		return
	}
	if req.RequestID == "" {
		req.RequestID = requestIDFrom(r.Context())
	}

	var response models.PitchResponse
	if detailed {
		response = s.generator.GenerateDetailed(r.Context(), &req)
	} else {
		response = s.generator.Generate(r.Context(), &req)
	}
	// Business failures stay 200; only transport-level problems change
	// the status code.
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:           "healthy",
		Service:          "pitch-deck-generator",
		AIProvider:       s.cfg.PrimaryProvider(),
		MockMode:         s.cfg.Generation.MockMode,
		GeminiAvailable:  s.cfg.GeminiConfigured(),
		OpenAIConfigured: s.cfg.OpenAIConfigured(),
		Time:             time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Pitchforge Pitch Deck Generator",
		"version": s.cfg.App.Version,
		"status":  "running",
		"endpoints": map[string]string{
			"generate_pitch":          "/api/generate",
			"generate_detailed_pitch": "/api/generate-detailed",
			"health":                  "/api/health",
			"metrics":                 "/metrics",
		},
	})
}

// handleTestMock mirrors the config flag against the raw environment so
// a misconfigured deployment is easy to spot from the outside.
func (s *Server) handleTestMock(w http.ResponseWriter, r *http.Request) {
	mockEnv := os.Getenv("MOCK_MODE")
	if mockEnv == "" {
		mockEnv = "not-set"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mock_mode": s.cfg.Generation.MockMode,
		"mock_env":  mockEnv,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
