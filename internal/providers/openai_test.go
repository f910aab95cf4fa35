// internal/providers/openai_test.go
package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchforge/internal/common/config"
	"pitchforge/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestOpenAI(t *testing.T, baseURL string, maxRetries int) *OpenAI {
	t.Helper()
	cfg := config.OpenAIConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Model:      "gpt-3.5-turbo",
		Timeout:    2000,
		MaxRetries: maxRetries,
	}
	return NewOpenAI(cfg, logger.NewTestLogger(t))
}

func chatCompletionBody(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestOpenAI_Generate_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotRequest chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)
		_, _ = w.Write([]byte(chatCompletionBody("**SLIDE 1: PROBLEM**\n• a problem")))
	}))
	defer server.Close()

	provider := createTestOpenAI(t, server.URL, 0)
	text, err := provider.Generate(context.Background(), testParams())

	require.NoError(t, err)
	assert.Equal(t, "**SLIDE 1: PROBLEM**\n• a problem", text)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-3.5-turbo", gotRequest.Model)
	assert.Equal(t, 1500, gotRequest.MaxTokens)
	assert.InDelta(t, 0.7, gotRequest.Temperature, 0.001)
	require.Len(t, gotRequest.Messages, 2)
	assert.Equal(t, "system", gotRequest.Messages[0].Role)
	assert.Equal(t, "user", gotRequest.Messages[1].Role)
	assert.Equal(t, "Create a pitch deck.", gotRequest.Messages[1].Content)
}

func TestOpenAI_Generate_OmitsEmptySystemMessage(t *testing.T) {
	var gotRequest chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)
		_, _ = w.Write([]byte(chatCompletionBody("deck")))
	}))
	defer server.Close()

	provider := createTestOpenAI(t, server.URL, 0)
	params := testParams()
	params.SystemPrompt = ""

	_, err := provider.Generate(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, gotRequest.Messages, 1)
	assert.Equal(t, "user", gotRequest.Messages[0].Role)
}

func TestOpenAI_Generate_RetriesRateLimit(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(chatCompletionBody("deck after retry")))
	}))
	defer server.Close()

	provider := createTestOpenAI(t, server.URL, 2)
	text, err := provider.Generate(context.Background(), testParams())

	require.NoError(t, err)
	assert.Equal(t, "deck after retry", text)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestOpenAI_Generate_RetriesServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := createTestOpenAI(t, server.URL, 1)
	_, err := provider.Generate(context.Background(), testParams())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries exhausted")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

// ==========================
// Edge Cases
// ==========================

func TestOpenAI_Generate_NonRetryableStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := createTestOpenAI(t, server.URL, 3)
	_, err := provider.Generate(context.Background(), testParams())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAI_Generate_APIErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"message": "insufficient quota", "type": "insufficient_quota"}}`))
	}))
	defer server.Close()

	provider := createTestOpenAI(t, server.URL, 0)
	_, err := provider.Generate(context.Background(), testParams())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api error")
}

func TestOpenAI_Generate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	provider := createTestOpenAI(t, server.URL, 0)
	_, err := provider.Generate(context.Background(), testParams())

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenAI_Generate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatCompletionBody("deck")))
	}))
	defer server.Close()

	provider := createTestOpenAI(t, server.URL, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Generate(ctx, testParams())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenAI_Available(t *testing.T) {
	withKey := NewOpenAI(config.OpenAIConfig{APIKey: "k", Timeout: 1000}, logger.NewNoOpLogger())
	withoutKey := NewOpenAI(config.OpenAIConfig{Timeout: 1000}, logger.NewNoOpLogger())

	assert.True(t, withKey.Available())
	assert.False(t, withoutKey.Available())
}
