package ai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Revenue is trending up."}}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
	}, testLogger())

	content, err := client.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "Revenue is trending up.", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
}

func TestCompleteErrors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		client := NewClient(Config{}, testLogger())
		_, err := client.Complete(context.Background(), "s", "u")
		assert.ErrorContains(t, err, "api key")
	})

	t.Run("api error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"rate limited"}}`))
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "k", BaseURL: server.URL}, testLogger())
		_, err := client.Complete(context.Background(), "s", "u")
		assert.ErrorContains(t, err, "status 429")
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "k", BaseURL: server.URL}, testLogger())
		_, err := client.Complete(context.Background(), "s", "u")
		assert.ErrorContains(t, err, "no choices")
	})
}

func TestBuildAnalysisPrompt(t *testing.T) {
	prompt := BuildAnalysisPrompt("OrdersTable", "A1:Z200", 200, "focus on March", "a,b\n1,2")

	assert.Contains(t, prompt, "Sheet: OrdersTable")
	assert.Contains(t, prompt, "Range: A1:Z200")
	assert.Contains(t, prompt, "max 200")
	assert.Contains(t, prompt, "focus on March")
	assert.Contains(t, prompt, "a,b\n1,2")
}

func TestBuildAnalysisPromptTruncatesInstructions(t *testing.T) {
	long := strings.Repeat("x", 5000)
	prompt := BuildAnalysisPrompt("Tab", "A1:B2", 10, long, "csv")
	assert.Less(t, len(prompt), 2000)
}

func TestBuildAnalysisPromptNoInstructions(t *testing.T) {
	prompt := BuildAnalysisPrompt("Tab", "A1:B2", 10, "", "csv")
	assert.NotContains(t, prompt, "Additional user instructions")
}
