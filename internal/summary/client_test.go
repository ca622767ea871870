package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		APIKey:        "test-key",
		Model:         "sarvam-2b",
		MaxInputChars: 8000,
		FallbackChars: 20,
		Timeout:       5 * time.Second,
	}
}

func TestSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "sarvam-2b", req.Model)
		require.Len(t, req.Messages, 2)

		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: " A short summary. "}})
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zap.NewNop())
	got := client.Summarize(context.Background(), "Long page text about admissions.")
	require.Equal(t, "A short summary.", got)
}

func TestSummarizeFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zap.NewNop())
	text := strings.Repeat("a", 100)
	got := client.Summarize(context.Background(), text)
	require.Equal(t, text[:20], got)
}

func TestSummarizeWithoutAPIKeyTruncates(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.APIKey = ""
	client := NewClient(cfg, zap.NewNop())

	got := client.Summarize(context.Background(), "short text")
	require.Equal(t, "short text", got)

	long := strings.Repeat("b", 50)
	require.Equal(t, long[:20], client.Summarize(context.Background(), long))
}

func TestSummarizeEmptyText(t *testing.T) {
	client := NewClient(testConfig("http://unused"), zap.NewNop())
	require.Empty(t, client.Summarize(context.Background(), "  \n "))
}
