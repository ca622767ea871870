package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTPScorerEntailment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req scoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "the premise", req.Premise)
		require.NotEmpty(t, req.Hypothesis)

		_ = json.NewEncoder(w).Encode(scoreResponse{Entailment: 0.73})
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, 5*time.Second)
	score, err := scorer.Entailment(context.Background(), "the premise", "the hypothesis")
	require.NoError(t, err)
	require.Equal(t, 0.73, score)
}

func TestHTTPScorerNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, 5*time.Second)
	_, err := scorer.Entailment(context.Background(), "p", "h")
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestHTTPScorerRejectsOutOfRangeScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(scoreResponse{Entailment: 1.7})
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, 5*time.Second)
	_, err := scorer.Entailment(context.Background(), "p", "h")
	require.Error(t, err)
}
