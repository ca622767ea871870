package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPScorer talks to an NLI scoring service over a small JSON API:
// POST {"premise","hypothesis"} returns {"entailment": <0..1>}.
type HTTPScorer struct {
	endpoint string
	httpc    *http.Client
}

func NewHTTPScorer(endpoint string, timeout time.Duration) *HTTPScorer {
	return &HTTPScorer{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: timeout},
	}
}

type scoreRequest struct {
	Premise    string `json:"premise"`
	Hypothesis string `json:"hypothesis"`
}

type scoreResponse struct {
	Entailment float64 `json:"entailment"`
}

func (s *HTTPScorer) Entailment(ctx context.Context, premise, hypothesis string) (float64, error) {
	payload, err := json.Marshal(scoreRequest{Premise: premise, Hypothesis: hypothesis})
	if err != nil {
		return 0, fmt.Errorf("encode score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call scorer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("scorer returned %d: %s", resp.StatusCode, body)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode score response: %w", err)
	}
	if out.Entailment < 0 || out.Entailment > 1 {
		return 0, fmt.Errorf("scorer returned out-of-range score %f", out.Entailment)
	}
	return out.Entailment, nil
}
