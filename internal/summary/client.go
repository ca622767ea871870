// Package summary produces short page summaries via an OpenAI-compatible
// chat-completions API, with a plain-truncation fallback.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const systemPrompt = "Summarize the following web page text in two or three sentences. Keep names, dates and numbers. Reply with the summary only."

// Config holds the remote model settings.
type Config struct {
	BaseURL       string
	APIKey        string
	Model         string
	MaxInputChars int
	FallbackChars int
	Timeout       time.Duration
}

// Client summarizes page text. A summary must never fail a crawl, so any
// API error degrades to truncating the input.
type Client struct {
	cfg    Config
	httpc  *http.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		httpc:  &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize returns a short summary of text, falling back to truncation
// when the API is unconfigured or unavailable.
func (c *Client) Summarize(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if c.cfg.APIKey == "" {
		return c.fallback(text)
	}

	input := text
	if runes := []rune(input); len(runes) > c.cfg.MaxInputChars {
		input = string(runes[:c.cfg.MaxInputChars])
	}

	out, err := c.complete(ctx, input)
	if err != nil {
		c.logger.Warn("summary api failed, falling back to truncation", zap.Error(err))
		return c.fallback(text)
	}
	return out
}

func (c *Client) complete(ctx context.Context, input string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: input},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("call summary api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary api returned %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("summary api returned no choices")
	}
	summary := strings.TrimSpace(out.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("summary api returned an empty summary")
	}
	return summary, nil
}

func (c *Client) fallback(text string) string {
	if runes := []rune(text); len(runes) > c.cfg.FallbackChars {
		return string(runes[:c.cfg.FallbackChars])
	}
	return text
}
