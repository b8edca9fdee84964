// Package gemini is a thin REST client for the Generative Language API.
// It is stateless; callers own prompt construction and caching.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultAPIBase = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash-exp"
)

// ErrNotConfigured is returned when no API key was provided. Content
// generation is optional; the orchestration core runs without it.
var ErrNotConfigured = errors.New("gemini: api key not configured")

// APIError carries the upstream status and body for diagnostics.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: status %d: %s", e.Status, e.Body)
}

type Config struct {
	APIKey  string `mapstructure:"api_key"`
	APIBase string `mapstructure:"api_base"`
	Model   string `mapstructure:"model"`
}

type Client struct {
	apiKey string
	base   string
	model  string
	hc     *http.Client
}

func New(cfg Config) *Client {
	base := cfg.APIBase
	if base == "" {
		base = DefaultAPIBase
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey: cfg.APIKey,
		base:   base,
		model:  model,
		hc:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type part struct {
	Text string `json:"text"`
}

type turn struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []turn `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content turn `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single-turn prompt and returns the first candidate's
// text, trimmed.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	req := generateRequest{Contents: []turn{{Parts: []part{{Text: prompt}}}}}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.base, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &APIError{Status: resp.StatusCode, Body: "empty candidates"}
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
