// Package daily provisions ephemeral rooms and owner tokens through the
// Daily REST API.
package daily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iakhil/phronesis/internal/metrics"
)

const (
	DefaultAPIBase = "https://api.daily.co/v1"

	// Room properties used for every provisioned room.
	maxParticipants = 10
	ownerUserName   = "Phronesis AI"
)

// RoomCredential is what a provisioned room yields: where to join and the
// owner token scoped to it. It lives only as long as the response and the
// worker's invocation arguments.
type RoomCredential struct {
	RoomURL  string
	RoomName string
	Token    string
}

// ProvisionError carries the upstream status and body for diagnostics.
// Provisioning is never retried here; the caller may retry at its own
// discretion.
type ProvisionError struct {
	Op     string // "create room" or "create token"
	Status int
	Body   string
	Err    error
}

func (e *ProvisionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("daily: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("daily: %s: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// Config for the Daily client. APIBase is overridable for tests.
type Config struct {
	APIKey  string `mapstructure:"api_key"`
	APIBase string `mapstructure:"api_base"`
}

type Client struct {
	apiKey string
	base   string
	hc     *http.Client
}

func New(cfg Config) *Client {
	base := cfg.APIBase
	if base == "" {
		base = DefaultAPIBase
	}
	return &Client{
		apiKey: cfg.APIKey,
		base:   base,
		hc:     &http.Client{Timeout: 15 * time.Second},
	}
}

type roomProperties struct {
	MaxParticipants   int  `json:"max_participants"`
	EnableRecording   bool `json:"enable_recording"`
	EnableScreenshare bool `json:"enable_screenshare"`
}

type tokenProperties struct {
	RoomName string `json:"room_name"`
	IsOwner  bool   `json:"is_owner"`
	UserName string `json:"user_name"`
}

// Provision creates a room, then mints an owner token scoped to it. Either
// call failing (non-2xx status or malformed body) surfaces a
// *ProvisionError immediately.
func (c *Client) Provision(ctx context.Context) (RoomCredential, error) {
	start := time.Now()

	var room struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	}
	err := c.post(ctx, "create room", "/rooms", map[string]any{
		"properties": roomProperties{MaxParticipants: maxParticipants},
	}, &room)
	if err != nil {
		return RoomCredential{}, err
	}
	if room.URL == "" || room.Name == "" {
		return RoomCredential{}, &ProvisionError{Op: "create room", Status: http.StatusOK, Body: "response missing url or name"}
	}

	var tok struct {
		Token string `json:"token"`
	}
	err = c.post(ctx, "create token", "/meeting-tokens", map[string]any{
		"properties": tokenProperties{RoomName: room.Name, IsOwner: true, UserName: ownerUserName},
	}, &tok)
	if err != nil {
		return RoomCredential{}, err
	}
	if tok.Token == "" {
		return RoomCredential{}, &ProvisionError{Op: "create token", Status: http.StatusOK, Body: "response missing token"}
	}

	metrics.ObserveProvision(time.Since(start))
	return RoomCredential{RoomURL: room.URL, RoomName: room.Name, Token: tok.Token}, nil
}

func (c *Client) post(ctx context.Context, op, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &ProvisionError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return &ProvisionError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return &ProvisionError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &ProvisionError{Op: op, Status: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ProvisionError{Op: op, Status: resp.StatusCode, Body: string(raw), Err: err}
	}
	return nil
}
