package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReturnsFirstCandidate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1beta/models/gemini-2.0-flash-exp:generateContent", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		contents := req["contents"].([]any)
		require.Len(t, contents, 1)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  a surprising fact  "}]}}]}`))
	}))
	defer ts.Close()

	c := New(Config{APIKey: "secret", APIBase: ts.URL})
	got, err := c.Generate(context.Background(), "tell me a fact")
	require.NoError(t, err)
	assert.Equal(t, "a surprising fact", got)
}

func TestGenerateAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("quota exceeded"))
	}))
	defer ts.Close()

	c := New(Config{APIKey: "k", APIBase: ts.URL})
	_, err := c.Generate(context.Background(), "p")
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusTooManyRequests, ae.Status)
	assert.Contains(t, ae.Body, "quota exceeded")
}

func TestGenerateEmptyCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer ts.Close()

	c := New(Config{APIKey: "k", APIBase: ts.URL})
	_, err := c.Generate(context.Background(), "p")
	var ae *APIError
	require.ErrorAs(t, err, &ae)
}

func TestGenerateWithoutKey(t *testing.T) {
	c := New(Config{})
	assert.False(t, c.Configured())
	_, err := c.Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestContentPromptFallsBackToFact(t *testing.T) {
	known := ContentPrompt("story", "Space Exploration")
	assert.Contains(t, known, "Space Exploration")
	assert.Contains(t, known, "story")

	unknown := ContentPrompt("haiku", "Space Exploration")
	fact := ContentPrompt("fact", "Space Exploration")
	assert.Equal(t, fact, unknown)
}

func TestCurriculumPromptMentionsSubtopic(t *testing.T) {
	p := CurriculumPrompt("Operating Systems")
	assert.Contains(t, p, `"Operating Systems"`)
	assert.True(t, strings.Contains(p, "JSON array"))
}
