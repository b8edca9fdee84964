package daily

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionHappyPath(t *testing.T) {
	var roomBody, tokenBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		switch r.URL.Path {
		case "/rooms":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&roomBody))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"url":"https://x.daily.co/abc123","name":"abc123"}`))
		case "/meeting-tokens":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&tokenBody))
			_, _ = w.Write([]byte(`{"token":"tok-xyz"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	c := New(Config{APIKey: "test-key", APIBase: ts.URL})
	cred, err := c.Provision(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://x.daily.co/abc123", cred.RoomURL)
	assert.Equal(t, "abc123", cred.RoomName)
	assert.Equal(t, "tok-xyz", cred.Token)

	roomProps := roomBody["properties"].(map[string]any)
	assert.Equal(t, float64(10), roomProps["max_participants"])
	assert.Equal(t, false, roomProps["enable_recording"])
	assert.Equal(t, false, roomProps["enable_screenshare"])

	tokenProps := tokenBody["properties"].(map[string]any)
	assert.Equal(t, "abc123", tokenProps["room_name"])
	assert.Equal(t, true, tokenProps["is_owner"])
	assert.Equal(t, "Phronesis AI", tokenProps["user_name"])
}

func TestProvisionRoomFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer ts.Close()

	c := New(Config{APIKey: "bad", APIBase: ts.URL})
	_, err := c.Provision(context.Background())
	var pe *ProvisionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create room", pe.Op)
	assert.Equal(t, http.StatusForbidden, pe.Status)
	assert.Contains(t, pe.Body, "invalid api key")
}

func TestProvisionTokenFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rooms" {
			_, _ = w.Write([]byte(`{"url":"https://x.daily.co/abc","name":"abc"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer ts.Close()

	c := New(Config{APIKey: "k", APIBase: ts.URL})
	_, err := c.Provision(context.Background())
	var pe *ProvisionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create token", pe.Op)
	assert.Equal(t, http.StatusInternalServerError, pe.Status)
}

func TestProvisionMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":true}`))
	}))
	defer ts.Close()

	c := New(Config{APIKey: "k", APIBase: ts.URL})
	_, err := c.Provision(context.Background())
	var pe *ProvisionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create room", pe.Op)
}

func TestProvisionConnectionRefused(t *testing.T) {
	c := New(Config{APIKey: "k", APIBase: "http://127.0.0.1:1"})
	_, err := c.Provision(context.Background())
	var pe *ProvisionError
	require.True(t, errors.As(err, &pe))
	require.Error(t, pe.Unwrap())
}
