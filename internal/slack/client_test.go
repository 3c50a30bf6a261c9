package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessage(t *testing.T) {
	var gotAuth, gotChannel, gotText string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat.postMessage", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		var req struct {
			Channel string `json:"channel"`
			Text    string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotChannel = req.Channel
		gotText = req.Text

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	err := client.PostMessage(context.Background(), "D123", "hello there")

	require.NoError(t, err)
	assert.Equal(t, "Bearer xoxb-test", gotAuth)
	assert.Equal(t, "D123", gotChannel)
	assert.Equal(t, "hello there", gotText)
}

func TestPostMessage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": false, "error": "channel_not_found"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	err := client.PostMessage(context.Background(), "D999", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestPostMessage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	err := client.PostMessage(context.Background(), "D123", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
