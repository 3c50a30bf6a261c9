package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Events(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/events/public", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"type": "PushEvent",
				"repo": {"name": "alice/widgets"},
				"created_at": "2025-01-13T10:00:00Z",
				"payload": {"commits": [{"message": "fix bug", "url": "https://x/commit/1"}]}
			},
			{
				"type": "WatchEvent",
				"repo": {"name": "acme/api"},
				"created_at": "2025-01-12T09:00:00Z",
				"payload": {}
			}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	events, err := client.Events(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "PushEvent", events[0].Type)
	assert.Equal(t, "alice/widgets", events[0].Repo.Name)
}

func TestClient_Events_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "rate limit exceeded"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Events(context.Background(), "alice")
	require.Error(t, err)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, http.StatusForbidden, transport.Status)
	assert.Contains(t, transport.Body, "rate limit exceeded")
}

func TestClient_RenderedEvents_FiltersToDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"type": "PushEvent",
				"repo": {"name": "alice/widgets"},
				"created_at": "2025-01-13T10:00:00Z",
				"payload": {"commits": [{"message": "fix bug", "url": "https://x/commit/1"}]}
			},
			{
				"type": "PushEvent",
				"repo": {"name": "alice/widgets"},
				"created_at": "2025-01-12T23:59:59Z",
				"payload": {"commits": [{"message": "old work", "url": "https://x/commit/0"}]}
			}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	got, err := client.RenderedEvents(context.Background(), "alice", mustDay(t, "2025-01-13"))
	require.NoError(t, err)
	assert.Contains(t, got, "Event Type: PushEvent")
	assert.Contains(t, got, "Date: 2025-01-13 10:00:00")
	assert.Contains(t, got, "fix bug")
	assert.Contains(t, got, "https://x/commit/1")
	assert.NotContains(t, got, "old work")
}

func TestClient_RenderedEvents_EmptyDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	got, err := client.RenderedEvents(context.Background(), "alice", mustDay(t, "2025-01-13"))
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
