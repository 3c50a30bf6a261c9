package linear

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_UserIDByEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "GetUserByEmail")
		assert.Equal(t, "alice@example.com", req.Variables["email"])

		w.Write([]byte(`{"data": {"users": {"nodes": [
			{"id": "usr_1", "name": "Alice", "email": "alice@example.com"}
		]}}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	id, err := client.UserIDByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "usr_1", id)
}

func TestClient_UserIDByEmail_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"users": {"nodes": []}}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	_, err := client.UserIDByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_UserIDByEmail_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid key"}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL)

	_, err := client.UserIDByEmail(context.Background(), "alice@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, http.StatusUnauthorized, transport.Status)
	assert.Contains(t, transport.Error(), "invalid key")
}

func TestClient_UserIDByEmail_QueryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "field users not found"}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	_, err := client.UserIDByEmail(context.Background(), "alice@example.com")
	require.Error(t, err)

	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Contains(t, queryErr.Messages, "field users not found")
}

func TestClient_AssignedIssues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "UserActivities")
		assert.Equal(t, "usr_1", req.Variables["userId"])

		w.Write([]byte(`{"data": {"issues": {"nodes": [
			{
				"id": "iss_1",
				"title": "Fix pagination",
				"createdAt": "2025-01-13T09:00:00.000Z",
				"updatedAt": "2025-01-13T15:00:00.000Z",
				"state": {"name": "In Progress"},
				"comments": {"nodes": [
					{"body": "Started on this", "createdAt": "2025-01-13T10:00:00.000Z"}
				]}
			},
			{
				"id": "iss_2",
				"title": "Upgrade toolchain",
				"createdAt": "2025-01-10T09:00:00.000Z",
				"updatedAt": "2025-01-10T09:00:00.000Z",
				"state": {"name": "Backlog"},
				"comments": {"nodes": []}
			}
		]}}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	issues, err := client.AssignedIssues(context.Background(), "usr_1")
	require.NoError(t, err)
	require.Len(t, issues, 2)

	// Tracker order is preserved.
	assert.Equal(t, "iss_1", issues[0].ID)
	assert.Equal(t, "Fix pagination", issues[0].Title)
	assert.Equal(t, "In Progress", issues[0].State.Name)
	require.Len(t, issues[0].Comments, 1)
	assert.Equal(t, "Started on this", issues[0].Comments[0].Body)

	assert.Equal(t, "iss_2", issues[1].ID)
	assert.Empty(t, issues[1].Comments)
}

func TestClient_AssignedIssues_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"issues": {"nodes": []}}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	issues, err := client.AssignedIssues(context.Background(), "usr_1")
	require.NoError(t, err)
	assert.Empty(t, issues)
}
