package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleSystem, req.Messages[0].Role)
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "submit_update", req.Tools[0].Function.Name)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [
				{"message": {"role": "assistant", "content": "Here is your draft."}, "finish_reason": "stop"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4o")
	messages := []Message{
		{Role: RoleSystem, Content: "You are a standup assistant."},
		{Role: RoleUser, Content: "Draft my update."},
	}
	tools := []ToolSpec{
		{Type: "function", Function: FunctionSpec{Name: "submit_update", Description: "Save the update."}},
	}

	reply, err := client.Chat(context.Background(), messages, tools)

	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, "Here is your draft.", reply.Content)
	assert.Empty(t, reply.ToolCalls)
}

func TestChat_ToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [
				{
					"message": {
						"role": "assistant",
						"content": "",
						"tool_calls": [
							{"id": "call_1", "type": "function", "function": {"name": "get_update_from_memory", "arguments": "{}"}}
						]
					},
					"finish_reason": "tool_calls"
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4o")
	reply, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, nil)

	require.NoError(t, err)
	require.Len(t, reply.ToolCalls, 1)
	assert.Equal(t, "call_1", reply.ToolCalls[0].ID)
	assert.Equal(t, "get_update_from_memory", reply.ToolCalls[0].Function.Name)
}

func TestChat_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-bad", "gpt-4o")
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestChat_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4o")
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
