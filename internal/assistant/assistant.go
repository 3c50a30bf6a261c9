// Package assistant runs the standup conversation: per-session history,
// the workflow system prompt, and a tool loop against an
// OpenAI-compatible chat model.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/llm"
)

// maxToolRounds bounds the tool loop so a misbehaving model cannot spin.
const maxToolRounds = 8

// ChatModel is the completion backend.
type ChatModel interface {
	Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec) (*llm.Message, error)
}

type session struct {
	id      string
	history []llm.Message
}

type Assistant struct {
	model  ChatModel
	tools  map[string]Tool
	specs  []llm.ToolSpec
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func New(model ChatModel, tools []Tool, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}

	a := &Assistant{
		model:    model,
		tools:    make(map[string]Tool, len(tools)),
		logger:   logger,
		sessions: make(map[string]*session),
	}

	for _, t := range tools {
		a.tools[t.Name()] = t
		a.specs = append(a.specs, llm.ToolSpec{
			Type: "function",
			Function: llm.FunctionSpec{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}

	return a
}

// Respond handles one user message within the conversation identified by
// key (one session per Slack channel) and returns the assistant's reply.
func (a *Assistant) Respond(ctx context.Context, key, text string) (string, error) {
	sess := a.getSession(key)

	a.mu.Lock()
	sess.history = append(sess.history, llm.Message{Role: llm.RoleUser, Content: text})
	messages := make([]llm.Message, 0, len(sess.history)+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt})
	messages = append(messages, sess.history...)
	a.mu.Unlock()

	for round := 0; round < maxToolRounds; round++ {
		reply, err := a.model.Chat(ctx, messages, a.specs)
		if err != nil {
			return "", err
		}

		if len(reply.ToolCalls) == 0 {
			a.mu.Lock()
			sess.history = append(sess.history, *reply)
			a.mu.Unlock()
			return reply.Content, nil
		}

		messages = append(messages, *reply)
		for _, call := range reply.ToolCalls {
			result := a.runTool(ctx, sess.id, call)
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return "", fmt.Errorf("tool loop did not converge after %d rounds", maxToolRounds)
}

func (a *Assistant) runTool(ctx context.Context, sessionID string, call llm.ToolCall) string {
	tool, ok := a.tools[call.Function.Name]
	if !ok {
		a.logger.Warn("unknown tool requested", "session", sessionID, "tool", call.Function.Name)
		return fmt.Sprintf("unknown tool: %s", call.Function.Name)
	}

	a.logger.Info("running tool", "session", sessionID, "tool", call.Function.Name)

	result, err := tool.Run(ctx, call.Function.Arguments)
	if err != nil {
		a.logger.Error("tool failed", "session", sessionID, "tool", call.Function.Name, "error", err)
		return fmt.Sprintf("tool error: %v", err)
	}

	return result
}

func (a *Assistant) getSession(key string) *session {
	a.mu.Lock()
	defer a.mu.Unlock()

	if sess, ok := a.sessions[key]; ok {
		return sess
	}

	sess := &session{id: uuid.NewString()}
	a.sessions[key] = sess
	return sess
}
