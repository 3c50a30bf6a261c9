package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Responder produces the assistant's reply for one incoming message.
type Responder interface {
	Respond(ctx context.Context, key, text string) (string, error)
}

// Messenger posts replies back to the chat platform.
type Messenger interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// Verifier checks webhook authenticity before the payload is trusted.
type Verifier func(timestamp, signature string, body []byte) error

// replyTimeout bounds the background agent turn kicked off per event.
// Slack expects the webhook itself to return well before this.
const replyTimeout = 3 * time.Minute

type Handler struct {
	responder Responder
	messenger Messenger
	verify    Verifier
	welcome   string
	logger    *slog.Logger
}

func NewHandler(responder Responder, messenger Messenger, verify Verifier, welcome string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		responder: responder,
		messenger: messenger,
		verify:    verify,
		welcome:   welcome,
		logger:    logger,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Post("/slack/events", h.handleEvents)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return router
}

type eventEnvelope struct {
	Type      string     `json:"type"`
	Challenge string     `json:"challenge"`
	Event     innerEvent `json:"event"`
}

type innerEvent struct {
	Type        string `json:"type"`
	ChannelType string `json:"channel_type"`
	Channel     string `json:"channel"`
	User        string `json:"user"`
	Text        string `json:"text"`
	BotID       string `json:"bot_id"`
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	signature := r.Header.Get("X-Slack-Signature")
	if err := h.verify(timestamp, signature, body); err != nil {
		h.logger.Warn("rejected webhook request", "error", err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	switch envelope.Type {
	case "url_verification":
		writeJSON(w, http.StatusOK, map[string]string{"challenge": envelope.Challenge})

	case "event_callback":
		h.dispatch(envelope.Event)
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusOK)
	}
}

// dispatch acknowledges the webhook immediately and answers in the
// background; Slack retries events that are not ACKed within seconds.
func (h *Handler) dispatch(event innerEvent) {
	// Ignore the bot's own messages to avoid reply loops.
	if event.BotID != "" {
		return
	}

	switch {
	case event.Type == "app_mention":
		go h.post(event.Channel, h.welcome)

	case event.Type == "message" && event.ChannelType == "im":
		go h.reply(event)
	}
}

func (h *Handler) reply(event innerEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	response, err := h.responder.Respond(ctx, event.Channel, event.Text)
	if err != nil {
		h.logger.Error("assistant failed", "channel", event.Channel, "error", err)
		response = "Sorry, I ran into a problem handling that. Please try again."
	}
	if response == "" {
		response = "Sorry, I didn't understand that. Can you please rephrase?"
	}

	if err := h.messenger.PostMessage(ctx, event.Channel, response); err != nil {
		h.logger.Error("failed to post reply", "channel", event.Channel, "error", err)
	}
}

func (h *Handler) post(channel, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.messenger.PostMessage(ctx, channel, text); err != nil {
		h.logger.Error("failed to post message", "channel", channel, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(v)
}
