package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/dates"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/standup"
)

// Tool is a callable capability exposed to the model.
type Tool interface {
	Name() string
	Description() string
	Parameters() json.RawMessage
	Run(ctx context.Context, args string) (string, error)
}

// Reporter produces the combined activity digest for a user and day.
type Reporter interface {
	Combined(ctx context.Context, email, username string, day time.Time) (string, error)
}

// UpdateStore reads and writes dailypulse rows.
type UpdateStore interface {
	LastUpdate(ctx context.Context, username string) (*standup.Update, error)
	InsertUpdate(ctx context.Context, u standup.Update) error
}

// ActivityTool wraps the aggregator as the github_linear_update tool.
// It always reports on yesterday's UTC calendar day.
type ActivityTool struct {
	Reporter Reporter
	Email    string
	Username string
	Now      func() time.Time
}

func (t *ActivityTool) Name() string { return "github_linear_update" }

func (t *ActivityTool) Description() string {
	return "Fetches GitHub and Linear activity for the configured user for yesterday's date"
}

func (t *ActivityTool) Parameters() json.RawMessage { return nil }

func (t *ActivityTool) Run(ctx context.Context, _ string) (string, error) {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	return t.Reporter.Combined(ctx, t.Email, t.Username, dates.Yesterday(now()))
}

// MemoryTool fetches the most recent stored update for the user.
type MemoryTool struct {
	Store    UpdateStore
	Username string
}

func (t *MemoryTool) Name() string { return "get_update_from_memory" }

func (t *MemoryTool) Description() string {
	return "Fetches the most recent standup update stored for the configured user"
}

func (t *MemoryTool) Parameters() json.RawMessage { return nil }

func (t *MemoryTool) Run(ctx context.Context, _ string) (string, error) {
	update, err := t.Store.LastUpdate(ctx, t.Username)
	if err != nil {
		if errors.Is(err, standup.ErrNoUpdates) {
			return fmt.Sprintf("No records found for user: %s", t.Username), nil
		}
		return "", err
	}

	return update.Render(), nil
}

// SubmitTool inserts the finalized draft into the dailypulse table. The
// model supplies the structured fields; no SQL is generated.
type SubmitTool struct {
	Store    UpdateStore
	Username string
	Now      func() time.Time
}

type submitArgs struct {
	Accomplishment string `json:"accomplishment"`
	Todo           string `json:"todo"`
	Blocker        string `json:"blocker"`
	Date           string `json:"date"`
}

func (t *SubmitTool) Name() string { return "submit_update" }

func (t *SubmitTool) Description() string {
	return "Stores the finalized standup update (accomplishment, todo, blocker, optional YYYY-MM-DD date)"
}

func (t *SubmitTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"accomplishment": {"type": "string", "description": "Tasks completed since the last standup"},
			"todo": {"type": "string", "description": "Planned tasks for the current day"},
			"blocker": {"type": "string", "description": "Current challenges or blockers"},
			"date": {"type": "string", "description": "Standup date in YYYY-MM-DD format, defaults to today"}
		},
		"required": ["accomplishment", "todo", "blocker"]
	}`)
}

func (t *SubmitTool) Run(ctx context.Context, args string) (string, error) {
	var parsed submitArgs
	if err := json.Unmarshal([]byte(args), &parsed); err != nil {
		return "", fmt.Errorf("invalid submit_update arguments: %w", err)
	}

	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	day := now().UTC().Truncate(24 * time.Hour)
	if parsed.Date != "" {
		parsedDay, err := dates.ParseDay(parsed.Date)
		if err != nil {
			return "", fmt.Errorf("invalid date %q: %w", parsed.Date, err)
		}
		day = parsedDay
	}

	err := t.Store.InsertUpdate(ctx, standup.Update{
		Username:       t.Username,
		Accomplishment: parsed.Accomplishment,
		Todo:           parsed.Todo,
		Blocker:        parsed.Blocker,
		Date:           day,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store update: %w", err)
	}

	return fmt.Sprintf("Update for %s on %s stored successfully.", t.Username, dates.FormatDay(day)), nil
}
