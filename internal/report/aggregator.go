package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/dates"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/linear"
)

// FailedIdentityMessage is returned in place of a report when the tracker
// user lookup fails. Callers receive this fixed string rather than an
// error; the underlying cause is logged.
const FailedIdentityMessage = "Failed to retrieve Linear user ID."

// TrackerSource resolves identities and lists assigned issues.
type TrackerSource interface {
	UserIDByEmail(ctx context.Context, email string) (string, error)
	AssignedIssues(ctx context.Context, userID string) ([]linear.Issue, error)
}

// EventSource produces the rendered event text for a username and day.
type EventSource interface {
	RenderedEvents(ctx context.Context, username string, day time.Time) (string, error)
}

// Aggregator combines tracker activity and source-hosting events into a
// single daily digest. One invocation is fully sequential and stateless:
// identity resolution, issue fetch, event fetch.
type Aggregator struct {
	tracker TrackerSource
	events  EventSource
	logger  *slog.Logger
}

func NewAggregator(tracker TrackerSource, events EventSource, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Aggregator{
		tracker: tracker,
		events:  events,
		logger:  logger,
	}
}

// FilterIssues keeps issues created on the target UTC calendar day,
// preserving tracker order.
func FilterIssues(issues []linear.Issue, day time.Time) []linear.Issue {
	filtered := make([]linear.Issue, 0, len(issues))
	for _, issue := range issues {
		if dates.SameUTCDate(issue.CreatedAt, day) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// Combined produces the daily activity digest for (email, username, day).
//
// Failure handling is deliberately asymmetric, matching the behavior the
// chatbot relies on: identity-resolution and tracker failures degrade
// softly (fixed message / empty issue list, cause logged), while an event
// feed failure is returned to the caller as an error.
func (a *Aggregator) Combined(ctx context.Context, email, username string, day time.Time) (string, error) {
	userID, err := a.tracker.UserIDByEmail(ctx, email)
	if err != nil {
		a.logger.Error("identity resolution failed", "email", email, "error", err)
		return FailedIdentityMessage, nil
	}

	issues, err := a.tracker.AssignedIssues(ctx, userID)
	if err != nil {
		a.logger.Error("tracker fetch failed", "user_id", userID, "error", err)
		issues = nil
	}
	issues = FilterIssues(issues, day)

	eventText, err := a.events.RenderedEvents(ctx, username, day)
	if err != nil {
		return "", fmt.Errorf("failed to fetch events for %s: %w", username, err)
	}

	serialized, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize issues: %w", err)
	}

	return fmt.Sprintf("Linear Activities:\n%s\n\nGitHub Events:\n%s", serialized, eventText), nil
}
