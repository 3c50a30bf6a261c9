package github

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/dates"
)

// Event kinds with dedicated render rules. Names are fixed as returned
// by the feed; anything else renders the base fields only.
const (
	kindPullRequest  = "PullRequestEvent"
	kindPush         = "PushEvent"
	kindDelete       = "DeleteEvent"
	kindIssueComment = "IssueCommentEvent"
	kindIssues       = "IssuesEvent"
	kindCreate       = "CreateEvent"
)

type pullRequestDetails struct {
	HTMLURL string `json:"html_url"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

type issueDetails struct {
	HTMLURL string `json:"html_url"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

type commentDetails struct {
	Body string `json:"body"`
}

type commit struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

type eventPayload struct {
	Action      string              `json:"action"`
	PullRequest *pullRequestDetails `json:"pull_request"`
	Issue       *issueDetails       `json:"issue"`
	Comment     *commentDetails     `json:"comment"`
	Commits     *[]commit           `json:"commits"`
	RefType     string              `json:"ref_type"`
	Ref         *string             `json:"ref"`
}

// RenderEvents filters events to the target UTC day and renders each
// retained event as a fixed-format text block. Blocks are joined by a
// blank line; no matching events yields an empty string, not an error.
func RenderEvents(events []Event, day time.Time) (string, error) {
	var blocks []string
	for _, event := range events {
		if !dates.SameUTCDate(event.CreatedAt, day) {
			continue
		}

		block, err := renderEvent(event)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n"), nil
}

func renderEvent(event Event) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Event Type: %s\n", event.Type)
	fmt.Fprintf(&b, "Repository: %s\n", event.Repo.Name)
	fmt.Fprintf(&b, "Date: %s", event.CreatedAt.UTC().Format("2006-01-02 15:04:05"))

	var payload eventPayload
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return "", fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
		}
	}

	switch event.Type {
	case kindPullRequest:
		pr := payload.PullRequest
		if pr == nil {
			return "", &MalformedEventError{Type: event.Type, Field: "pull_request"}
		}
		fmt.Fprintf(&b, "\nAction: %s", payload.Action)
		fmt.Fprintf(&b, "\nPull Request URL: %s", pr.HTMLURL)
		fmt.Fprintf(&b, "\nTitle: %s", pr.Title)
		fmt.Fprintf(&b, "\nBody: %s", pr.Body)

	case kindPush:
		if payload.Commits == nil {
			return "", &MalformedEventError{Type: event.Type, Field: "commits"}
		}
		lines := make([]string, 0, len(*payload.Commits))
		for _, c := range *payload.Commits {
			lines = append(lines, fmt.Sprintf("  - Message: %s\n    URL: %s", c.Message, c.URL))
		}
		fmt.Fprintf(&b, "\nCommits:\n%s", strings.Join(lines, "\n"))

	case kindDelete:
		if payload.RefType == "" {
			return "", &MalformedEventError{Type: event.Type, Field: "ref_type"}
		}
		if payload.Ref == nil {
			return "", &MalformedEventError{Type: event.Type, Field: "ref"}
		}
		fmt.Fprintf(&b, "\nRef Type: %s", payload.RefType)
		fmt.Fprintf(&b, "\nRef: %s", *payload.Ref)

	case kindIssueComment:
		if payload.Issue == nil {
			return "", &MalformedEventError{Type: event.Type, Field: "issue"}
		}
		if payload.Comment == nil {
			return "", &MalformedEventError{Type: event.Type, Field: "comment"}
		}
		fmt.Fprintf(&b, "\nAction: %s", payload.Action)
		fmt.Fprintf(&b, "\nIssue URL: %s", payload.Issue.HTMLURL)
		fmt.Fprintf(&b, "\nComment: %s", payload.Comment.Body)

	case kindIssues:
		if payload.Issue == nil {
			return "", &MalformedEventError{Type: event.Type, Field: "issue"}
		}
		fmt.Fprintf(&b, "\nAction: %s", payload.Action)
		fmt.Fprintf(&b, "\nIssue URL: %s", payload.Issue.HTMLURL)
		fmt.Fprintf(&b, "\nTitle: %s", payload.Issue.Title)
		fmt.Fprintf(&b, "\nBody: %s", payload.Issue.Body)

	case kindCreate:
		if payload.RefType == "" {
			return "", &MalformedEventError{Type: event.Type, Field: "ref_type"}
		}
		fmt.Fprintf(&b, "\nRef Type: %s", payload.RefType)
		fmt.Fprintf(&b, "\nRef: %s", derefOr(payload.Ref, "N/A"))
	}

	return b.String(), nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
