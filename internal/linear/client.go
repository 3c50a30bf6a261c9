package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUserNotFound is returned when the directory lookup matches no user.
// It is distinct from a transport failure so callers can tell "no such
// user" apart from "the API was unreachable".
var ErrUserNotFound = errors.New("no user found with the provided email")

// TransportError is a non-200 response from the Linear API.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("linear API error (status %d): %s", e.Status, e.Body)
}

// QueryError is a GraphQL-level error returned inside a 200 response.
type QueryError struct {
	Messages []string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("linear query failed: %v", e.Messages)
}

const userQuery = `
query GetUserByEmail($email: String!) {
    users(filter: {email: {eq: $email}}) {
        nodes {
            id
            name
            email
        }
    }
}`

const activitiesQuery = `
query UserActivities($userId: ID!) {
    issues(filter: {assignee: {id: {eq: $userId}}}) {
        nodes {
            id
            title
            updatedAt
            createdAt
            state {
                name
            }
            comments {
                nodes {
                    body
                    createdAt
                }
            }
        }
    }
}`

type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey, endpoint string) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Comment is a single comment on an issue, in tracker order.
type Comment struct {
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type State struct {
	Name string `json:"name"`
}

// Issue is an immutable snapshot of a tracker issue with its comments.
type Issue struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	State     State     `json:"state"`
	Comments  []Comment `json:"comments"`
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type userNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type issueNode struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	State     State     `json:"state"`
	Comments  struct {
		Nodes []Comment `json:"nodes"`
	} `json:"comments"`
}

type queryResponse struct {
	Data struct {
		Users struct {
			Nodes []userNode `json:"nodes"`
		} `json:"users"`
		Issues struct {
			Nodes []issueNode `json:"nodes"`
		} `json:"issues"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// UserIDByEmail resolves the tracker user ID for a contact email.
// At most one match is expected; the first is returned.
func (c *Client) UserIDByEmail(ctx context.Context, email string) (string, error) {
	resp, err := c.query(ctx, userQuery, map[string]any{"email": email})
	if err != nil {
		return "", fmt.Errorf("failed to fetch user ID: %w", err)
	}

	users := resp.Data.Users.Nodes
	if len(users) == 0 {
		return "", ErrUserNotFound
	}

	return users[0].ID, nil
}

// AssignedIssues fetches all issues assigned to the user, with nested
// comments, in the order the tracker returns them. An empty result is
// not an error.
func (c *Client) AssignedIssues(ctx context.Context, userID string) ([]Issue, error) {
	resp, err := c.query(ctx, activitiesQuery, map[string]any{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user activities: %w", err)
	}

	issues := make([]Issue, 0, len(resp.Data.Issues.Nodes))
	for _, n := range resp.Data.Issues.Nodes {
		issues = append(issues, Issue{
			ID:        n.ID,
			Title:     n.Title,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
			State:     n.State,
			Comments:  n.Comments.Nodes,
		})
	}

	return issues, nil
}

func (c *Client) query(ctx context.Context, query string, variables map[string]any) (*queryResponse, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var result queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Errors) > 0 {
		qe := &QueryError{}
		for _, e := range result.Errors {
			qe.Messages = append(qe.Messages, e.Message)
		}
		return nil, qe
	}

	return &result, nil
}
