// Package standup holds the domain model for daily standup updates as
// stored in the dailypulse table.
package standup

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoUpdates is returned when a user has no stored updates.
var ErrNoUpdates = errors.New("no updates found")

// Update is one daily standup record.
type Update struct {
	ID             int64
	Username       string
	Accomplishment string
	Todo           string
	Blocker        string
	Date           time.Time
}

// Render serializes the update as key-value text, the form used when
// replaying a previous update back to the user.
func (u Update) Render() string {
	return fmt.Sprintf(
		"Username: %s\nDate: %s\nAccomplishment: %s\nTodo: %s\nBlocker: %s",
		u.Username,
		u.Date.Format("2006-01-02"),
		u.Accomplishment,
		u.Todo,
		u.Blocker,
	)
}
