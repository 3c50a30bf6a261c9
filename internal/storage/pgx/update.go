package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/standup"
)

// LastUpdate returns the most recent standup row for the user.
func (s *Storage) LastUpdate(ctx context.Context, username string) (*standup.Update, error) {
	const query = `
		SELECT id, username, accomplishment, todo, blocker, date
		  FROM dailypulse
		 WHERE username = $1
		 ORDER BY date DESC
		 LIMIT 1;
	`

	var u standup.Update
	err := s.pool.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.Accomplishment,
		&u.Todo,
		&u.Blocker,
		&u.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, standup.ErrNoUpdates
		}
		return nil, err
	}

	return &u, nil
}

// InsertUpdate stores a finalized standup update.
func (s *Storage) InsertUpdate(ctx context.Context, u standup.Update) error {
	const query = `
		INSERT INTO dailypulse (username, accomplishment, todo, blocker, date)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := s.pool.Exec(ctx, query,
		u.Username,
		u.Accomplishment,
		u.Todo,
		u.Blocker,
		u.Date,
	)
	return err
}

// ListUpdates returns updates for a user within [from, to], oldest first.
// An empty username matches all users.
func (s *Storage) ListUpdates(ctx context.Context, username string, from, to time.Time) ([]standup.Update, error) {
	const query = `
		SELECT id, username, accomplishment, todo, blocker, date
		  FROM dailypulse
		 WHERE ($1 = '' OR username = $1)
		   AND date >= $2
		   AND date <= $3
		 ORDER BY date ASC, id ASC;
	`

	rows, err := s.pool.Query(ctx, query, username, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := make([]standup.Update, 0)
	for rows.Next() {
		var u standup.Update
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Accomplishment,
			&u.Todo,
			&u.Blocker,
			&u.Date,
		); err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return updates, nil
}
