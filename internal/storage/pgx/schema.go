package pgx

import "context"

const schema = `
	CREATE TABLE IF NOT EXISTS dailypulse (
		id             BIGSERIAL PRIMARY KEY,
		username       TEXT NOT NULL,
		accomplishment TEXT NOT NULL DEFAULT '',
		todo           TEXT NOT NULL DEFAULT '',
		blocker        TEXT NOT NULL DEFAULT '',
		date           DATE NOT NULL
	);

	CREATE INDEX IF NOT EXISTS dailypulse_username_date_idx
		ON dailypulse (username, date DESC);
`

// Migrate creates the dailypulse table if it does not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}
