package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "friends: relationship records",
		SQL: `
CREATE TABLE friends (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    category        TEXT,

    -- Contact policy
    frequency_days  INTEGER NOT NULL CHECK (frequency_days >= 1),
    last_contacted  INTEGER NOT NULL,

    -- Score + token ledger
    score           INTEGER NOT NULL DEFAULT 50,
    quick_touches   INTEGER NOT NULL DEFAULT 0 CHECK (quick_touches >= 0),
    cycles          INTEGER NOT NULL DEFAULT 0,
    last_deep       INTEGER,

    -- Descriptive pass-through fields
    phone           TEXT,
    email           TEXT,
    photo           TEXT,
    notes           TEXT,
    birthday        TEXT,

    created_at      INTEGER NOT NULL,
    updated_at      INTEGER NOT NULL
);

CREATE INDEX idx_friends_name     ON friends(name);
CREATE INDEX idx_friends_category ON friends(category);
`,
	},
	{
		Version:     2,
		Description: "interaction_logs: contact history per friend",
		SQL: `
CREATE TABLE interaction_logs (
    id         TEXT PRIMARY KEY,
    friend_id  TEXT NOT NULL,
    position   INTEGER NOT NULL,
    timestamp  INTEGER NOT NULL,
    type       TEXT NOT NULL CHECK (type IN ('REGULAR', 'DEEP', 'QUICK')),
    days_wait_goal        INTEGER NOT NULL,
    percentage_remaining  REAL NOT NULL,
    score_delta           INTEGER NOT NULL,
    channel    TEXT,

    FOREIGN KEY (friend_id) REFERENCES friends(id) ON DELETE CASCADE
);

CREATE INDEX idx_logs_friend ON interaction_logs(friend_id, position);
`,
	},
	{
		Version:     3,
		Description: "meetings: meeting requests feeding the garden score",
		SQL: `
CREATE TABLE meetings (
    id          TEXT PRIMARY KEY,
    friend_id   TEXT,
    title       TEXT,
    status      TEXT NOT NULL CHECK (status IN ('REQUESTED', 'SCHEDULED', 'COMPLETE')),
    date_added  INTEGER NOT NULL,
    verified    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX idx_meetings_status ON meetings(status);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
