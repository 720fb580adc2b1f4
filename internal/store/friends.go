package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lazypower/tend/internal/garden"
)

// The engine hands us immutable Friend snapshots; the store's job is to
// replace the stored record wholesale (last write wins, per the
// optimistic-concurrency model). Logs are replaced together with their
// friend so the score and the history can never drift apart on disk.

// CreateFriend inserts a new friend with its logs (usually empty).
func (db *DB) CreateFriend(f garden.Friend) error {
	now := time.Now().UnixMilli()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin create friend: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO friends (id, name, category, frequency_days, last_contacted,
			score, quick_touches, cycles, last_deep,
			phone, email, photo, notes, birthday, created_at, updated_at)
		VALUES (?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?, ?)
	`, f.ID, f.Name, f.Category, f.FrequencyDays, f.LastContacted.UnixMilli(),
		f.IndividualScore, f.QuickTouchesAvailable, f.CyclesSinceLastQuickTouch, optionalMilli(f.LastDeepConnection),
		f.Phone, f.Email, f.Photo, f.Notes, f.Birthday, now, now)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert friend: %w", err)
	}

	if err := insertLogs(tx, f); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create friend: %w", err)
	}
	db.bumpRevision()
	return nil
}

// SaveFriend replaces the stored record (and its logs) with the given
// snapshot.
func (db *DB) SaveFriend(f garden.Friend) error {
	now := time.Now().UnixMilli()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save friend: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE friends SET name = ?, category = NULLIF(?, ''), frequency_days = ?, last_contacted = ?,
			score = ?, quick_touches = ?, cycles = ?, last_deep = ?,
			phone = NULLIF(?, ''), email = NULLIF(?, ''), photo = NULLIF(?, ''),
			notes = NULLIF(?, ''), birthday = NULLIF(?, ''), updated_at = ?
		WHERE id = ?
	`, f.Name, f.Category, f.FrequencyDays, f.LastContacted.UnixMilli(),
		f.IndividualScore, f.QuickTouchesAvailable, f.CyclesSinceLastQuickTouch, optionalMilli(f.LastDeepConnection),
		f.Phone, f.Email, f.Photo, f.Notes, f.Birthday, now, f.ID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("update friend: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		tx.Rollback()
		return fmt.Errorf("no friend found for %s", f.ID)
	}

	if _, err := tx.Exec("DELETE FROM interaction_logs WHERE friend_id = ?", f.ID); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear logs: %w", err)
	}
	if err := insertLogs(tx, f); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save friend: %w", err)
	}
	db.bumpRevision()
	return nil
}

func insertLogs(tx *sql.Tx, f garden.Friend) error {
	for i, l := range f.Logs {
		_, err := tx.Exec(`
			INSERT INTO interaction_logs (id, friend_id, position, timestamp, type,
				days_wait_goal, percentage_remaining, score_delta, channel)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''))
		`, l.ID, f.ID, i, l.Timestamp.UnixMilli(), string(l.Type),
			l.DaysWaitGoal, l.PercentageRemaining, l.ScoreDelta, l.Channel)
		if err != nil {
			return fmt.Errorf("insert log %s: %w", l.ID, err)
		}
	}
	return nil
}

// GetFriend returns a friend with its full log history, or nil if not
// found.
func (db *DB) GetFriend(id string) (*garden.Friend, error) {
	row := db.QueryRow(`
		SELECT id, name, category, frequency_days, last_contacted,
			score, quick_touches, cycles, last_deep,
			phone, email, photo, notes, birthday
		FROM friends WHERE id = ?
	`, id)
	return db.scanFriend(row)
}

// GetFriendByName returns the first friend with the given name, or nil.
func (db *DB) GetFriendByName(name string) (*garden.Friend, error) {
	row := db.QueryRow(`
		SELECT id, name, category, frequency_days, last_contacted,
			score, quick_touches, cycles, last_deep,
			phone, email, photo, notes, birthday
		FROM friends WHERE name = ? ORDER BY created_at LIMIT 1
	`, name)
	return db.scanFriend(row)
}

func (db *DB) scanFriend(row *sql.Row) (*garden.Friend, error) {
	var f garden.Friend
	var lastContacted int64
	var lastDeep sql.NullInt64
	var category, phone, email, photo, notes, birthday sql.NullString

	err := row.Scan(&f.ID, &f.Name, &category, &f.FrequencyDays, &lastContacted,
		&f.IndividualScore, &f.QuickTouchesAvailable, &f.CyclesSinceLastQuickTouch, &lastDeep,
		&phone, &email, &photo, &notes, &birthday)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get friend: %w", err)
	}

	f.LastContacted = time.UnixMilli(lastContacted)
	f.Category = category.String
	f.Phone = phone.String
	f.Email = email.String
	f.Photo = photo.String
	f.Notes = notes.String
	f.Birthday = birthday.String
	if lastDeep.Valid {
		t := time.UnixMilli(lastDeep.Int64)
		f.LastDeepConnection = &t
	}

	logs, err := db.friendLogs(f.ID)
	if err != nil {
		return nil, err
	}
	f.Logs = logs
	return &f, nil
}

func (db *DB) friendLogs(friendID string) ([]garden.InteractionLog, error) {
	rows, err := db.Query(`
		SELECT id, timestamp, type, days_wait_goal, percentage_remaining, score_delta, channel
		FROM interaction_logs WHERE friend_id = ? ORDER BY position
	`, friendID)
	if err != nil {
		return nil, fmt.Errorf("get logs: %w", err)
	}
	defer rows.Close()

	logs := []garden.InteractionLog{}
	for rows.Next() {
		var l garden.InteractionLog
		var ts int64
		var typ string
		var channel sql.NullString
		if err := rows.Scan(&l.ID, &ts, &typ, &l.DaysWaitGoal, &l.PercentageRemaining, &l.ScoreDelta, &channel); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		l.Timestamp = time.UnixMilli(ts)
		l.Type = garden.ContactType(typ)
		l.Channel = channel.String
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ListFriends returns all friends with their logs, ordered by name.
func (db *DB) ListFriends() ([]garden.Friend, error) {
	rows, err := db.Query("SELECT id FROM friends ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan friend id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	friends := []garden.Friend{}
	for _, id := range ids {
		f, err := db.GetFriend(id)
		if err != nil {
			return nil, err
		}
		if f != nil {
			friends = append(friends, *f)
		}
	}
	return friends, nil
}

// DeleteFriend removes a friend; logs cascade.
func (db *DB) DeleteFriend(id string) error {
	result, err := db.Exec("DELETE FROM friends WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete friend: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no friend found for %s", id)
	}
	db.bumpRevision()
	return nil
}

func optionalMilli(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}
