package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lazypower/tend/internal/garden"
)

// CreateMeeting inserts a meeting request.
func (db *DB) CreateMeeting(m garden.MeetingRequest) error {
	_, err := db.Exec(`
		INSERT INTO meetings (id, friend_id, title, status, date_added, verified)
		VALUES (?, NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?)
	`, m.ID, m.FriendID, m.Title, string(m.Status), m.DateAdded.UnixMilli(), boolInt(m.Verified))
	if err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}
	db.bumpRevision()
	return nil
}

// UpdateMeeting sets a meeting's status and verified flag.
func (db *DB) UpdateMeeting(id string, status garden.MeetingStatus, verified bool) error {
	result, err := db.Exec(`
		UPDATE meetings SET status = ?, verified = ? WHERE id = ?
	`, string(status), boolInt(verified), id)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no meeting found for %s", id)
	}
	db.bumpRevision()
	return nil
}

// ListMeetings returns all meeting requests, newest first.
func (db *DB) ListMeetings() ([]garden.MeetingRequest, error) {
	rows, err := db.Query(`
		SELECT id, friend_id, title, status, date_added, verified
		FROM meetings ORDER BY date_added DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	meetings := []garden.MeetingRequest{}
	for rows.Next() {
		var m garden.MeetingRequest
		var friendID, title sql.NullString
		var status string
		var added int64
		var verified int
		if err := rows.Scan(&m.ID, &friendID, &title, &status, &added, &verified); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		m.FriendID = friendID.String
		m.Title = title.String
		m.Status = garden.MeetingStatus(status)
		m.DateAdded = time.UnixMilli(added)
		m.Verified = verified != 0
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

// DeleteMeeting removes a meeting request.
func (db *DB) DeleteMeeting(id string) error {
	result, err := db.Exec("DELETE FROM meetings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no meeting found for %s", id)
	}
	db.bumpRevision()
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
