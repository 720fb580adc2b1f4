// Package garden is the relationship scoring and cadence engine.
//
// Everything in this package is pure: functions take a snapshot of a
// Friend (or the full collection), an explicit "now", and return new
// values. Nothing here touches the store, the clock, or any I/O;
// persistence and presentation live in internal/store and
// internal/server.
package garden

import "time"

// ContactType classifies a logged interaction.
type ContactType string

const (
	Regular ContactType = "REGULAR"
	Deep    ContactType = "DEEP"
	Quick   ContactType = "QUICK"
)

// Friend is one tracked relationship. The JSON field names are the
// persistence contract; test fixtures and the web UI both depend on
// them.
type Friend struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`

	FrequencyDays int       `json:"frequencyDays"`
	LastContacted time.Time `json:"lastContacted"`

	IndividualScore int `json:"individualScore"`

	QuickTouchesAvailable     int `json:"quickTouchesAvailable"`
	CyclesSinceLastQuickTouch int `json:"cyclesSinceLastQuickTouch"`

	LastDeepConnection *time.Time `json:"lastDeepConnection,omitempty"`

	// Newest-first by insertion. Not necessarily newest-first by
	// timestamp once logs have been removed.
	Logs []InteractionLog `json:"logs"`

	// Descriptive fields the engine passes through untouched.
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Photo    string `json:"photo,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Birthday string `json:"birthday,omitempty"`
}

// InteractionLog records one contact event and the score it produced.
type InteractionLog struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      ContactType `json:"type"`

	// DaysWaitGoal is the frequency in effect when the log was written
	// (after any automatic cadence shortening on that action).
	DaysWaitGoal int `json:"daysWaitGoal"`

	// PercentageRemaining is the freshness at the moment of contact.
	// Unclamped: negative when overdue, can exceed 100.
	PercentageRemaining float64 `json:"percentageRemaining"`

	ScoreDelta int `json:"scoreDelta"`

	Channel string `json:"channel,omitempty"`
}

// MeetingStatus is the lifecycle of a meeting request.
type MeetingStatus string

const (
	MeetingRequested MeetingStatus = "REQUESTED"
	MeetingScheduled MeetingStatus = "SCHEDULED"
	MeetingComplete  MeetingStatus = "COMPLETE"
)

// MeetingRequest feeds the garden score; the engine only reads it.
type MeetingRequest struct {
	ID        string        `json:"id"`
	FriendID  string        `json:"friendId,omitempty"`
	Title     string        `json:"title,omitempty"`
	Status    MeetingStatus `json:"status"`
	DateAdded time.Time     `json:"dateAdded"`
	Verified  bool          `json:"verified,omitempty"`
}

// NewFriend returns a Friend with creation defaults: score 50, no
// tokens, empty history, last contacted now.
func NewFriend(id, name string, frequencyDays int, now time.Time) Friend {
	if frequencyDays < 1 {
		frequencyDays = 1
	}
	return Friend{
		ID:              id,
		Name:            name,
		FrequencyDays:   frequencyDays,
		LastContacted:   now,
		IndividualScore: initialScore,
		Logs:            []InteractionLog{},
	}
}
