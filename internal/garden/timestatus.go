package garden

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// TimeStatus describes where a relationship sits inside its contact
// window at a given instant.
type TimeStatus struct {
	// PercentageLeft is the share of the contact window remaining.
	// Unclamped: 100 right after contact, 0 exactly at the goal,
	// negative once overdue.
	PercentageLeft float64 `json:"percentageLeft"`

	// DaysLeft is ceil(remaining / 1 day), signed. Negative means
	// overdue by that many days.
	DaysLeft int `json:"daysLeft"`

	IsOverdue bool      `json:"isOverdue"`
	GoalDate  time.Time `json:"goalDate"`
}

// ComputeTimeStatus computes freshness for a single relationship.
// frequencyDays must be >= 1 (store and engine both enforce this).
func ComputeTimeStatus(lastContacted time.Time, frequencyDays int, now time.Time) TimeStatus {
	goal := lastContacted.Add(time.Duration(frequencyDays) * day)
	total := goal.Sub(lastContacted)
	remaining := goal.Sub(now)

	return TimeStatus{
		PercentageLeft: float64(remaining) / float64(total) * 100,
		DaysLeft:       int(math.Ceil(float64(remaining) / float64(day))),
		IsOverdue:      remaining < 0,
		GoalDate:       goal,
	}
}

// DaysOverdue converts a signed DaysLeft into a non-negative overdue
// count for the scorer.
func (ts TimeStatus) DaysOverdue() int {
	if ts.DaysLeft >= 0 {
		return 0
	}
	return -ts.DaysLeft
}
