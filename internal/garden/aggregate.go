package garden

import (
	"math"
	"time"
)

// Garden score: one number for the whole collection.
const (
	verifiedMeetingBonus  = 5
	staleMeetingPenalty   = -2
	staleMeetingThreshold = 14 * day
)

// GardenScore combines every friend's score with meeting outcomes.
// An empty collection scores 0 regardless of meetings.
func GardenScore(friends []Friend, meetings []MeetingRequest, now time.Time) int {
	if len(friends) == 0 {
		return 0
	}

	var sum float64
	for _, f := range friends {
		sum += float64(f.IndividualScore)
	}
	avg := sum / float64(len(friends))

	var adjustment float64
	for _, m := range meetings {
		switch {
		case m.Status == MeetingComplete && m.Verified:
			adjustment += verifiedMeetingBonus
		case m.Status == MeetingRequested && now.Sub(m.DateAdded) > staleMeetingThreshold:
			adjustment += staleMeetingPenalty
		}
	}

	score := avg + adjustment/math.Max(1, float64(len(friends)))
	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}
	return int(math.Round(score))
}

// Cohort holds per-category stats for the collection view.
type Cohort struct {
	Count        int     `json:"count"`
	AverageScore float64 `json:"averageScore"`
	Overdue      int     `json:"overdue"`
}

// CohortStats groups friends by category label in a single pass.
// Friends without a category land under "uncategorized".
func CohortStats(friends []Friend, now time.Time) map[string]Cohort {
	stats := make(map[string]Cohort)
	for _, f := range friends {
		cat := f.Category
		if cat == "" {
			cat = "uncategorized"
		}
		c := stats[cat]
		c.Count++
		c.AverageScore += float64(f.IndividualScore)
		if ComputeTimeStatus(f.LastContacted, f.FrequencyDays, now).IsOverdue {
			c.Overdue++
		}
		stats[cat] = c
	}
	for cat, c := range stats {
		c.AverageScore /= float64(c.Count)
		stats[cat] = c
	}
	return stats
}
