package garden

// Scoring constants. Deltas are unclamped here; clamping happens when
// the log list is folded into the cumulative score.
const (
	initialScore = 50
	minScore     = 0
	maxScore     = 100

	quickDelta = 2
	deepDelta  = 15

	sweetSpotDelta  = 10 // contacted with <=50% of the window left
	acceptableDelta = 5  // 50% < left <= 80%
	tooEarlyDelta   = -2 // contacted with >80% left
	overduePerDay   = -5
	overdueFloor    = -30
)

// ScoreDelta maps one contact event to a point change.
//
// QUICK and DEEP are flat bonuses independent of timing. REGULAR is
// judged on timing: overdue contacts are penalized linearly per day
// (floored at overdueFloor), too-early contacts cost a little, and the
// sweet spot (late in the window but not overdue) pays the most.
func ScoreDelta(t ContactType, percentageRemaining float64, daysOverdue int) int {
	switch t {
	case Quick:
		return quickDelta
	case Deep:
		return deepDelta
	}

	if daysOverdue > 0 {
		d := overduePerDay * daysOverdue
		if d < overdueFloor {
			d = overdueFloor
		}
		return d
	}
	switch {
	case percentageRemaining > 80:
		return tooEarlyDelta
	case percentageRemaining <= 50:
		return sweetSpotDelta
	default:
		return acceptableDelta
	}
}

// RecomputeScore derives the cumulative score from the full log list.
// Always a full fold, never an incremental adjustment; that keeps the
// score consistent with the logs after arbitrary deletions.
func RecomputeScore(logs []InteractionLog) int {
	score := initialScore
	for _, l := range logs {
		score += l.ScoreDelta
	}
	return clampScore(score)
}

func clampScore(s int) int {
	if s < minScore {
		return minScore
	}
	if s > maxScore {
		return maxScore
	}
	return s
}
