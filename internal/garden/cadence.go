package garden

import (
	"fmt"
	"math"
)

// Two independent detectors watch for the "contacting too early"
// signal. Automatic shortening fires inside a REGULAR action and looks
// exactly one log back; smart nudges run over a rolling window and only
// recommend. They are deliberately not merged into one mechanism.

const (
	earlyThreshold = 80 // percentageRemaining above this counts as early

	nudgeWindow    = 5
	nudgeMinLogs   = 3
	nudgeFraction  = 0.6
	nudgeShortenBy = 0.6
	nudgeExtendBy  = 1.5
	nudgeMinDays   = 2
	nudgeMaxDays   = 90
)

// shortenCadence applies the automatic-halving rule for a REGULAR
// action. It inspects the friend as it was before the new log is
// appended: the current freshness must be early AND the single most
// recent prior log must also have been early. Halving floors at 1 day.
func shortenCadence(f Friend, percentageLeft float64, action ContactType) (int, bool) {
	if action != Regular {
		return f.FrequencyDays, false
	}
	if percentageLeft <= earlyThreshold {
		return f.FrequencyDays, false
	}
	if len(f.Logs) == 0 || f.Logs[0].PercentageRemaining <= earlyThreshold {
		return f.FrequencyDays, false
	}

	halved := f.FrequencyDays / 2
	if halved < 1 {
		halved = 1
	}
	return halved, true
}

// NudgeDirection says which way a smart nudge points.
type NudgeDirection string

const (
	NudgeShorten NudgeDirection = "shorten"
	NudgeExtend  NudgeDirection = "extend"
)

// Nudge is an advisory cadence suggestion. Nothing in the engine
// applies it; the caller decides.
type Nudge struct {
	FriendID      string         `json:"friendId"`
	FriendName    string         `json:"friendName"`
	Direction     NudgeDirection `json:"direction"`
	CurrentDays   int            `json:"currentDays"`
	SuggestedDays int            `json:"suggestedDays"`
	Reason        string         `json:"reason"`
}

// SmartNudges examines the 5 most recent log entries (minimum 3) and
// suggests a cadence change when at least 60% of them show the same
// timing pattern. A friend can in principle yield both directions.
func SmartNudges(f Friend) []Nudge {
	n := len(f.Logs)
	if n > nudgeWindow {
		n = nudgeWindow
	}
	if n < nudgeMinLogs {
		return nil
	}
	window := f.Logs[:n]

	early, overdue := 0, 0
	for _, l := range window {
		if l.PercentageRemaining > earlyThreshold {
			early++
		}
		if l.PercentageRemaining < 0 {
			overdue++
		}
	}

	var nudges []Nudge

	if float64(early)/float64(n) >= nudgeFraction && f.FrequencyDays > nudgeMinDays {
		suggested := int(math.Round(float64(f.FrequencyDays) * nudgeShortenBy))
		if suggested < nudgeMinDays {
			suggested = nudgeMinDays
		}
		if suggested != f.FrequencyDays {
			nudges = append(nudges, Nudge{
				FriendID:      f.ID,
				FriendName:    f.Name,
				Direction:     NudgeShorten,
				CurrentDays:   f.FrequencyDays,
				SuggestedDays: suggested,
				Reason:        fmt.Sprintf("%d of the last %d contacts came well before the goal", early, n),
			})
		}
	}

	if float64(overdue)/float64(n) >= nudgeFraction && f.FrequencyDays < nudgeMaxDays {
		suggested := int(math.Round(float64(f.FrequencyDays) * nudgeExtendBy))
		if suggested > nudgeMaxDays {
			suggested = nudgeMaxDays
		}
		if suggested != f.FrequencyDays {
			nudges = append(nudges, Nudge{
				FriendID:      f.ID,
				FriendName:    f.Name,
				Direction:     NudgeExtend,
				CurrentDays:   f.FrequencyDays,
				SuggestedDays: suggested,
				Reason:        fmt.Sprintf("%d of the last %d contacts were overdue", overdue, n),
			})
		}
	}

	return nudges
}

// AllNudges runs SmartNudges over the whole collection.
func AllNudges(friends []Friend) []Nudge {
	var out []Nudge
	for _, f := range friends {
		out = append(out, SmartNudges(f)...)
	}
	return out
}
