package garden

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Timer effects of the non-reset actions. The quick-touch extension is
// a flat 30 minutes; the alternative 8%-of-window formula was rejected
// to keep the effect independent of cadence.
const (
	quickTouchExtension = 30 * time.Minute
	deepBonusExtension  = 12 * time.Hour
)

// Feedback summarizes one processed action for display.
type Feedback struct {
	Action           ContactType `json:"action"`
	ScoreDelta       int         `json:"scoreDelta"`
	NewScore         int         `json:"newScore"`
	CadenceShortened bool        `json:"cadenceShortened"`
	OldFrequencyDays int         `json:"oldFrequencyDays,omitempty"`
	NewFrequencyDays int         `json:"newFrequencyDays,omitempty"`
	TimerEffect      string      `json:"timerEffect"`
	TokenChange      int         `json:"tokenChange"`
	TokensAvailable  int         `json:"tokensAvailable"`
	Timestamp        time.Time   `json:"timestamp"`
}

// Result is the outcome of ProcessContact. Go struct values have no
// useful reference identity, so the "returned the same object" no-op
// contract is carried by Changed: when false, Friend is the untouched
// input and nothing should be persisted.
type Result struct {
	Friend           Friend   `json:"friend"`
	Changed          bool     `json:"changed"`
	CadenceShortened bool     `json:"cadenceShortened"`
	Feedback         Feedback `json:"feedback"`
}

// ProcessContact is the single entry point for recording a contact.
// One shot, no error path: every input combination, including a QUICK
// with zero tokens, yields a well-defined Result.
//
// The input friend is never mutated; the returned Friend is a fresh
// value with its own log slice.
func ProcessContact(f Friend, action ContactType, channel string, now time.Time) Result {
	status := ComputeTimeStatus(f.LastContacted, f.FrequencyDays, now)

	if action == Quick {
		return processQuick(f, status, channel, now)
	}
	return processCycle(f, action, status, channel, now)
}

func processQuick(f Friend, status TimeStatus, channel string, now time.Time) Result {
	if f.QuickTouchesAvailable <= 0 {
		return Result{
			Friend:  f,
			Changed: false,
			Feedback: Feedback{
				Action:          Quick,
				TimerEffect:     "no quick touches available",
				TokensAvailable: 0,
				Timestamp:       now,
			},
		}
	}

	updated := f
	updated.QuickTouchesAvailable--

	entry := InteractionLog{
		ID:                  uuid.NewString(),
		Timestamp:           now,
		Type:                Quick,
		DaysWaitGoal:        f.FrequencyDays,
		PercentageRemaining: status.PercentageLeft,
		ScoreDelta:          ScoreDelta(Quick, status.PercentageLeft, 0),
		Channel:             channel,
	}
	updated.Logs = prependLog(f.Logs, entry)
	updated.IndividualScore = RecomputeScore(updated.Logs)

	// A quick touch nudges the timer forward instead of resetting it.
	updated.LastContacted = f.LastContacted.Add(quickTouchExtension)

	return Result{
		Friend:  updated,
		Changed: true,
		Feedback: Feedback{
			Action:          Quick,
			ScoreDelta:      entry.ScoreDelta,
			NewScore:        updated.IndividualScore,
			TimerEffect:     "timer extended by 30 minutes",
			TokenChange:     -1,
			TokensAvailable: updated.QuickTouchesAvailable,
			Timestamp:       now,
		},
	}
}

func processCycle(f Friend, action ContactType, status TimeStatus, channel string, now time.Time) Result {
	// Cadence shortening inspects the state before the new log exists.
	oldFreq := f.FrequencyDays
	newFreq, shortened := shortenCadence(f, status.PercentageLeft, action)

	// Scoring uses the freshness computed against the original
	// frequency; the shortened frequency only lands in daysWaitGoal.
	delta := ScoreDelta(action, status.PercentageLeft, status.DaysOverdue())

	updated := f
	updated.FrequencyDays = newFreq

	entry := InteractionLog{
		ID:                  uuid.NewString(),
		Timestamp:           now,
		Type:                action,
		DaysWaitGoal:        newFreq,
		PercentageRemaining: status.PercentageLeft,
		ScoreDelta:          delta,
		Channel:             channel,
	}
	updated.Logs = prependLog(f.Logs, entry)
	updated.IndividualScore = RecomputeScore(updated.Logs)

	var tokenChange int
	updated.CyclesSinceLastQuickTouch, updated.QuickTouchesAvailable, tokenChange =
		earnCycle(f.CyclesSinceLastQuickTouch, f.QuickTouchesAvailable)

	timerEffect := "timer reset to now"
	updated.LastContacted = now
	if action == Deep {
		t := now
		updated.LastDeepConnection = &t
		updated.LastContacted = now.Add(deepBonusExtension)
		timerEffect = "timer reset with a 12-hour deep bonus"
	}

	fb := Feedback{
		Action:           action,
		ScoreDelta:       delta,
		NewScore:         updated.IndividualScore,
		CadenceShortened: shortened,
		TimerEffect:      timerEffect,
		TokenChange:      tokenChange,
		TokensAvailable:  updated.QuickTouchesAvailable,
		Timestamp:        now,
	}
	if shortened {
		fb.OldFrequencyDays = oldFreq
		fb.NewFrequencyDays = newFreq
		fb.TimerEffect = fmt.Sprintf("%s; cadence shortened from %dd to %dd", timerEffect, oldFreq, newFreq)
	}

	return Result{
		Friend:           updated,
		Changed:          true,
		CadenceShortened: shortened,
		Feedback:         fb,
	}
}

// prependLog returns a new slice with entry first. The input slice is
// never written to.
func prependLog(logs []InteractionLog, entry InteractionLog) []InteractionLog {
	out := make([]InteractionLog, 0, len(logs)+1)
	out = append(out, entry)
	return append(out, logs...)
}
