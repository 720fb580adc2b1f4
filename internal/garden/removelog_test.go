package garden

import (
	"testing"
	"time"
)

func friendWithHistory() Friend {
	f := NewFriend("f1", "Alice", 10, baseTime)

	res := ProcessContact(f, Regular, "", baseTime.Add(6*24*time.Hour))
	res = ProcessContact(res.Friend, Deep, "", baseTime.Add(12*24*time.Hour))
	res = ProcessContact(res.Friend, Regular, "", baseTime.Add(20*24*time.Hour))
	return res.Friend
}

func TestRemoveLogRecomputesScore(t *testing.T) {
	f := friendWithHistory()
	removedDelta := f.Logs[0].ScoreDelta

	updated := RemoveLog(f, f.Logs[0].ID)
	if len(updated.Logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(updated.Logs))
	}
	if want := RecomputeScore(updated.Logs); updated.IndividualScore != want {
		t.Errorf("score = %d, want %d", updated.IndividualScore, want)
	}
	if updated.IndividualScore == f.IndividualScore && removedDelta != 0 {
		t.Error("score should change when a scoring log is removed")
	}
}

func TestRemoveLogResetsLastContacted(t *testing.T) {
	f := friendWithHistory()

	// Removing the newest log moves the anchor back to the next newest.
	updated := RemoveLog(f, f.Logs[0].ID)
	if want := f.Logs[1].Timestamp; !updated.LastContacted.Equal(want) {
		t.Errorf("lastContacted = %v, want %v", updated.LastContacted, want)
	}
}

func TestRemoveLogPreservesOrder(t *testing.T) {
	f := friendWithHistory()
	first, third := f.Logs[0].ID, f.Logs[2].ID

	updated := RemoveLog(f, f.Logs[1].ID)
	if updated.Logs[0].ID != first || updated.Logs[1].ID != third {
		t.Error("relative order of surviving logs changed")
	}
}

func TestRemoveLogLastEntryKeepsAnchor(t *testing.T) {
	f := NewFriend("f1", "Alice", 10, baseTime)
	res := ProcessContact(f, Regular, "", baseTime.Add(24*time.Hour))

	updated := RemoveLog(res.Friend, res.Friend.Logs[0].ID)
	if len(updated.Logs) != 0 {
		t.Fatalf("logs = %d, want 0", len(updated.Logs))
	}
	if updated.IndividualScore != 50 {
		t.Errorf("score = %d, want 50", updated.IndividualScore)
	}
	// No surviving logs: the anchor stays put rather than resetting.
	if !updated.LastContacted.Equal(res.Friend.LastContacted) {
		t.Errorf("lastContacted = %v, want unchanged %v",
			updated.LastContacted, res.Friend.LastContacted)
	}
}

func TestRemoveLogUnknownIDIsIdempotent(t *testing.T) {
	f := friendWithHistory()

	once := RemoveLog(f, "no-such-log")
	twice := RemoveLog(once, "no-such-log")

	if len(once.Logs) != len(f.Logs) {
		t.Errorf("logs = %d, want %d", len(once.Logs), len(f.Logs))
	}
	if once.IndividualScore != f.IndividualScore {
		t.Errorf("score = %d, want %d", once.IndividualScore, f.IndividualScore)
	}
	if twice.IndividualScore != once.IndividualScore || len(twice.Logs) != len(once.Logs) {
		t.Error("second removal differed from the first")
	}
}

func TestRemoveLogDoesNotMutateInput(t *testing.T) {
	f := friendWithHistory()
	before := len(f.Logs)

	RemoveLog(f, f.Logs[0].ID)
	if len(f.Logs) != before {
		t.Error("input logs mutated")
	}
}
