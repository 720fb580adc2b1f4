package garden

import (
	"testing"
	"time"
)

func scored(id string, score int) Friend {
	return Friend{ID: id, Name: id, FrequencyDays: 7, LastContacted: baseTime, IndividualScore: score}
}

func TestGardenScoreEmpty(t *testing.T) {
	meetings := []MeetingRequest{
		{Status: MeetingComplete, Verified: true, DateAdded: baseTime},
	}
	if got := GardenScore(nil, meetings, baseTime); got != 0 {
		t.Errorf("score = %d, want 0 for empty garden", got)
	}
}

func TestGardenScoreAverage(t *testing.T) {
	friends := []Friend{scored("a", 40), scored("b", 60), scored("c", 80)}
	if got := GardenScore(friends, nil, baseTime); got != 60 {
		t.Errorf("score = %d, want 60", got)
	}
}

func TestGardenScoreVerifiedMeetingBonus(t *testing.T) {
	friends := []Friend{scored("a", 60)}
	meetings := []MeetingRequest{
		{Status: MeetingComplete, Verified: true, DateAdded: baseTime},
	}
	if got := GardenScore(friends, meetings, baseTime); got != 65 {
		t.Errorf("score = %d, want 65", got)
	}
}

func TestGardenScoreUnverifiedCompleteIgnored(t *testing.T) {
	friends := []Friend{scored("a", 60)}
	meetings := []MeetingRequest{
		{Status: MeetingComplete, Verified: false, DateAdded: baseTime},
	}
	if got := GardenScore(friends, meetings, baseTime); got != 60 {
		t.Errorf("score = %d, want 60", got)
	}
}

func TestGardenScoreStaleRequestPenalty(t *testing.T) {
	friends := []Friend{scored("a", 60), scored("b", 60)}
	now := baseTime.Add(30 * 24 * time.Hour)
	meetings := []MeetingRequest{
		{Status: MeetingRequested, DateAdded: baseTime},                         // 30 days old: -2
		{Status: MeetingRequested, DateAdded: now.Add(-2 * 24 * time.Hour)},     // fresh: ignored
		{Status: MeetingScheduled, DateAdded: baseTime},                         // scheduled: ignored
	}
	// 60 + (-2)/2 = 59
	if got := GardenScore(friends, meetings, now); got != 59 {
		t.Errorf("score = %d, want 59", got)
	}
}

func TestGardenScoreClamps(t *testing.T) {
	friends := []Friend{scored("a", 99)}
	meetings := []MeetingRequest{
		{Status: MeetingComplete, Verified: true, DateAdded: baseTime},
		{Status: MeetingComplete, Verified: true, DateAdded: baseTime},
	}
	if got := GardenScore(friends, meetings, baseTime); got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestCohortStats(t *testing.T) {
	overdueFriend := scored("d", 30)
	overdueFriend.Category = "Family"
	overdueFriend.LastContacted = baseTime.Add(-30 * 24 * time.Hour)

	a := scored("a", 40)
	a.Category = "Family"
	b := scored("b", 80)
	b.Category = "Work"
	c := scored("c", 70)

	now := baseTime.Add(24 * time.Hour)
	stats := CohortStats([]Friend{a, b, c, overdueFriend}, now)

	fam := stats["Family"]
	if fam.Count != 2 {
		t.Errorf("family count = %d, want 2", fam.Count)
	}
	if fam.AverageScore != 35 {
		t.Errorf("family avg = %f, want 35", fam.AverageScore)
	}
	if fam.Overdue != 1 {
		t.Errorf("family overdue = %d, want 1", fam.Overdue)
	}

	if stats["Work"].Count != 1 {
		t.Errorf("work count = %d, want 1", stats["Work"].Count)
	}
	if stats["uncategorized"].Count != 1 {
		t.Errorf("uncategorized count = %d, want 1", stats["uncategorized"].Count)
	}
}
