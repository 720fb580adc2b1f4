package garden

import "testing"

func TestScoreDelta(t *testing.T) {
	tests := []struct {
		name        string
		typ         ContactType
		pctLeft     float64
		daysOverdue int
		want        int
	}{
		{"quick is flat +2", Quick, -50, 5, 2},
		{"deep is flat +15", Deep, 95, 0, 15},
		{"regular sweet spot", Regular, 40, 0, 10},
		{"regular sweet spot boundary", Regular, 50, 0, 10},
		{"regular acceptable", Regular, 65, 0, 5},
		{"regular acceptable upper boundary", Regular, 80, 0, 5},
		{"regular too early", Regular, 81, 0, -2},
		{"regular one day overdue", Regular, -10, 1, -5},
		{"regular five days overdue", Regular, -50, 5, -25},
		{"regular overdue floor", Regular, -100, 10, -30},
		{"regular way overdue still floored", Regular, -500, 100, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreDelta(tt.typ, tt.pctLeft, tt.daysOverdue)
			if got != tt.want {
				t.Errorf("ScoreDelta(%s, %v, %d) = %d, want %d",
					tt.typ, tt.pctLeft, tt.daysOverdue, got, tt.want)
			}
		})
	}
}

func TestRecomputeScoreEmpty(t *testing.T) {
	if got := RecomputeScore(nil); got != 50 {
		t.Errorf("score = %d, want 50", got)
	}
}

func TestRecomputeScoreFold(t *testing.T) {
	logs := []InteractionLog{
		{ScoreDelta: 10},
		{ScoreDelta: -5},
		{ScoreDelta: 15},
	}
	if got := RecomputeScore(logs); got != 70 {
		t.Errorf("score = %d, want 70", got)
	}
}

func TestRecomputeScoreClampsHigh(t *testing.T) {
	logs := []InteractionLog{{ScoreDelta: 40}, {ScoreDelta: 40}}
	if got := RecomputeScore(logs); got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestRecomputeScoreClampsLow(t *testing.T) {
	logs := []InteractionLog{{ScoreDelta: -30}, {ScoreDelta: -30}}
	if got := RecomputeScore(logs); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}
