package server

import (
	"net/http"

	"github.com/lazypower/tend/internal/garden"
)

type snapshotKey struct {
	revision int64
	day      string
}

type gardenSnapshot struct {
	Score   int                      `json:"score"`
	Cohorts map[string]garden.Cohort `json:"cohorts"`
	Friends int                      `json:"friends"`
}

func (s *Server) handleGarden(w http.ResponseWriter, r *http.Request) {
	snap, err := s.gardenSnapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// gardenSnapshot recomputes (or serves a cached) aggregate view. The
// computation is pure and cheap; caching just avoids re-reading the
// whole collection on every poll from the UI.
func (s *Server) gardenSnapshot() (gardenSnapshot, error) {
	now := s.now()
	key := snapshotKey{revision: s.db.Revision(), day: now.Format("2006-01-02")}
	if snap, ok := s.gardenCache.Get(key); ok {
		return snap, nil
	}

	friends, err := s.db.ListFriends()
	if err != nil {
		return gardenSnapshot{}, err
	}
	meetings, err := s.db.ListMeetings()
	if err != nil {
		return gardenSnapshot{}, err
	}

	snap := gardenSnapshot{
		Score:   garden.GardenScore(friends, meetings, now),
		Cohorts: garden.CohortStats(friends, now),
		Friends: len(friends),
	}
	s.gardenCache.Add(key, snap)
	return snap, nil
}
