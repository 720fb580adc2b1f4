package server

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/lazypower/tend/internal/garden"
)

// The digest is what a notification collaborator consumes: a markdown
// summary for humans plus structured items with a per-friend-per-day
// dedup key, so the same deadline is never alerted on twice.

type digestItem struct {
	FriendID    string `json:"friendId"`
	Name        string `json:"name"`
	DaysOverdue int    `json:"daysOverdue"`
	DedupKey    string `json:"dedupKey"`
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	friends, err := s.db.ListFriends()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := s.now()
	threshold := s.cfg.Notify.OverdueThresholdDays

	var items []digestItem
	for _, f := range friends {
		status := garden.ComputeTimeStatus(f.LastContacted, f.FrequencyDays, now)
		overdue := status.DaysOverdue()
		if overdue < threshold {
			continue
		}
		items = append(items, digestItem{
			FriendID:    f.ID,
			Name:        f.Name,
			DaysOverdue: overdue,
			DedupKey:    fmt.Sprintf("%s/%s", f.ID, now.Format("2006-01-02")),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].DaysOverdue > items[j].DaysOverdue })

	writeJSON(w, http.StatusOK, map[string]any{
		"digest": buildDigest(items),
		"items":  items,
	})
}

func buildDigest(items []digestItem) string {
	if len(items) == 0 {
		return "## tend: all caught up\n\nNo one is overdue. Nice.\n"
	}

	var b strings.Builder
	b.WriteString("## tend: overdue contacts\n\n")
	for _, it := range items {
		unit := "days"
		if it.DaysOverdue == 1 {
			unit = "day"
		}
		fmt.Fprintf(&b, "- **%s** is %d %s overdue\n", it.Name, it.DaysOverdue, unit)
	}
	return b.String()
}
