package garden

// RemoveLog drops one interaction from history and re-derives the
// state that depended on it. Removing an id that doesn't exist is a
// no-op on the log list; the recompute still runs and lands on the
// same score, so the operation is idempotent.
func RemoveLog(f Friend, logID string) Friend {
	updated := f

	logs := make([]InteractionLog, 0, len(f.Logs))
	for _, l := range f.Logs {
		if l.ID != logID {
			logs = append(logs, l)
		}
	}
	updated.Logs = logs
	updated.IndividualScore = RecomputeScore(logs)

	// The anchor moves back to the newest surviving log. Insertion
	// order is not timestamp order after earlier deletions, so scan.
	// With no logs left the anchor stays where it was.
	if len(logs) > 0 {
		newest := logs[0].Timestamp
		for _, l := range logs[1:] {
			if l.Timestamp.After(newest) {
				newest = l.Timestamp
			}
		}
		updated.LastContacted = newest
	}

	return updated
}
