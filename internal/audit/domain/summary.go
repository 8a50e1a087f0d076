package domain

import "time"

// ActivitySummary aggregates audit activity since a point in time. It backs
// the admin metrics-summary endpoint and carries counts only, never entry
// contents.
type ActivitySummary struct {
	Since    time.Time
	Total    int64
	Denied   int64
	ByAction map[Action]int64
}

// deniedActions are the verdicts counted as denials in a summary.
var deniedActions = map[Action]bool{
	ActionAuthFailed:   true,
	ActionAccessDenied: true,
}

// NewActivitySummary builds a summary from per-action counts.
func NewActivitySummary(since time.Time, byAction map[Action]int64) *ActivitySummary {
	summary := &ActivitySummary{
		Since:    since,
		ByAction: byAction,
	}
	for action, count := range byAction {
		summary.Total += count
		if deniedActions[action] {
			summary.Denied += count
		}
	}
	return summary
}
