package event

import (
	"time"
)

type Event struct {
	ID    string
	OrgID string
	// TeamID is the owning team; nil means an org-wide event.
	TeamID *string
	// ParticipatingTeamIDs lists co-hosting teams beyond the owner.
	ParticipatingTeamIDs []string
	Title                string
	// Date is the calendar day only; time-of-day lives in the two strings
	// below and is resolved through timewindow.
	Date      time.Time
	StartTime string
	EndTime   string
	IsAdHoc   bool
	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamIDs returns the owning and participating team IDs, deduplicated.
func (e Event) TeamIDs() []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(e.ParticipatingTeamIDs)+1)
	if e.TeamID != nil {
		seen[*e.TeamID] = true
		ids = append(ids, *e.TeamID)
	}
	for _, id := range e.ParticipatingTeamIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
