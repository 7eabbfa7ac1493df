package member

import "time"

// IsActiveDuring reports whether eventDate falls inside any of the
// member's tenure periods. Both bounds are inclusive; an open-ended
// period (LeftAt nil) covers everything from JoinedAt onward. A member
// with several join/leave cycles is inactive in the gaps between them.
func IsActiveDuring(eventDate time.Time, periods []MembershipPeriod) bool {
	for _, p := range periods {
		if eventDate.Before(p.JoinedAt) {
			continue
		}
		if p.LeftAt == nil || !eventDate.After(*p.LeftAt) {
			return true
		}
	}
	return false
}
