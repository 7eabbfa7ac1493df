package checkin

import (
	"context"
	"strconv"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/notification"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/tag"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/team"
)

// fakeCheckInRepo is an in-memory CheckInRepository keyed the same way
// the real store is: one record per (user, event) pair.
type fakeCheckInRepo struct {
	records map[string]checkin.CheckIn // key: userID + "|" + eventID
	nextID  int

	closeCalls []string
}

func newFakeCheckInRepo() *fakeCheckInRepo {
	return &fakeCheckInRepo{records: make(map[string]checkin.CheckIn)}
}

func (f *fakeCheckInRepo) key(userID, eventID string) string { return userID + "|" + eventID }

func (f *fakeCheckInRepo) put(c checkin.CheckIn) checkin.CheckIn {
	if c.ID == "" {
		f.nextID++
		c.ID = "ci-" + strconv.Itoa(f.nextID)
	}
	f.records[f.key(c.UserID, c.EventID)] = c
	return c
}

func (f *fakeCheckInRepo) Create(_ context.Context, c checkin.CheckIn) (checkin.CheckIn, error) {
	if _, ok := f.records[f.key(c.UserID, c.EventID)]; ok {
		return checkin.CheckIn{}, checkin.ErrAlreadyCheckedIn
	}
	return f.put(c), nil
}

func (f *fakeCheckInRepo) GetByID(_ context.Context, id string) (checkin.CheckIn, error) {
	for _, c := range f.records {
		if c.ID == id {
			return c, nil
		}
	}
	return checkin.CheckIn{}, checkin.ErrCheckInNotFound
}

func (f *fakeCheckInRepo) ListByUserAndEvents(_ context.Context, userID string, eventIDs []string) (map[string]checkin.CheckIn, error) {
	result := make(map[string]checkin.CheckIn)
	for _, eventID := range eventIDs {
		if c, ok := f.records[f.key(userID, eventID)]; ok {
			result[eventID] = c
		}
	}
	return result, nil
}

func (f *fakeCheckInRepo) ListOpenByEvent(_ context.Context, eventID string) ([]checkin.CheckIn, error) {
	var open []checkin.CheckIn
	for _, c := range f.records {
		if c.EventID == eventID && c.Open() && (c.Status == checkin.StatusOnTime || c.Status == checkin.StatusLate) {
			open = append(open, c)
		}
	}
	return open, nil
}

func (f *fakeCheckInRepo) ListByEvent(_ context.Context, eventID string) ([]checkin.CheckIn, error) {
	var records []checkin.CheckIn
	for _, c := range f.records {
		if c.EventID == eventID {
			records = append(records, c)
		}
	}
	return records, nil
}

func (f *fakeCheckInRepo) ListByUser(_ context.Context, userID string, _ checkin.ListFilter) ([]checkin.CheckIn, int64, error) {
	var records []checkin.CheckIn
	for _, c := range f.records {
		if c.UserID == userID {
			records = append(records, c)
		}
	}
	return records, int64(len(records)), nil
}

func (f *fakeCheckInRepo) Close(_ context.Context, id string, checkOutTime time.Time, hoursLogged float64) (bool, error) {
	f.closeCalls = append(f.closeCalls, id)
	for k, c := range f.records {
		if c.ID == id {
			if c.CheckOutTime != nil {
				return false, nil
			}
			c.CheckOutTime = &checkOutTime
			c.HoursLogged = &hoursLogged
			f.records[k] = c
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCheckInRepo) BulkCreateAbsent(_ context.Context, checkIns []checkin.CheckIn) (int, error) {
	created := 0
	for _, c := range checkIns {
		if _, ok := f.records[f.key(c.UserID, c.EventID)]; ok {
			continue
		}
		f.put(c)
		created++
	}
	return created, nil
}

func (f *fakeCheckInRepo) SetApproved(_ context.Context, id string) error {
	for k, c := range f.records {
		if c.ID == id {
			c.Approved = true
			f.records[k] = c
			return nil
		}
	}
	return checkin.ErrCheckInNotFound
}

func (f *fakeCheckInRepo) DeleteWithEvent(_ context.Context, checkInID string, _ string) error {
	for k, c := range f.records {
		if c.ID == checkInID {
			delete(f.records, k)
			return nil
		}
	}
	return checkin.ErrCheckInNotFound
}

type fakeEventRepo struct {
	events  []event.Event
	created []event.Event
}

func (f *fakeEventRepo) Create(_ context.Context, ev event.Event) (event.Event, error) {
	ev.ID = "ev-created-" + strconv.Itoa(len(f.created)+1)
	f.created = append(f.created, ev)
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string, orgID string) (event.Event, error) {
	for _, ev := range f.events {
		if ev.ID == id && ev.OrgID == orgID {
			return ev, nil
		}
	}
	return event.Event{}, event.ErrEventNotFound
}

func (f *fakeEventRepo) ListOnDate(_ context.Context, _ string, date time.Time, _ []string) ([]event.Event, error) {
	var result []event.Event
	for _, ev := range f.events {
		if ev.Date.Year() == date.Year() && ev.Date.YearDay() == date.YearDay() {
			result = append(result, ev)
		}
	}
	return result, nil
}

func (f *fakeEventRepo) ListForReconciliation(_ context.Context, _ *string, from, to time.Time) ([]event.Event, error) {
	var result []event.Event
	for _, ev := range f.events {
		if ev.IsAdHoc {
			continue
		}
		if !ev.Date.Before(from.Truncate(24*time.Hour)) && !ev.Date.After(to) {
			result = append(result, ev)
		}
	}
	return result, nil
}

func (f *fakeEventRepo) List(_ context.Context, _ string, _ event.ListFilter) ([]event.Event, int64, error) {
	return f.events, int64(len(f.events)), nil
}

func (f *fakeEventRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

type fakeUserRepo struct {
	users         map[string]member.User
	teams         map[string][]string
	guardianLinks map[string]bool // key: guardianID + "|" + wardID
	periods       map[string][]member.MembershipPeriod
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         make(map[string]member.User),
		teams:         make(map[string][]string),
		guardianLinks: make(map[string]bool),
		periods:       make(map[string][]member.MembershipPeriod),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u member.User) (member.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (member.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return member.User{}, member.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (member.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return member.User{}, member.ErrUserNotFound
}

func (f *fakeUserRepo) ListTeamIDs(_ context.Context, userID string) ([]string, error) {
	return f.teams[userID], nil
}

func (f *fakeUserRepo) ListAthletesByTeams(_ context.Context, teamIDs []string) ([]member.User, error) {
	var result []member.User
	seen := make(map[string]bool)
	for _, u := range f.users {
		if u.Role != member.RoleAthlete || seen[u.ID] {
			continue
		}
		for _, userTeam := range f.teams[u.ID] {
			for _, t := range teamIDs {
				if userTeam == t {
					seen[u.ID] = true
					result = append(result, u)
				}
			}
		}
	}
	return result, nil
}

func (f *fakeUserRepo) ListPeriodsByUser(_ context.Context, userID string) ([]member.MembershipPeriod, error) {
	return f.periods[userID], nil
}

func (f *fakeUserRepo) ListPeriodsByUsers(_ context.Context, userIDs []string, _ []string) (map[string][]member.MembershipPeriod, error) {
	result := make(map[string][]member.MembershipPeriod)
	for _, id := range userIDs {
		result[id] = f.periods[id]
	}
	return result, nil
}

func (f *fakeUserRepo) CreatePeriod(_ context.Context, p member.MembershipPeriod) (member.MembershipPeriod, error) {
	f.periods[p.UserID] = append(f.periods[p.UserID], p)
	return p, nil
}

func (f *fakeUserRepo) ClosePeriod(_ context.Context, _, _, _ string) error { return nil }

func (f *fakeUserRepo) HasGuardianLink(_ context.Context, guardianID, wardID string) (bool, error) {
	return f.guardianLinks[guardianID+"|"+wardID], nil
}

type fakeTagRepo struct {
	tags map[string]tag.Tag // by token
}

func (f *fakeTagRepo) Create(_ context.Context, t tag.Tag) (tag.Tag, error) {
	f.tags[t.Token] = t
	return t, nil
}

func (f *fakeTagRepo) GetByToken(_ context.Context, token string) (tag.Tag, error) {
	if t, ok := f.tags[token]; ok {
		return t, nil
	}
	return tag.Tag{}, tag.ErrUnrecognizedTag
}

func (f *fakeTagRepo) ListByOrg(_ context.Context, _ string) ([]tag.Tag, error) { return nil, nil }

func (f *fakeTagRepo) Deactivate(_ context.Context, _, _ string) error { return nil }

type fakeTeamRepo struct {
	coaches map[string][]string // teamID -> coach user IDs
}

func (f *fakeTeamRepo) GetByID(_ context.Context, _, _ string) (team.Team, error) {
	return team.Team{}, member.ErrTeamNotFound
}

func (f *fakeTeamRepo) ListByOrg(_ context.Context, _ string) ([]team.Team, error) { return nil, nil }

func (f *fakeTeamRepo) ListCoachUserIDs(_ context.Context, teamIDs []string) ([]string, error) {
	var result []string
	seen := make(map[string]bool)
	for _, t := range teamIDs {
		for _, id := range f.coaches[t] {
			if !seen[id] {
				seen[id] = true
				result = append(result, id)
			}
		}
	}
	return result, nil
}

type fakeNotificationRepo struct {
	batches [][]*notification.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	f.batches = append(f.batches, []*notification.Notification{n})
	return nil
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, ns []*notification.Notification) error {
	f.batches = append(f.batches, ns)
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(_ context.Context, _ string, _, _ int, _ bool) ([]*notification.Notification, int, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, _, _ string) error { return nil }
