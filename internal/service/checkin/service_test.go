package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture IDs are UUID-shaped because request validation rejects
// anything else.
const (
	athleteID   = "b6a1c1de-58f0-4b70-9f38-4a1f4e6d2c01"
	guardianID  = "1f2e3d4c-5b6a-4789-8abc-def012345678"
	wardID      = "2a3b4c5d-6e7f-4801-9234-56789abcdef0"
	coachID     = "3c4d5e6f-7a8b-4912-8345-6789abcdef01"
	teamID      = "4d5e6f70-8b9c-4a23-9456-789abcdef012"
	otherTeamID = "5e6f7081-9cad-4b34-8567-89abcdef0123"
)

type fixture struct {
	svc      *CheckInServiceImpl
	checkIns *fakeCheckInRepo
	events   *fakeEventRepo
	users    *fakeUserRepo
	tags     *fakeTagRepo
	teams    *fakeTeamRepo
	notifs   *fakeNotificationRepo
}

func newFixture(now time.Time) *fixture {
	checkIns := newFakeCheckInRepo()
	events := &fakeEventRepo{}
	users := newFakeUserRepo()
	tags := &fakeTagRepo{tags: make(map[string]tag.Tag)}
	teams := &fakeTeamRepo{coaches: make(map[string][]string)}
	notifs := &fakeNotificationRepo{}

	users.users[athleteID] = member.User{ID: athleteID, OrgID: "org-1", FullName: "Dana Fox", Role: member.RoleAthlete}
	users.teams[athleteID] = []string{teamID}
	tags.tags["tok-1"] = tag.Tag{ID: "tag-1", OrgID: "org-1", Token: "tok-1", IsActive: true}

	svc := NewCheckInService(checkIns, events, users, tags, teams, notifs, time.UTC)
	svc.nowFn = func() time.Time { return now }

	return &fixture{svc: svc, checkIns: checkIns, events: events, users: users, tags: tags, teams: teams, notifs: notifs}
}

func tapReq() checkin.TapRequest {
	return checkin.TapRequest{
		TagToken:   "tok-1",
		CallerID:   athleteID,
		CallerRole: string(member.RoleAthlete),
	}
}

func TestTapChecksInOnTimeBeforeStart(t *testing.T) {
	f := newFixture(at(17, 45))
	f.events.events = []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}

	resp, err := f.svc.Tap(context.Background(), tapReq())
	require.NoError(t, err)
	assert.Equal(t, checkin.ActionCheckedIn, resp.Action)
	assert.Equal(t, checkin.StatusOnTime, resp.CheckIn.Status)
	assert.True(t, resp.CheckIn.Approved)
	assert.Equal(t, "ev-1", resp.Event.ID)
}

func TestTapChecksInLateAfterStart(t *testing.T) {
	f := newFixture(at(18, 18))
	f.events.events = []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}

	resp, err := f.svc.Tap(context.Background(), tapReq())
	require.NoError(t, err)
	assert.Equal(t, checkin.StatusLate, resp.CheckIn.Status)
}

func TestTapSecondTapChecksOutWithClampedHours(t *testing.T) {
	// First tap at 5:58 PM, second at 8:02 PM. Hours count from the
	// event's 6:00 PM start, not the early arrival: 2h02m -> 2.03.
	f := newFixture(at(17, 58))
	f.events.events = []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}

	_, err := f.svc.Tap(context.Background(), tapReq())
	require.NoError(t, err)

	f.svc.nowFn = func() time.Time { return at(20, 2) }
	resp, err := f.svc.Tap(context.Background(), tapReq())
	require.NoError(t, err)
	assert.Equal(t, checkin.ActionCheckedOut, resp.Action)
	require.NotNil(t, resp.CheckIn.HoursLogged)
	assert.InDelta(t, 2.03, *resp.CheckIn.HoursLogged, 0.001)
}

func TestTapThirdTapConflicts(t *testing.T) {
	f := newFixture(at(18, 0))
	f.events.events = []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}

	_, err := f.svc.Tap(context.Background(), tapReq())
	require.NoError(t, err)
	f.svc.nowFn = func() time.Time { return at(19, 0) }
	_, err = f.svc.Tap(context.Background(), tapReq())
	require.NoError(t, err)

	f.svc.nowFn = func() time.Time { return at(19, 30) }
	_, err = f.svc.Tap(context.Background(), tapReq())
	assert.ErrorIs(t, err, checkin.ErrAlreadyCheckedOut)
}

func TestTapDeactivatedTag(t *testing.T) {
	f := newFixture(at(18, 0))
	f.tags.tags["tok-1"] = tag.Tag{ID: "tag-1", OrgID: "org-1", Token: "tok-1", IsActive: false}

	_, err := f.svc.Tap(context.Background(), tapReq())
	assert.ErrorIs(t, err, tag.ErrTagDeactivated)
}

func TestTapUnrecognizedTag(t *testing.T) {
	f := newFixture(at(18, 0))

	req := tapReq()
	req.TagToken = "tok-unknown"
	_, err := f.svc.Tap(context.Background(), req)
	assert.ErrorIs(t, err, tag.ErrUnrecognizedTag)
}

func TestTapTagFromAnotherOrg(t *testing.T) {
	f := newFixture(at(18, 0))
	f.tags.tags["tok-1"] = tag.Tag{ID: "tag-1", OrgID: "org-2", Token: "tok-1", IsActive: true}

	_, err := f.svc.Tap(context.Background(), tapReq())
	assert.ErrorIs(t, err, member.ErrNotAMember)
}

func TestTapProxyRequiresGuardianLink(t *testing.T) {
	f := newFixture(at(18, 0))
	f.events.events = []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}
	f.users.users[wardID] = member.User{ID: wardID, OrgID: "org-1", FullName: "Sam Fox", Role: member.RoleAthlete}
	f.users.teams[wardID] = []string{teamID}
	f.users.users[guardianID] = member.User{ID: guardianID, OrgID: "org-1", Role: member.RoleAthlete}

	ward := wardID
	req := checkin.TapRequest{
		TagToken:         "tok-1",
		OnBehalfOfUserID: &ward,
		CallerID:         guardianID,
		CallerRole:       string(member.RoleAthlete),
	}

	_, err := f.svc.Tap(context.Background(), req)
	assert.ErrorIs(t, err, checkin.ErrNotAuthorizedForProxy)

	f.users.guardianLinks[guardianID+"|"+wardID] = true
	resp, err := f.svc.Tap(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, wardID, resp.CheckIn.UserID)
}

func TestTapStaffProxyNeedsNoLink(t *testing.T) {
	f := newFixture(at(18, 0))
	f.events.events = []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}
	f.users.users[coachID] = member.User{ID: coachID, OrgID: "org-1", Role: member.RoleCoach}

	target := athleteID
	req := checkin.TapRequest{
		TagToken:         "tok-1",
		OnBehalfOfUserID: &target,
		CallerID:         coachID,
		CallerRole:       string(member.RoleCoach),
	}

	resp, err := f.svc.Tap(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, athleteID, resp.CheckIn.UserID)
}

func TestTapOnAbsentRecordConflicts(t *testing.T) {
	// A sweep already wrote an ABSENT row; a late tap cannot reopen it.
	f := newFixture(at(19, 0))
	f.events.events = []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}
	f.checkIns.put(checkin.CheckIn{
		UserID:   athleteID,
		EventID:  "ev-1",
		Status:   checkin.StatusAbsent,
		Approved: true,
	})

	_, err := f.svc.Tap(context.Background(), tapReq())
	assert.ErrorIs(t, err, checkin.ErrAlreadyCheckedIn)
}

func TestAdHocCreatesEventAndPendingCheckIn(t *testing.T) {
	f := newFixture(at(18, 5))
	f.teams.coaches[teamID] = []string{coachID}

	note := "Extra conditioning"
	req := checkin.AdHocRequest{
		TagToken:  "tok-1",
		TeamID:    teamID,
		StartTime: "6:00 PM",
		EndTime:   "7:00 PM",
		Note:      &note,
		CallerID:  athleteID,
	}

	resp, err := f.svc.AdHoc(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, checkin.ActionCheckedIn, resp.Action)
	assert.True(t, resp.CheckIn.IsAdHoc)
	assert.False(t, resp.CheckIn.Approved)
	assert.True(t, resp.Event.IsAdHoc)
	assert.Equal(t, "Extra conditioning", resp.Event.Title)

	require.Len(t, f.events.created, 1)
	require.Len(t, f.notifs.batches, 1)
	assert.Equal(t, coachID, f.notifs.batches[0][0].RecipientID)
}

func TestAdHocRequiresTeamMembership(t *testing.T) {
	f := newFixture(at(18, 5))

	req := checkin.AdHocRequest{
		TagToken:  "tok-1",
		TeamID:    otherTeamID,
		StartTime: "6:00 PM",
		EndTime:   "7:00 PM",
		CallerID:  athleteID,
	}

	_, err := f.svc.AdHoc(context.Background(), req)
	assert.ErrorIs(t, err, member.ErrNotAMember)
}

func TestApproveAdHoc(t *testing.T) {
	f := newFixture(at(18, 5))
	in := at(18, 5)
	rec := f.checkIns.put(checkin.CheckIn{
		UserID:      athleteID,
		EventID:     "ev-adhoc",
		Status:      checkin.StatusLate,
		CheckInTime: &in,
		IsAdHoc:     true,
	})

	require.NoError(t, f.svc.Approve(context.Background(), rec.ID))
	got, err := f.checkIns.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Approved)
}

func TestApproveRejectsScheduledCheckIn(t *testing.T) {
	f := newFixture(at(18, 5))
	in := at(18, 5)
	rec := f.checkIns.put(checkin.CheckIn{
		UserID:      athleteID,
		EventID:     "ev-1",
		Status:      checkin.StatusOnTime,
		CheckInTime: &in,
		Approved:    true,
	})

	err := f.svc.Approve(context.Background(), rec.ID)
	assert.ErrorIs(t, err, checkin.ErrNotAdHocCheckIn)
}

func TestDenyRemovesAdHocRecord(t *testing.T) {
	f := newFixture(at(18, 5))
	in := at(18, 5)
	rec := f.checkIns.put(checkin.CheckIn{
		UserID:      athleteID,
		EventID:     "ev-adhoc",
		Status:      checkin.StatusLate,
		CheckInTime: &in,
		IsAdHoc:     true,
	})

	require.NoError(t, f.svc.Deny(context.Background(), rec.ID))
	_, err := f.checkIns.GetByID(context.Background(), rec.ID)
	assert.ErrorIs(t, err, checkin.ErrCheckInNotFound)
}
