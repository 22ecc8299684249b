package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	profiles []profile.Profile
	err      error
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *fakeProfiles) ListByOrganization(ctx context.Context, organizationID string) ([]profile.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []profile.Profile
	for _, p := range f.profiles {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) ListOrganizationIDs(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range f.profiles {
		if !seen[p.OrganizationID] {
			seen[p.OrganizationID] = true
			out = append(out, p.OrganizationID)
		}
	}
	return out, nil
}

type fakeSchedules struct {
	schedules map[string]schedule.WorkSchedule
}

func (f *fakeSchedules) GetByID(ctx context.Context, id string, organizationID string) (schedule.WorkSchedule, error) {
	ws, ok := f.schedules[id]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
	}
	return ws, nil
}

type fakeAdjustments struct {
	adjustments []schedule.ScheduleAdjustment
}

func (f *fakeAdjustments) ListCovering(ctx context.Context, userID string, from, to time.Time) ([]schedule.ScheduleAdjustment, error) {
	return f.adjustments, nil
}

type fakeEvents struct {
	events []punch.Event
	err    error
}

func (f *fakeEvents) Create(ctx context.Context, event punch.Event) (punch.Event, error) {
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEvents) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]punch.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []punch.Event
	for _, e := range f.events {
		if e.UserID == userID && !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEvents) ListByOrganization(ctx context.Context, organizationID string, from, to time.Time) ([]punch.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []punch.Event
	for _, e := range f.events {
		if e.OrganizationID == organizationID && !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeIntervals struct {
	intervals []absence.Interval
}

func (f *fakeIntervals) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]absence.Interval, error) {
	return f.intervals, nil
}

type fakeHolidays struct {
	holidays []absence.Holiday
}

func (f *fakeHolidays) ListByOrganization(ctx context.Context, organizationID string, from, to time.Time) ([]absence.Holiday, error) {
	return f.holidays, nil
}

type serviceFixture struct {
	profiles    *fakeProfiles
	schedules   *fakeSchedules
	adjustments *fakeAdjustments
	events      *fakeEvents
	intervals   *fakeIntervals
	holidays    *fakeHolidays
}

func newServiceFixture() *serviceFixture {
	wsID := "ws-1"
	return &serviceFixture{
		profiles: &fakeProfiles{profiles: []profile.Profile{
			{UserID: "user-1", OrganizationID: "org-1", FullName: "Ana Souza", WorkScheduleID: &wsID},
			{UserID: "user-2", OrganizationID: "org-1", FullName: "Bruno Lima"},
			{UserID: "user-3", OrganizationID: "org-2", FullName: "Carla Dias"},
		}},
		schedules:   &fakeSchedules{schedules: map[string]schedule.WorkSchedule{"ws-1": *weekdaySchedule()}},
		adjustments: &fakeAdjustments{},
		events:      &fakeEvents{},
		intervals:   &fakeIntervals{},
		holidays:    &fakeHolidays{},
	}
}

func (f *serviceFixture) service(now time.Time) *TimesheetServiceImpl {
	svc := NewTimesheetService(f.profiles, f.schedules, f.adjustments, f.events, f.intervals, f.holidays, brt).(*TimesheetServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func withOrg(events []punch.Event, orgID string) []punch.Event {
	for i := range events {
		events[i].OrganizationID = orgID
	}
	return events
}

func TestTimesheetService_GetMonth_Success(t *testing.T) {
	f := newServiceFixture()
	f.events.events = withOrg(fullDay(13, 17, 5), "org-1")
	f.intervals.intervals = []absence.Interval{{
		ID:        "iv-1",
		UserID:    "user-1",
		StartDate: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.October, 2, 0, 0, 0, 0, time.UTC),
		Type:      absence.TypeUnjustifiedAbsence,
	}}
	f.holidays.holidays = []absence.Holiday{
		{ID: "h-1", Date: time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC), Name: "Nossa Senhora Aparecida"},
		{ID: "h-2", Date: time.Date(2026, time.October, 2, 0, 0, 0, 0, time.UTC), Name: "Feriado municipal"},
	}

	resp, err := f.service(at(14, 12, 0)).GetMonth(context.Background(), timesheet.MonthRequest{
		UserID: "user-1", OrganizationID: "org-1", Year: 2026, Month: 10,
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 14)

	// Days 1 and 2 are unjustified absences (the holiday on the 2nd does
	// not override), 5..9 are debited, 12 is a holiday, 13 has +5.
	assert.Equal(t, 7*-480+5, resp.TotalBalance)
	assert.Equal(t, timesheet.FormatBalance(7*-480+5), resp.Balance)
	assert.Equal(t, "-55:55", resp.Balance)

	second := resp.Days[1]
	require.NotNil(t, second.Absence)
	assert.Equal(t, string(absence.TypeUnjustifiedAbsence), *second.Absence)
	assert.Equal(t, "Falta Injustificada", *second.AbsenceLabel)

	holiday := resp.Days[11]
	require.NotNil(t, holiday.Absence)
	assert.Equal(t, string(absence.TypeHoliday), *holiday.Absence)
	assert.Equal(t, 0, holiday.BalanceMinutes)

	assert.Equal(t, "2026-10-13", resp.Days[12].Date)
	assert.Equal(t, "+00:05", resp.Days[12].Balance)
	assert.Equal(t, int(time.Tuesday), resp.Days[12].Weekday)
}

func TestTimesheetService_GetMonth_ValidationError(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service(at(14, 12, 0)).GetMonth(context.Background(), timesheet.MonthRequest{
		UserID: "user-1", Year: 2026, Month: 13,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestTimesheetService_GetMonth_OtherOrganization(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service(at(14, 12, 0)).GetMonth(context.Background(), timesheet.MonthRequest{
		UserID: "user-3", OrganizationID: "org-1", Year: 2026, Month: 10,
	})

	assert.ErrorIs(t, err, timesheet.ErrUserNotInOrganization)
}

func TestTimesheetService_GetMonth_UnknownUser(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service(at(14, 12, 0)).GetMonth(context.Background(), timesheet.MonthRequest{
		UserID: "nobody", OrganizationID: "org-1", Year: 2026, Month: 10,
	})

	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestTimesheetService_GetMonth_FutureMonth(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service(at(14, 12, 0)).GetMonth(context.Background(), timesheet.MonthRequest{
		UserID: "user-1", OrganizationID: "org-1", Year: 2026, Month: 11,
	})

	assert.ErrorIs(t, err, timesheet.ErrMonthInFuture)
}

func TestTimesheetService_GetMonth_NoScheduleExpectsNothing(t *testing.T) {
	f := newServiceFixture()

	resp, err := f.service(at(14, 12, 0)).GetMonth(context.Background(), timesheet.MonthRequest{
		UserID: "user-2", OrganizationID: "org-1", Year: 2026, Month: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalExpected)
	assert.Equal(t, 0, resp.TotalBalance)
	assert.Equal(t, "+00:00", resp.Balance)
}

func TestTimesheetService_GetMonth_StorageError(t *testing.T) {
	f := newServiceFixture()
	f.events.err = errors.New("connection reset")

	_, err := f.service(at(14, 12, 0)).GetMonth(context.Background(), timesheet.MonthRequest{
		UserID: "user-1", OrganizationID: "org-1", Year: 2026, Month: 10,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list punches")
}

func TestTimesheetService_ListAlerts(t *testing.T) {
	f := newServiceFixture()
	f.events.events = []punch.Event{
		{UserID: "user-1", OrganizationID: "org-1", Type: punch.TypeEntry, Timestamp: at(14, 7, 0)},
		{UserID: "user-2", OrganizationID: "org-1", Type: punch.TypeEntry, Timestamp: at(14, 8, 0)},
		{UserID: "user-2", OrganizationID: "org-1", Type: punch.TypeLunchOut, Timestamp: at(14, 12, 0)},
		{UserID: "user-2", OrganizationID: "org-1", Type: punch.TypeLunchIn, Timestamp: at(14, 13, 0)},
		{UserID: "user-3", OrganizationID: "org-2", Type: punch.TypeEntry, Timestamp: at(14, 6, 0)},
		{UserID: "user-1", OrganizationID: "org-1", Type: punch.TypeEntry, Timestamp: at(13, 6, 0)},
	}

	resp, err := f.service(at(14, 18, 0)).ListAlerts(context.Background(), "org-1", at(14, 18, 5))

	require.NoError(t, err)
	assert.Equal(t, "2026-10-14", resp.Date)
	require.Len(t, resp.Alerts, 2)

	assert.Equal(t, "user-1", resp.Alerts[0].UserID)
	assert.Equal(t, "Ana Souza", resp.Alerts[0].FullName)
	assert.Equal(t, string(timesheet.AlertOvertime), resp.Alerts[0].Kind)
	assert.Equal(t, 665, resp.Alerts[0].TodayMinutes)

	assert.Equal(t, "user-2", resp.Alerts[1].UserID)
	assert.Equal(t, string(timesheet.AlertMissingExit), resp.Alerts[1].Kind)
	assert.Equal(t, 545, resp.Alerts[1].TodayMinutes)
}

func TestTimesheetService_ListAlerts_Empty(t *testing.T) {
	f := newServiceFixture()

	resp, err := f.service(at(14, 18, 0)).ListAlerts(context.Background(), "org-1", at(14, 18, 0))

	require.NoError(t, err)
	assert.NotNil(t, resp.Alerts)
	assert.Empty(t, resp.Alerts)
}

func TestTimesheetService_ListAlerts_StorageError(t *testing.T) {
	f := newServiceFixture()
	f.profiles.err = errors.New("connection reset")

	_, err := f.service(at(14, 18, 0)).ListAlerts(context.Background(), "org-1", at(14, 18, 0))

	assert.Error(t, err)
}
