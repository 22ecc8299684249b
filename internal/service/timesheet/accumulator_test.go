package timesheet

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
)

var brt = time.FixedZone("BRT", -3*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.October, day, hour, minute, 0, 0, brt)
}

func ev(t punch.Type, ts time.Time) punch.Event {
	return punch.Event{UserID: "user-1", Type: t, Timestamp: ts}
}

func fullDay(day int, exitHour, exitMinute int) []punch.Event {
	return []punch.Event{
		ev(punch.TypeEntry, at(day, 8, 0)),
		ev(punch.TypeLunchOut, at(day, 12, 0)),
		ev(punch.TypeLunchIn, at(day, 13, 0)),
		ev(punch.TypeExit, at(day, exitHour, exitMinute)),
	}
}

func absenceOf(t absence.Type) *absence.Type { return &t }

func TestComputeDay(t *testing.T) {
	tests := []struct {
		name             string
		in               DayInput
		wantWorked       int
		wantBalance      int
		wantInconsistent bool
	}{
		{
			name:        "complete day with five extra minutes",
			in:          DayInput{Punches: fullDay(13, 17, 5), ExpectedMinutes: 480, IsPastDay: true},
			wantWorked:  485,
			wantBalance: 5,
		},
		{
			name:        "complete day short of expected",
			in:          DayInput{Punches: fullDay(13, 16, 30), ExpectedMinutes: 480, IsPastDay: true},
			wantWorked:  450,
			wantBalance: -30,
		},
		{
			name:             "entry only on a past day",
			in:               DayInput{Punches: []punch.Event{ev(punch.TypeEntry, at(13, 8, 0))}, ExpectedMinutes: 480, IsPastDay: true},
			wantInconsistent: true,
		},
		{
			name: "entry only today",
			in:   DayInput{Punches: []punch.Event{ev(punch.TypeEntry, at(14, 8, 0))}, ExpectedMinutes: 480},
		},
		{
			name:        "no punches on a past working day",
			in:          DayInput{ExpectedMinutes: 480, IsPastDay: true},
			wantBalance: -480,
		},
		{
			name: "no punches today",
			in:   DayInput{ExpectedMinutes: 480},
		},
		{
			name: "no punches on a day off",
			in:   DayInput{IsPastDay: true},
		},
		{
			name:        "unjustified absence debits the day",
			in:          DayInput{ExpectedMinutes: 480, IsPastDay: true, Absence: absenceOf(absence.TypeUnjustifiedAbsence)},
			wantBalance: -480,
		},
		{
			name:        "punitive suspension debits the day",
			in:          DayInput{ExpectedMinutes: 360, IsPastDay: true, Absence: absenceOf(absence.TypePunitiveSuspension)},
			wantBalance: -360,
		},
		{
			name: "vacation is neutral",
			in:   DayInput{ExpectedMinutes: 480, IsPastDay: true, Absence: absenceOf(absence.TypeVacation)},
		},
		{
			name: "holiday is neutral",
			in:   DayInput{ExpectedMinutes: 480, IsPastDay: true, Absence: absenceOf(absence.TypeHoliday)},
		},
		{
			name: "absence suppresses the inconsistency flag",
			in: DayInput{
				Punches:         []punch.Event{ev(punch.TypeEntry, at(13, 8, 0))},
				ExpectedMinutes: 480,
				IsPastDay:       true,
				Absence:         absenceOf(absence.TypeMedicalConsultation),
			},
		},
		{
			name: "worked time on a day off is all balance",
			in: DayInput{
				Punches:   fullDay(11, 17, 0),
				IsPastDay: true,
			},
			wantWorked:  480,
			wantBalance: 480,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDay(tt.in)
			assert.Equal(t, tt.wantWorked, got.WorkedMinutes)
			assert.Equal(t, tt.wantBalance, got.BalanceMinutes)
			assert.Equal(t, tt.wantInconsistent, got.HasInconsistency)
			assert.Equal(t, tt.in.ExpectedMinutes, got.ExpectedMinutes)
		})
	}
}

func TestComputeDay_KeepsFirstOccurrence(t *testing.T) {
	punches := append(fullDay(13, 17, 0),
		ev(punch.TypeExit, at(13, 19, 0)),
		ev(punch.TypeEntry, at(13, 9, 0)),
	)

	got := ComputeDay(DayInput{Punches: punches, ExpectedMinutes: 480, IsPastDay: true})

	assert.Equal(t, 480, got.WorkedMinutes)
	assert.Equal(t, 0, got.BalanceMinutes)
	assert.False(t, got.HasInconsistency)
}

func TestWorkedMinutes_IncompletePairCountsZero(t *testing.T) {
	first := punch.FirstOfEach([]punch.Event{
		ev(punch.TypeEntry, at(13, 8, 0)),
		ev(punch.TypeLunchOut, at(13, 12, 0)),
		ev(punch.TypeExit, at(13, 17, 0)),
	})

	assert.Equal(t, 240, WorkedMinutes(first))
}

func TestWorkedMinutes_TruncatesSeconds(t *testing.T) {
	first := punch.FirstOfEach([]punch.Event{
		ev(punch.TypeEntry, at(13, 8, 0)),
		ev(punch.TypeLunchOut, at(13, 12, 0).Add(59*time.Second)),
	})

	assert.Equal(t, 240, WorkedMinutes(first))
}
