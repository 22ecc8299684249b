package punch

import "time"

// Type is one of the four punches of a working day.
type Type string

const (
	TypeEntry    Type = "entry"
	TypeLunchOut Type = "lunch_out"
	TypeLunchIn  Type = "lunch_in"
	TypeExit     Type = "exit"
)

// Sequence is the expected order of punches within a day.
var Sequence = []Type{TypeEntry, TypeLunchOut, TypeLunchIn, TypeExit}

var TypeValues = []string{
	string(TypeEntry),
	string(TypeLunchOut),
	string(TypeLunchIn),
	string(TypeExit),
}

func (t Type) IsValid() bool {
	switch t {
	case TypeEntry, TypeLunchOut, TypeLunchIn, TypeExit:
		return true
	}
	return false
}

// Event is an immutable timestamped punch.
type Event struct {
	ID             string
	UserID         string
	OrganizationID string
	Type           Type
	Timestamp      time.Time
	Latitude       *float64
	Longitude      *float64
	DistanceMeters *float64
	CreatedAt      time.Time
}

// FirstOfEach keeps the first occurrence of every punch type. Events are
// compared by timestamp, so the input order does not matter.
func FirstOfEach(events []Event) map[Type]time.Time {
	first := make(map[Type]time.Time, len(Sequence))
	for _, e := range events {
		if !e.Type.IsValid() {
			continue
		}
		if ts, ok := first[e.Type]; !ok || e.Timestamp.Before(ts) {
			first[e.Type] = e.Timestamp
		}
	}
	return first
}

// NextType returns the punch type expected after the already recorded
// events of a day. ok is false once the day is complete.
func NextType(events []Event) (next Type, ok bool) {
	recorded := FirstOfEach(events)
	for _, t := range Sequence {
		if _, done := recorded[t]; !done {
			return t, true
		}
	}
	return "", false
}
