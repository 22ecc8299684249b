package absence

import (
	"time"
)

// Type classifies a calendar date that is not an ordinary working day.
type Type string

const (
	TypeVacation            Type = "vacation"
	TypeMedicalLeave        Type = "medical_leave"
	TypeMedicalConsultation Type = "medical_consultation"
	TypeJustifiedAbsence    Type = "justified_absence"
	TypeMaternityLeave      Type = "maternity_leave"
	TypePaternityLeave      Type = "paternity_leave"
	TypeUnjustifiedAbsence  Type = "unjustified_absence"
	TypeWorkAccident        Type = "work_accident"
	TypePunitiveSuspension  Type = "punitive_suspension"
	TypeDayOff              Type = "day_off"
	TypeBereavementLeave    Type = "bereavement_leave"
	TypeHoliday             Type = "holiday"
)

// Info describes how a classification is shown and how it affects balance.
type Info struct {
	Label string
	Color string
	// Debits marks types that charge the full expected minutes of the day.
	Debits bool
}

var catalogue = map[Type]Info{
	TypeVacation:            {Label: "Férias", Color: "#3b82f6"},
	TypeMedicalLeave:        {Label: "Licença Médica", Color: "#ef4444"},
	TypeMedicalConsultation: {Label: "Consulta Médica", Color: "#f97316"},
	TypeJustifiedAbsence:    {Label: "Falta Justificada", Color: "#eab308"},
	TypeMaternityLeave:      {Label: "Licença Maternidade", Color: "#ec4899"},
	TypePaternityLeave:      {Label: "Licença Paternidade", Color: "#8b5cf6"},
	TypeUnjustifiedAbsence:  {Label: "Falta Injustificada", Color: "#dc2626", Debits: true},
	TypeWorkAccident:        {Label: "Acidente de Trabalho", Color: "#b91c1c"},
	TypePunitiveSuspension:  {Label: "Suspensão Disciplinar", Color: "#7f1d1d", Debits: true},
	TypeDayOff:              {Label: "Folga", Color: "#10b981"},
	TypeBereavementLeave:    {Label: "Licença Nojo", Color: "#6b7280"},
	TypeHoliday:             {Label: "Feriado", Color: "#14b8a6"},
}

// Types lists every classification in display order.
var Types = []Type{
	TypeVacation,
	TypeMedicalLeave,
	TypeMedicalConsultation,
	TypeJustifiedAbsence,
	TypeMaternityLeave,
	TypePaternityLeave,
	TypeUnjustifiedAbsence,
	TypeWorkAccident,
	TypePunitiveSuspension,
	TypeDayOff,
	TypeBereavementLeave,
	TypeHoliday,
}

func (t Type) IsValid() bool {
	_, ok := catalogue[t]
	return ok
}

// Info returns the catalogue entry. Unknown types yield a zero Info, which
// never debits.
func (t Type) Info() Info {
	return catalogue[t]
}

func (t Type) Label() string { return catalogue[t].Label }

// Debits reports whether the type charges the whole expected day.
func (t Type) Debits() bool { return catalogue[t].Debits }

// Interval is an absence or vacation over the inclusive date range
// [StartDate, EndDate].
type Interval struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Type      Type
	Notes     *string
}

// Holiday is a non-working calendar date. An empty OrganizationID means a
// national holiday.
type Holiday struct {
	ID             string
	OrganizationID *string
	Date           time.Time
	Name           string
}

const dateKeyLayout = "2006-01-02"

// DateKey is the map key used for per-day classifications.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// Classify maps every date in [from, to] to its classification. Intervals
// are applied first, in the given order, and the first one to claim a date
// keeps it. A holiday only fills dates left unclassified.
func Classify(from, to time.Time, intervals []Interval, holidays []Holiday) map[string]Type {
	out := make(map[string]Type)
	start, end := dateOf(from), dateOf(to)

	for _, iv := range intervals {
		if !iv.Type.IsValid() || iv.Type == TypeHoliday {
			continue
		}
		d := maxDate(dateOf(iv.StartDate), start)
		last := minDate(dateOf(iv.EndDate), end)
		for ; !d.After(last); d = d.AddDate(0, 0, 1) {
			key := DateKey(d)
			if _, taken := out[key]; !taken {
				out[key] = iv.Type
			}
		}
	}

	for _, h := range holidays {
		d := dateOf(h.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		key := DateKey(d)
		if _, taken := out[key]; !taken {
			out[key] = TypeHoliday
		}
	}

	return out
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
