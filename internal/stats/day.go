package stats

import "time"

// dayFormat is the wire format workout records carry in their date field.
const dayFormat = "2006-01-02"

// Day is a local calendar day with no time component. Streaks and adherence
// are defined over calendar days, so keeping them distinct from timestamps
// avoids timezone drift between "today" and the dates stored on records.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a timestamp to its calendar day in the timestamp's own
// location.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// Today is the current local calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a "2006-01-02" date string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return d.t.Format(dayFormat)
}

func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

func (d Day) Weekday() time.Weekday {
	return d.t.Weekday()
}

// DaysSince returns the whole number of days from other to d. Negative when
// other is later.
func (d Day) DaysSince(other Day) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}
