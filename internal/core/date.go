package core

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// LocalDate is a calendar day in local time. It is deliberately distinct
// from time.Time: a LocalDate answers "which day", never "which instant".
// All bucketing in this package compares LocalDates, so an entry recorded
// as "2025-03-10" lands on March 10 regardless of the server's UTC offset.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseLocalDate accepts either a bare "YYYY-MM-DD" date or a full RFC3339
// timestamp. A bare date resolves to the named calendar day in local time,
// never to UTC midnight; a timestamp is converted to local time first and
// then truncated to its day.
func ParseLocalDate(s string) (LocalDate, error) {
	if s == "" {
		return LocalDate{}, ErrInvalidDate
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t.Local()), nil
	}
	return LocalDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// DateOf truncates an instant to its local calendar day.
func DateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

// Time returns local midnight of the day.
func (d LocalDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

func (d LocalDate) IsZero() bool {
	return d == LocalDate{}
}

func (d LocalDate) AddDays(n int) LocalDate {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d LocalDate) Before(other LocalDate) bool {
	return d.Time().Before(other.Time())
}

func (d LocalDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d LocalDate) String() string {
	return d.Time().Format("2006-01-02")
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *LocalDate) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := ParseLocalDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
