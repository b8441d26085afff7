package core

import "time"

// WeekBoundary is the half-open Monday-to-Monday interval [Start, End)
// defining "this week". Derived fresh on each computation, never stored.
type WeekBoundary struct {
	Start time.Time
	End   time.Time
}

// ResolveWeek computes the week containing now. Weeks start Monday: from
// Sunday go back six days, otherwise go back (weekday - 1) days, then
// normalize to local midnight.
func ResolveWeek(now time.Time) WeekBoundary {
	back := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		back = 6
	}
	start := DateOf(now).AddDays(-back).Time()
	return WeekBoundary{Start: start, End: start.AddDate(0, 0, 7)}
}

// StartDate returns the boundary's Monday as a calendar day.
func (b WeekBoundary) StartDate() LocalDate {
	return DateOf(b.Start)
}

// Contains reports whether the day falls inside [Start, End).
func (b WeekBoundary) Contains(d LocalDate) bool {
	t := d.Time()
	return !t.Before(b.Start) && t.Before(b.End)
}

// DayOffset returns the 0-based position of the day within the week, or -1
// when the boundary does not contain the day. Compared day-by-day rather
// than by duration so DST transitions cannot shift a bucket.
func (b WeekBoundary) DayOffset(d LocalDate) int {
	start := b.StartDate()
	for i := 0; i < 7; i++ {
		if start.AddDays(i) == d {
			return i
		}
	}
	return -1
}
