package core

import (
	"testing"
	"time"
)

func TestResolveWeekAlwaysMondayMidnight(t *testing.T) {
	// One instant on every weekday, plus edges around midnight.
	nows := []time.Time{
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),   // Monday midnight
		time.Date(2025, 3, 11, 9, 15, 0, 0, time.Local),  // Tuesday
		time.Date(2025, 3, 12, 23, 59, 59, 0, time.Local), // Wednesday night
		time.Date(2025, 3, 13, 12, 0, 0, 0, time.Local),  // Thursday
		time.Date(2025, 3, 14, 6, 30, 0, 0, time.Local),  // Friday
		time.Date(2025, 3, 15, 18, 0, 0, 0, time.Local),  // Saturday
		time.Date(2025, 3, 16, 1, 0, 0, 0, time.Local),   // Sunday goes back 6 days
		time.Date(2025, 12, 31, 23, 0, 0, 0, time.Local), // year boundary
	}
	for _, now := range nows {
		b := ResolveWeek(now)
		if b.Start.Weekday() != time.Monday {
			t.Fatalf("start of week for %v is %v, want Monday", now, b.Start.Weekday())
		}
		h, m, s := b.Start.Clock()
		if h != 0 || m != 0 || s != 0 {
			t.Fatalf("start of week for %v not at midnight: %v", now, b.Start)
		}
		if now.Before(b.Start) || !now.Before(b.End) {
			t.Fatalf("now %v outside its own week [%v, %v)", now, b.Start, b.End)
		}
		if got := b.End.Sub(b.Start); got != 7*24*time.Hour {
			t.Fatalf("week span = %v", got)
		}
	}
}

func TestResolveWeekSunday(t *testing.T) {
	sunday := time.Date(2025, 3, 16, 14, 0, 0, 0, time.Local)
	b := ResolveWeek(sunday)
	if b.StartDate() != (LocalDate{Year: 2025, Month: time.March, Day: 10}) {
		t.Fatalf("Sunday resolved to week starting %v", b.StartDate())
	}
}

func TestWeekBoundaryContains(t *testing.T) {
	b := ResolveWeek(time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local))
	cases := []struct {
		day  LocalDate
		want bool
	}{
		{LocalDate{2025, time.March, 10}, true},  // Monday start, inclusive
		{LocalDate{2025, time.March, 16}, true},  // Sunday
		{LocalDate{2025, time.March, 17}, false}, // next Monday, exclusive
		{LocalDate{2025, time.March, 9}, false},  // previous Sunday
	}
	for _, tc := range cases {
		if got := b.Contains(tc.day); got != tc.want {
			t.Fatalf("Contains(%v) = %v, want %v", tc.day, got, tc.want)
		}
	}
}

func TestWeekBoundaryDayOffset(t *testing.T) {
	b := ResolveWeek(time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local))
	for i := 0; i < 7; i++ {
		day := b.StartDate().AddDays(i)
		if got := b.DayOffset(day); got != i {
			t.Fatalf("DayOffset(%v) = %d, want %d", day, got, i)
		}
	}
	if got := b.DayOffset(LocalDate{2025, time.March, 17}); got != -1 {
		t.Fatalf("DayOffset outside week = %d, want -1", got)
	}
}
