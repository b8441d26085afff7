package core

// DayNet is one day's net position within the week.
type DayNet struct {
	Date  LocalDate `json:"date"`
	Label string    `json:"label"`
	Net   Money     `json:"net"`
}

// WeekTotals is the output of bucketing one week's entries.
type WeekTotals struct {
	TotalIncome   Money
	TotalExpenses Money
	Net           Money
	DailyNet      []DayNet // always 7 elements, Monday first
}

// Aggregate buckets entries into weekly totals and per-day nets. Income
// contributes positively, expenses negatively. Dates are compared as local
// calendar days; an entry whose date cannot be parsed is skipped rather
// than failing the aggregation.
func Aggregate(income, expenses []Entry, boundary WeekBoundary) WeekTotals {
	totals := WeekTotals{DailyNet: make([]DayNet, 7)}
	start := boundary.StartDate()
	for i := range totals.DailyNet {
		day := start.AddDays(i)
		totals.DailyNet[i] = DayNet{
			Date:  day,
			Label: day.Weekday().String()[:3],
		}
	}

	for _, e := range income {
		day, err := ParseLocalDate(e.Date)
		if err != nil || !boundary.Contains(day) {
			continue
		}
		totals.TotalIncome = totals.TotalIncome.Add(e.Amount)
		idx := boundary.DayOffset(day)
		totals.DailyNet[idx].Net = totals.DailyNet[idx].Net.Add(e.Amount)
	}
	for _, e := range expenses {
		day, err := ParseLocalDate(e.Date)
		if err != nil || !boundary.Contains(day) {
			continue
		}
		totals.TotalExpenses = totals.TotalExpenses.Add(e.Amount)
		idx := boundary.DayOffset(day)
		totals.DailyNet[idx].Net = totals.DailyNet[idx].Net.Sub(e.Amount)
	}

	totals.Net = totals.TotalIncome.Sub(totals.TotalExpenses)
	return totals
}
