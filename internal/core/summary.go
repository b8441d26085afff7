package core

import "time"

// WeeklySummary is the dashboard payload. The first eight fields are the
// stable wire contract consumed by existing clients; the rest are derived
// server-side from the same inputs.
type WeeklySummary struct {
	WeekStart         time.Time       `json:"weekStart"`
	TotalIncome       Money           `json:"totalIncome"`
	TotalExpenses     Money           `json:"totalExpenses"`
	Net               Money           `json:"net"`
	WeeklyTarget      Money           `json:"weeklyTarget"`
	RemainingToTarget Money           `json:"remainingToTarget"`
	IncomeEntries     []IncomeRecord  `json:"incomeEntries"`
	ExpenseEntries    []ExpenseRecord `json:"expenseEntries"`

	DailyNet     []DayNet `json:"dailyNet"`
	Insight      *Insight `json:"insight"`
	PaceGuidance string   `json:"paceGuidance"`
	BestDay      *DayNet  `json:"bestDay"`
	WorstDay     *DayNet  `json:"worstDay"`
}

// BuildWeeklySummary assembles the full dashboard response for one user at
// one instant. Pure: identical inputs and an identical now produce an
// identical summary. Entries outside the current week boundary are dropped
// here rather than trusting upstream date filters, and expense
// counterparties are already canonical by the time records reach this
// point (normalization happens at the decoding boundary).
func BuildWeeklySummary(income []IncomeRecord, expenses []ExpenseRecord, weeklyTarget Money, now time.Time) WeeklySummary {
	boundary := ResolveWeek(now)

	weekIncome := make([]IncomeRecord, 0, len(income))
	for _, r := range income {
		if day, err := ParseLocalDate(r.Date); err == nil && boundary.Contains(day) {
			weekIncome = append(weekIncome, r)
		}
	}
	weekExpenses := make([]ExpenseRecord, 0, len(expenses))
	for _, r := range expenses {
		if day, err := ParseLocalDate(r.Date); err == nil && boundary.Contains(day) {
			weekExpenses = append(weekExpenses, r)
		}
	}

	totals := Aggregate(entriesOf(weekIncome), expenseEntriesOf(weekExpenses), boundary)

	remaining := weeklyTarget.Sub(totals.Net)
	if remaining.Pence < 0 {
		remaining = Money{}
	}

	best, worst := SelectExtremes(totals.DailyNet)

	return WeeklySummary{
		WeekStart:         boundary.Start,
		TotalIncome:       totals.TotalIncome,
		TotalExpenses:     totals.TotalExpenses,
		Net:               totals.Net,
		WeeklyTarget:      weeklyTarget,
		RemainingToTarget: remaining,
		IncomeEntries:     weekIncome,
		ExpenseEntries:    weekExpenses,
		DailyNet:          totals.DailyNet,
		Insight:           ComputeInsight(totals.Net, weeklyTarget, boundary.Start, now),
		PaceGuidance:      DailyPaceGuidance(totals.Net, weeklyTarget, boundary.Start, now),
		BestDay:           best,
		WorstDay:          worst,
	}
}

func entriesOf(records []IncomeRecord) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = r.Entry
	}
	return out
}

func expenseEntriesOf(records []ExpenseRecord) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = r.Entry
	}
	return out
}
