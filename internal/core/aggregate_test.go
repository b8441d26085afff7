package core

import (
	"testing"
	"time"
)

func testBoundary() WeekBoundary {
	// Week of Monday 2025-03-10.
	return ResolveWeek(time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local))
}

func incomeOn(date string, pence int64) Entry {
	return Entry{Amount: Money{Pence: pence}, Date: date}
}

func TestAggregateTotalsAndDailyNet(t *testing.T) {
	b := testBoundary()
	income := []Entry{
		incomeOn("2025-03-10", 10000), // Mon £100
		incomeOn("2025-03-10", 5000),  // Mon £50
		incomeOn("2025-03-14", 20000), // Fri £200
	}
	expenses := []Entry{
		incomeOn("2025-03-12", 5000), // Wed £50
		incomeOn("2025-03-14", 1000), // Fri £10
	}

	got := Aggregate(income, expenses, b)

	if got.TotalIncome.Pence != 35000 {
		t.Fatalf("total income = %d", got.TotalIncome.Pence)
	}
	if got.TotalExpenses.Pence != 6000 {
		t.Fatalf("total expenses = %d", got.TotalExpenses.Pence)
	}
	if got.Net.Pence != 29000 {
		t.Fatalf("net = %d", got.Net.Pence)
	}

	wantDaily := []int64{15000, 0, -5000, 0, 19000, 0, 0}
	for i, want := range wantDaily {
		if got.DailyNet[i].Net.Pence != want {
			t.Fatalf("dailyNet[%d] = %d, want %d", i, got.DailyNet[i].Net.Pence, want)
		}
	}
	if got.DailyNet[0].Label != "Mon" || got.DailyNet[6].Label != "Sun" {
		t.Fatalf("labels = %q..%q", got.DailyNet[0].Label, got.DailyNet[6].Label)
	}
}

// Daily nets must reconcile exactly to the weekly net.
func TestAggregateDailyNetReconciles(t *testing.T) {
	b := testBoundary()
	income := []Entry{
		incomeOn("2025-03-10", 1234),
		incomeOn("2025-03-11", 5678),
		incomeOn("2025-03-16", 999),
	}
	expenses := []Entry{
		incomeOn("2025-03-11", 432),
		incomeOn("2025-03-15", 10000),
	}

	got := Aggregate(income, expenses, b)

	var sum int64
	for _, d := range got.DailyNet {
		sum += d.Net.Pence
	}
	if sum != got.Net.Pence {
		t.Fatalf("daily sum %d != net %d", sum, got.Net.Pence)
	}
	if got.Net.Pence != got.TotalIncome.Pence-got.TotalExpenses.Pence {
		t.Fatalf("net %d != income %d - expenses %d", got.Net.Pence, got.TotalIncome.Pence, got.TotalExpenses.Pence)
	}
}

func TestAggregateSkipsMalformedDates(t *testing.T) {
	b := testBoundary()
	income := []Entry{
		incomeOn("2025-03-10", 10000),
		incomeOn("garbage", 99999),
		incomeOn("", 99999),
	}

	got := Aggregate(income, nil, b)
	if got.TotalIncome.Pence != 10000 {
		t.Fatalf("malformed dates should be skipped, total = %d", got.TotalIncome.Pence)
	}
}

func TestAggregateExcludesOutOfWindow(t *testing.T) {
	b := testBoundary()
	income := []Entry{
		incomeOn("2025-03-09", 10000), // previous Sunday
		incomeOn("2025-03-17", 10000), // next Monday
		incomeOn("2025-03-16", 7000),  // this Sunday, included
	}

	got := Aggregate(income, nil, b)
	if got.TotalIncome.Pence != 7000 {
		t.Fatalf("window filter broken, total = %d", got.TotalIncome.Pence)
	}
}

// A timestamp within the week buckets into the day of its local instant.
func TestAggregateTimestampBucketing(t *testing.T) {
	b := testBoundary()
	ts := time.Date(2025, 3, 13, 22, 45, 0, 0, time.Local).Format(time.RFC3339)
	got := Aggregate([]Entry{incomeOn(ts, 4200)}, nil, b)
	if got.DailyNet[3].Net.Pence != 4200 { // Thursday
		t.Fatalf("timestamp bucketed wrong: %+v", got.DailyNet)
	}
}

func TestAggregateEmptyWeekIsAllZero(t *testing.T) {
	got := Aggregate(nil, nil, testBoundary())
	if got.Net.Pence != 0 || len(got.DailyNet) != 7 {
		t.Fatalf("empty aggregate = %+v", got)
	}
	for i, d := range got.DailyNet {
		if d.Net.Pence != 0 {
			t.Fatalf("dailyNet[%d] = %d, want 0", i, d.Net.Pence)
		}
	}
}
