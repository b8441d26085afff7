package core

// SelectExtremes scans the per-day nets for the most and least profitable
// day. Days with no activity (net zero) are ignored; ties go to the first
// day encountered in chronological order. When every day is zero, or the
// slice is empty, both results are nil.
func SelectExtremes(dailyNet []DayNet) (best, worst *DayNet) {
	for i := range dailyNet {
		day := dailyNet[i]
		if day.Net.IsZero() {
			continue
		}
		if best == nil {
			b, w := day, day
			best, worst = &b, &w
			continue
		}
		if day.Net.Pence > best.Net.Pence {
			d := day
			best = &d
		}
		if day.Net.Pence < worst.Net.Pence {
			d := day
			worst = &d
		}
	}
	return best, worst
}
