package core

import (
	"fmt"
	"math"
	"time"
)

const (
	InsightSuccess = "success"
	InsightWarning = "warning"
)

// Insight is the qualitative weekly pacing signal shown on the dashboard.
type Insight struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// DayIndex reports which day of the week now falls on, 1-based and clamped
// to [1, 7]. Day 1 is the week's first day.
func DayIndex(weekStart, now time.Time) int {
	idx := int(math.Ceil(now.Sub(weekStart).Hours() / 24))
	if idx < 1 {
		idx = 1
	}
	if idx > 7 {
		idx = 7
	}
	return idx
}

// ComputeInsight compares net-so-far against a linearly pro-rated share of
// the weekly target. Returns nil when no pacing claim can be made: a zero
// or unset target, or a missing week start.
func ComputeInsight(net, weeklyTarget Money, weekStart, now time.Time) *Insight {
	if weeklyTarget.Pence <= 0 || weekStart.IsZero() {
		return nil
	}

	dayIndex := DayIndex(weekStart, now)
	expectedSoFar := weeklyTarget.Pounds() / 7 * float64(dayIndex)
	netPounds := net.Pounds()

	if netPounds >= weeklyTarget.Pounds() {
		return &Insight{Type: InsightSuccess, Text: "You've already hit your weekly target."}
	}
	if netPounds >= expectedSoFar {
		return &Insight{Type: InsightSuccess, Text: "You're on track to hit your weekly target."}
	}

	behind := int64(math.Round(expectedSoFar - netPounds))
	return &Insight{
		Type: InsightWarning,
		Text: fmt.Sprintf("To stay on track this week, you'll need to close a £%d gap.", behind),
	}
}

// DailyPaceGuidance describes the daily pace needed (or the margin
// available) over the rest of the week.
//
// daysRemaining counts today as still remaining while DayIndex counts it
// as elapsed, so the current day is double-counted between the two. That
// mirrors the shipped behavior the dashboard has always shown; the pace
// tests pin it down deliberately.
func DailyPaceGuidance(net, weeklyTarget Money, weekStart, now time.Time) string {
	if weeklyTarget.Pence <= 0 {
		return "Set a weekly target to see if you're on track."
	}

	dayIndex := DayIndex(weekStart, now)
	daysRemaining := 8 - dayIndex
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	remaining := weeklyTarget.Sub(net)

	if daysRemaining == 0 {
		if remaining.Pence <= 0 {
			return "Week ends today · You've already hit your weekly target."
		}
		return fmt.Sprintf("Week ends today · You're %s short of your weekly target.", FormatGBP(remaining))
	}

	label := fmt.Sprintf("%d days remaining", daysRemaining)
	if daysRemaining == 1 {
		label = "1 day remaining"
	}

	perDayPounds := int64(math.Ceil(remaining.Pounds() / float64(daysRemaining)))
	if perDayPounds < 0 {
		perDayPounds = -perDayPounds
	}
	perDay := Money{Pence: perDayPounds * 100}

	if remaining.Pence <= 0 {
		return fmt.Sprintf("%s · You can average %s per day and still hit your target.", label, FormatGBP(perDay))
	}
	return fmt.Sprintf("%s · You need to average %s per day to hit your target.", label, FormatGBP(perDay))
}
