package timeline

import (
	"strings"

	"shifttrack/internal/shift"
)

// DayTotals holds hours and earnings summed per day key. Shifts without a
// day key are excluded by construction.
type DayTotals struct {
	Hours    map[string]float64
	Earnings map[string]float64
}

// Aggregate folds enriched shifts into per-day totals. Multiple shifts on
// the same day sum; the maps are freshly allocated on every call.
func Aggregate(shifts []shift.Enriched) DayTotals {
	totals := DayTotals{
		Hours:    make(map[string]float64),
		Earnings: make(map[string]float64),
	}
	for _, s := range shifts {
		if s.DayKey == "" {
			continue
		}
		totals.Hours[s.DayKey] += s.Hours
		totals.Earnings[s.DayKey] += s.Earned
	}
	return totals
}

// RolesByDay collects the distinct position labels worked on each day,
// in first-seen order.
func RolesByDay(shifts []shift.Enriched) map[string][]string {
	roles := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, s := range shifts {
		if s.DayKey == "" {
			continue
		}
		title := strings.TrimSpace(s.Position)
		if title == "" {
			continue
		}
		if seen[s.DayKey] == nil {
			seen[s.DayKey] = make(map[string]struct{})
		}
		if _, ok := seen[s.DayKey][title]; ok {
			continue
		}
		seen[s.DayKey][title] = struct{}{}
		roles[s.DayKey] = append(roles[s.DayKey], title)
	}
	return roles
}

// PositionShare is one slice of the earnings-by-position breakdown.
type PositionShare struct {
	Position string
	Earnings float64
	Hours    float64
}

// PositionBreakdown sums earnings and hours per position label for shifts
// whose day key falls inside the window, ordered by descending earnings.
// Shifts without a position label group under "Unknown".
func PositionBreakdown(shifts []shift.Enriched, window Window) []PositionShare {
	byPosition := make(map[string]*PositionShare)
	order := make([]string, 0)
	for _, s := range shifts {
		if s.DayKey == "" || !window.ContainsDayKey(s.DayKey) {
			continue
		}
		title := strings.TrimSpace(s.Position)
		if title == "" {
			title = "Unknown"
		}
		share, ok := byPosition[title]
		if !ok {
			share = &PositionShare{Position: title}
			byPosition[title] = share
			order = append(order, title)
		}
		share.Earnings += s.Earned
		share.Hours += s.Hours
	}

	out := make([]PositionShare, 0, len(order))
	for _, title := range order {
		out = append(out, *byPosition[title])
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Earnings > out[j-1].Earnings; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
