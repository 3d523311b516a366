package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"shifttrack/internal/shift"
)

// Preset names a relative date window for series building.
type Preset string

const (
	PresetLast7Days  Preset = "last7days"
	PresetLast30Days Preset = "last30days"
	PresetLast90Days Preset = "last90days"
	PresetYTD        Preset = "ytd"
	PresetAllTime    Preset = "alltime"
)

var presetDays = map[Preset]int{
	PresetLast7Days:  7,
	PresetLast30Days: 30,
	PresetLast90Days: 90,
}

// AllPresets returns the supported presets in display order.
func AllPresets() []Preset {
	return []Preset{PresetLast7Days, PresetLast30Days, PresetLast90Days, PresetYTD, PresetAllTime}
}

// ParsePreset converts a string into a known Preset.
func ParsePreset(value string) (Preset, bool) {
	normalized := Preset(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case PresetLast7Days, PresetLast30Days, PresetLast90Days, PresetYTD, PresetAllTime:
		return normalized, true
	}
	return "", false
}

// Window is an inclusive calendar-day range. Start and End are local
// midnights of the first and last day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days covered, inclusive. The count is
// taken from the calendar dates, not elapsed time, so windows spanning a DST
// transition keep their full length.
func (w Window) Days() int {
	if w.End.Before(w.Start) {
		return 0
	}
	start := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// ContainsDayKey reports whether a "YYYY-MM-DD" key falls inside the window.
// Day keys compare correctly as strings.
func (w Window) ContainsDayKey(key string) bool {
	if key == "" {
		return false
	}
	return key >= w.Start.Format(shift.DayKeyFormat) && key <= w.End.Format(shift.DayKeyFormat)
}

// Previous returns the window of equal length ending the day before Start.
func (w Window) Previous() Window {
	days := w.Days()
	end := w.Start.AddDate(0, 0, -1)
	return Window{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WindowForPreset resolves a preset against "now". The alltime preset has no
// fixed bounds; it reports ok=false and callers derive the window from data.
func WindowForPreset(preset Preset, now time.Time) (Window, bool) {
	today := startOfDay(now)
	if days, ok := presetDays[preset]; ok {
		return Window{Start: today.AddDate(0, 0, -(days - 1)), End: today}, true
	}
	if preset == PresetYTD {
		return Window{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), End: today}, true
	}
	return Window{}, false
}

// Point is one calendar day in a built series.
type Point struct {
	DayKey      string
	DisplayDate string
	Earnings    float64
	Hours       float64
}

// Totals sums a window's series values.
type Totals struct {
	Earnings float64
	Hours    float64
}

// Series is a dense, zero-filled run of daily points plus totals for the
// window and the immediately preceding window of equal length.
type Series struct {
	Preset   Preset
	Window   Window
	Points   []Point
	Current  Totals
	Previous Totals
	// EarningsDeltaPct and HoursDeltaPct compare the current window to the
	// previous one. A previous total of zero maps to 100 when the current
	// total is positive and 0 otherwise.
	EarningsDeltaPct float64
	HoursDeltaPct    float64
}

// Build produces the series for a preset from per-day totals. The alltime
// preset spans the earliest to latest day present in the data and carries no
// previous-window comparison.
func Build(preset Preset, totals DayTotals, now time.Time) Series {
	window, bounded := WindowForPreset(preset, now)
	if !bounded {
		window = dataWindow(totals, now)
		series := buildWindow(window, totals)
		series.Preset = preset
		return series
	}

	series := buildWindow(window, totals)
	series.Preset = preset
	previous := buildWindow(window.Previous(), totals)
	series.Previous = previous.Current
	series.EarningsDeltaPct = deltaPct(series.Current.Earnings, series.Previous.Earnings)
	series.HoursDeltaPct = deltaPct(series.Current.Hours, series.Previous.Hours)
	return series
}

// BuildRange produces the series for an explicit window, including the
// prior-period comparison.
func BuildRange(window Window, totals DayTotals) Series {
	series := buildWindow(window, totals)
	previous := buildWindow(window.Previous(), totals)
	series.Previous = previous.Current
	series.EarningsDeltaPct = deltaPct(series.Current.Earnings, series.Previous.Earnings)
	series.HoursDeltaPct = deltaPct(series.Current.Hours, series.Previous.Hours)
	return series
}

func buildWindow(window Window, totals DayTotals) Series {
	days := window.Days()
	points := make([]Point, 0, days)
	var current Totals
	for cursor := window.Start; !cursor.After(window.End); cursor = cursor.AddDate(0, 0, 1) {
		key := cursor.Format(shift.DayKeyFormat)
		point := Point{
			DayKey:      key,
			DisplayDate: fmt.Sprintf("%d/%d", int(cursor.Month()), cursor.Day()),
			Earnings:    totals.Earnings[key],
			Hours:       totals.Hours[key],
		}
		current.Earnings += point.Earnings
		current.Hours += point.Hours
		points = append(points, point)
	}
	return Series{Window: window, Points: points, Current: current}
}

func dataWindow(totals DayTotals, now time.Time) Window {
	var minKey, maxKey string
	for key := range totals.Hours {
		if minKey == "" || key < minKey {
			minKey = key
		}
		if key > maxKey {
			maxKey = key
		}
	}
	today := startOfDay(now)
	if minKey == "" {
		return Window{Start: today, End: today}
	}
	start, err := time.ParseInLocation(shift.DayKeyFormat, minKey, now.Location())
	if err != nil {
		return Window{Start: today, End: today}
	}
	end, err := time.ParseInLocation(shift.DayKeyFormat, maxKey, now.Location())
	if err != nil {
		return Window{Start: start, End: today}
	}
	return Window{Start: start, End: end}
}

func deltaPct(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / math.Abs(previous) * 100
}
