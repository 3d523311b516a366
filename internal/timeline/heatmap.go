package timeline

import (
	"math"
	"sort"
	"time"
)

// HeatmapValue is one active day on the activity heatmap. Count carries the
// day's hours rounded to two decimals; Bucket is the display intensity.
type HeatmapValue struct {
	Date   string
	Count  float64
	Bucket int
}

// HeatmapBucket maps total hours on a day to a display intensity from 1 to 4.
// Zero or negative hours have no bucket; those days are omitted entirely.
func HeatmapBucket(hours float64) int {
	switch {
	case hours >= 8:
		return 4
	case hours >= 6:
		return 3
	case hours >= 3:
		return 2
	case hours > 0:
		return 1
	default:
		return 0
	}
}

// Heatmap converts per-day hours into sorted heatmap values. Days with zero
// or absent hours are not emitted; consumers treat missing dates as empty.
func Heatmap(hoursByDay map[string]float64) []HeatmapValue {
	values := make([]HeatmapValue, 0, len(hoursByDay))
	for day, hours := range hoursByDay {
		if hours <= 0 {
			continue
		}
		values = append(values, HeatmapValue{
			Date:   day,
			Count:  math.Round(hours*100) / 100,
			Bucket: HeatmapBucket(hours),
		})
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Date < values[j].Date })
	return values
}

// HeatmapWindow returns the calendar-year display range anchored to "now":
// December 31st of the prior year through December 31st of the current year.
func HeatmapWindow(now time.Time) (string, string) {
	year := now.Year()
	start := time.Date(year-1, time.December, 31, 0, 0, 0, 0, now.Location())
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, now.Location())
	layout := "2006-01-02"
	return start.Format(layout), end.Format(layout)
}
