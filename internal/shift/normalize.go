package shift

import (
	"strings"
	"time"
)

const msPerHour = 3_600_000

// RateTable resolves position labels to wage rates using trimmed,
// case-insensitive matching. The loose string join is deliberate: positions
// are free text, not foreign keys, and a miss resolves to the default amount
// rather than an error.
type RateTable struct {
	rates         map[string]Rate
	defaultAmount float64
}

// NewRateTable indexes rates by normalized position label. Later duplicates
// of the same label win, mirroring a last-write view of the rate list.
func NewRateTable(rates []Rate, defaultAmount float64) RateTable {
	indexed := make(map[string]Rate, len(rates))
	for _, rate := range rates {
		key := normalizeLabel(rate.Position)
		if key == "" {
			continue
		}
		indexed[key] = rate
	}
	return RateTable{rates: indexed, defaultAmount: defaultAmount}
}

// Lookup returns the rate for a position label. Unmatched labels yield an
// hourly rate at the table's default amount.
func (t RateTable) Lookup(position string) Rate {
	if rate, ok := t.rates[normalizeLabel(position)]; ok {
		return rate
	}
	return Rate{Amount: t.defaultAmount, Kind: RateHourly}
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Enrich derives hours, day key, and earnings for one record. It never fails:
// records without both clock stamps come back zeroed with an empty DayKey,
// which excludes them from downstream aggregation.
func Enrich(record Record, rates RateTable) Enriched {
	enriched := Enriched{Record: record}
	if record.ClockIn == nil || record.ClockOut == nil {
		return enriched
	}

	workedMs := record.ClockOut.Sub(*record.ClockIn).Milliseconds()
	if workedMs < 0 {
		workedMs = 0
	}
	if record.LunchIn != nil && record.LunchOut != nil {
		lunchMs := record.LunchOut.Sub(*record.LunchIn).Milliseconds()
		if lunchMs > 0 {
			workedMs -= lunchMs
		}
	}
	if workedMs < 0 {
		workedMs = 0
	}
	enriched.Hours = float64(workedMs) / msPerHour

	// Day attribution always follows clock-in so an overnight shift stays
	// on its start date.
	enriched.DayKey = record.ClockIn.Format(DayKeyFormat)

	rate := rates.Lookup(record.Position)
	switch rate.Kind {
	case RatePerShift, RatePerDay:
		enriched.Earned = rate.Amount
	default:
		enriched.Earned = enriched.Hours * rate.Amount
	}
	return enriched
}

// EnrichAll enriches every record against the same rate table, preserving
// input order.
func EnrichAll(records []Record, rates RateTable) []Enriched {
	out := make([]Enriched, 0, len(records))
	for _, record := range records {
		out = append(out, Enrich(record, rates))
	}
	return out
}

// ParseTimestamp accepts the timestamp layouts the store and API exchange.
// It returns nil for empty or unparseable values so malformed input degrades
// to an excluded record instead of an error.
func ParseTimestamp(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}
	return nil
}
