package shift

import (
	"strings"
	"time"
)

// RateKind describes how a wage rate amount is applied to a shift.
type RateKind string

const (
	RateHourly   RateKind = "hourly"
	RatePerShift RateKind = "per_shift"
	RatePerDay   RateKind = "per_day"
)

var rateKindAliases = map[string]RateKind{
	"hourly":    RateHourly,
	"per_shift": RatePerShift,
	"flat":      RatePerShift,
	"shift":     RatePerShift,
	"per_day":   RatePerDay,
	"daily":     RatePerDay,
}

// ParseRateKind normalizes a rate kind string. Unknown values fall back to
// hourly, matching the earnings fallback applied during enrichment.
func ParseRateKind(value string) RateKind {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if kind, ok := rateKindAliases[normalized]; ok {
		return kind
	}
	return RateHourly
}

// Record is one raw work session as submitted by the owner.
type Record struct {
	ID       string
	OwnerID  string
	ClockIn  *time.Time
	ClockOut *time.Time
	LunchIn  *time.Time
	LunchOut *time.Time
	Position string
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rate is a named compensation rule joined to records by position label.
type Rate struct {
	ID       string
	OwnerID  string
	Position string
	Amount   float64
	Kind     RateKind

	CreatedAt time.Time
}

// Enriched is a Record plus derived hours, day key, and earnings. It is
// recomputed from source data on every refresh and never persisted.
type Enriched struct {
	Record

	// Hours is the worked duration in decimal hours, lunch subtracted,
	// never negative.
	Hours float64
	// DayKey is the clock-in local calendar date as "YYYY-MM-DD", or empty
	// when the record cannot be placed on a day.
	DayKey string
	// Earned is the compensation derived from the matched rate.
	Earned float64
}

// DayKeyFormat is the canonical layout for day bucket keys.
const DayKeyFormat = "2006-01-02"
