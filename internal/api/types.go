package api

import "time"

// Shift is the wire representation of one enriched shift record.
type Shift struct {
	ID        string     `json:"id"`
	ClockIn   *time.Time `json:"clockIn,omitempty"`
	ClockOut  *time.Time `json:"clockOut,omitempty"`
	LunchIn   *time.Time `json:"lunchIn,omitempty"`
	LunchOut  *time.Time `json:"lunchOut,omitempty"`
	Position  string     `json:"position,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	DayKey    string     `json:"dayKey,omitempty"`
	Hours     float64    `json:"hours"`
	Earned    float64    `json:"earned"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Rate is the wire representation of a wage rate.
type Rate struct {
	ID        string    `json:"id"`
	Position  string    `json:"position"`
	Amount    float64   `json:"amount"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShiftListResponse wraps a shift listing.
type ShiftListResponse struct {
	Shifts []Shift `json:"shifts"`
}

// ShiftResponse wraps a single shift.
type ShiftResponse struct {
	Shift Shift `json:"shift"`
}

// RateListResponse wraps a rate listing.
type RateListResponse struct {
	Rates []Rate `json:"rates"`
}

// RateResponse wraps a single rate.
type RateResponse struct {
	Rate Rate `json:"rate"`
}

// SeriesPoint is one calendar day in a time series response. Roles lists the
// distinct positions worked that day, in first-seen order.
type SeriesPoint struct {
	DayKey      string   `json:"dayKey"`
	DisplayDate string   `json:"displayDate"`
	Earnings    float64  `json:"earnings"`
	Hours       float64  `json:"hours"`
	Roles       []string `json:"roles,omitempty"`
}

// SeriesTotals sums a window of series points.
type SeriesTotals struct {
	Earnings float64 `json:"earnings"`
	Hours    float64 `json:"hours"`
}

// SeriesResponse is a dense daily series with prior-window comparison.
type SeriesResponse struct {
	Preset           string        `json:"preset"`
	Start            string        `json:"start"`
	End              string        `json:"end"`
	Points           []SeriesPoint `json:"points"`
	Current          SeriesTotals  `json:"current"`
	Previous         SeriesTotals  `json:"previous"`
	EarningsDeltaPct float64       `json:"earningsDeltaPct"`
	HoursDeltaPct    float64       `json:"hoursDeltaPct"`
}

// PositionShare is one slice of the earnings-by-position breakdown.
type PositionShare struct {
	Position string  `json:"position"`
	Earnings float64 `json:"earnings"`
	Hours    float64 `json:"hours"`
}

// HeatmapCell is one active day on the activity heatmap.
type HeatmapCell struct {
	Date   string  `json:"date"`
	Count  float64 `json:"count"`
	Bucket int     `json:"bucket"`
}

// HeatmapResponse carries heatmap cells plus the display window bounds.
type HeatmapResponse struct {
	Start  string        `json:"start"`
	End    string        `json:"end"`
	Values []HeatmapCell `json:"values"`
}

// ExtractResponse carries whatever the paystub field rules found. Empty
// strings mark fields for manual entry.
type ExtractResponse struct {
	BeginDate  string `json:"beginDate"`
	EndDate    string `json:"endDate"`
	TotalHours string `json:"totalHours"`
}

// HealthResponse reports database diagnostics.
type HealthResponse struct {
	DBPath           string `json:"dbPath"`
	DatabaseExists   bool   `json:"databaseExists"`
	DatabaseReadable bool   `json:"databaseReadable"`
	TablesExist      bool   `json:"tablesExist"`
	TotalShifts      int    `json:"totalShifts"`
	IntegrityCheck   bool   `json:"integrityCheck"`
	Error            string `json:"error,omitempty"`
}

// ReconcileResponse is the graded comparison between recorded and claimed
// hours for a pay period.
type ReconcileResponse struct {
	Tier          string  `json:"tier"`
	ComputedHours float64 `json:"computedHours"`
	ClaimedHours  float64 `json:"claimedHours"`
	PercentDiff   float64 `json:"percentDiff"`
}
