package reconcile

import (
	"math"
	"strings"
	"time"

	"shifttrack/internal/shift"
)

// Tier is a reconciliation outcome, ordered from least to most informative.
type Tier string

const (
	TierNoData        Tier = "no_data"
	TierNeedsClaim    Tier = "needs_claim"
	TierAccurate      Tier = "accurate"
	TierMinorVariance Tier = "minor_variance"
	TierDiscrepancy   Tier = "discrepancy"
	TierOffTrack      Tier = "off_track"
)

// Claim is the user-asserted pay period and hours figure to audit. Fields
// arrive from the paystub extractor but stay editable, so any of them may
// be absent or malformed.
type Claim struct {
	BeginDate string
	EndDate   string
	// Hours is the claimed total; nil means the paystub never stated one.
	Hours *float64
}

// Verdict is the graded comparison between computed and claimed hours.
type Verdict struct {
	Tier          Tier
	ComputedHours float64
	ClaimedHours  float64
	PercentDiff   float64
}

// claimDateLayouts are the calendar-date shapes a claim field may carry:
// the store's canonical day key plus the slash forms the extractor emits.
var claimDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
}

func parseClaimDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range claimDateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ClaimWindow resolves the claim's inclusive UTC window
// [begin 00:00:00.000, end 23:59:59.999]. ok is false when either bound is
// missing or unparseable, which downstream treats as an empty window.
func ClaimWindow(claim Claim) (start, end time.Time, ok bool) {
	begin, okBegin := parseClaimDate(claim.BeginDate)
	until, okEnd := parseClaimDate(claim.EndDate)
	if !okBegin || !okEnd {
		return time.Time{}, time.Time{}, false
	}
	start = time.Date(begin.Year(), begin.Month(), begin.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(until.Year(), until.Month(), until.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
	return start, end, true
}

// ComputedHours sums worked hours for every shift whose clock-in falls
// inside the claim window. A shift starting after the window end is excluded
// even when it ends inside; attribution follows the start stamp throughout
// the system.
func ComputedHours(claim Claim, shifts []shift.Enriched) float64 {
	start, end, ok := ClaimWindow(claim)
	if !ok {
		return 0
	}
	var total float64
	for _, s := range shifts {
		if s.ClockIn == nil {
			continue
		}
		in := s.ClockIn.UTC()
		if in.Before(start) || in.After(end) {
			continue
		}
		total += s.Hours
	}
	return total
}

// Reconcile grades the claim against recorded shifts. The guards run in
// order: no computed hours, then missing claim, then the percentage bands.
// Boundary percentages (exactly 10, 20, 30) land in the lower tier.
func Reconcile(claim Claim, shifts []shift.Enriched) Verdict {
	verdict := Verdict{ComputedHours: ComputedHours(claim, shifts)}
	if claim.Hours != nil {
		verdict.ClaimedHours = *claim.Hours
	}

	if verdict.ComputedHours == 0 {
		verdict.Tier = TierNoData
		return verdict
	}
	if claim.Hours == nil || *claim.Hours <= 0 {
		verdict.Tier = TierNeedsClaim
		return verdict
	}

	verdict.PercentDiff = math.Abs(verdict.ComputedHours-verdict.ClaimedHours) / verdict.ClaimedHours * 100
	switch {
	case verdict.PercentDiff <= 10:
		verdict.Tier = TierAccurate
	case verdict.PercentDiff <= 20:
		verdict.Tier = TierMinorVariance
	case verdict.PercentDiff <= 30:
		verdict.Tier = TierDiscrepancy
	default:
		verdict.Tier = TierOffTrack
	}
	return verdict
}
