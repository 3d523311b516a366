package reconcile_test

import (
	"math"
	"testing"
	"time"

	"shifttrack/internal/reconcile"
	"shifttrack/internal/shift"
)

func enrichedShift(clockIn time.Time, hours float64) shift.Enriched {
	in := clockIn
	return shift.Enriched{
		Record: shift.Record{ClockIn: &in},
		Hours:  hours,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// periodShifts spreads the given per-shift hours across consecutive days
// starting January 15 2024 UTC, inside the canonical test claim window.
func periodShifts(hoursPerShift float64, count int) []shift.Enriched {
	shifts := make([]shift.Enriched, 0, count)
	day := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		shifts = append(shifts, enrichedShift(day.AddDate(0, 0, i), hoursPerShift))
	}
	return shifts
}

func testClaim(hours *float64) reconcile.Claim {
	return reconcile.Claim{
		BeginDate: "01/15/2024",
		EndDate:   "01/28/2024",
		Hours:     hours,
	}
}

func TestReconcileTiers(t *testing.T) {
	cases := []struct {
		name         string
		computed     float64
		claimed      *float64
		wantTier     reconcile.Tier
		wantPct      float64
		checkPercent bool
	}{
		{name: "no recorded shifts", computed: 0, claimed: floatPtr(80), wantTier: reconcile.TierNoData},
		{name: "exact match", computed: 80, claimed: floatPtr(80), wantTier: reconcile.TierAccurate, wantPct: 0, checkPercent: true},
		{name: "fifteen percent under", computed: 68, claimed: floatPtr(80), wantTier: reconcile.TierMinorVariance, wantPct: 15, checkPercent: true},
		{name: "over thirty percent", computed: 55, claimed: floatPtr(80), wantTier: reconcile.TierOffTrack, wantPct: 31.25, checkPercent: true},
		{name: "exactly ten percent", computed: 72, claimed: floatPtr(80), wantTier: reconcile.TierAccurate, wantPct: 10, checkPercent: true},
		{name: "exactly twenty percent", computed: 64, claimed: floatPtr(80), wantTier: reconcile.TierMinorVariance, wantPct: 20, checkPercent: true},
		{name: "exactly thirty percent", computed: 56, claimed: floatPtr(80), wantTier: reconcile.TierDiscrepancy, wantPct: 30, checkPercent: true},
		{name: "overage counts too", computed: 92, claimed: floatPtr(80), wantTier: reconcile.TierMinorVariance, wantPct: 15, checkPercent: true},
		{name: "missing claim", computed: 40, claimed: nil, wantTier: reconcile.TierNeedsClaim},
		{name: "zero claim", computed: 40, claimed: floatPtr(0), wantTier: reconcile.TierNeedsClaim},
		{name: "negative claim", computed: 40, claimed: floatPtr(-5), wantTier: reconcile.TierNeedsClaim},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var shifts []shift.Enriched
			if tc.computed > 0 {
				shifts = periodShifts(tc.computed/8, 8)
			}
			verdict := reconcile.Reconcile(testClaim(tc.claimed), shifts)
			if verdict.Tier != tc.wantTier {
				t.Fatalf("tier = %q, want %q (verdict %+v)", verdict.Tier, tc.wantTier, verdict)
			}
			if math.Abs(verdict.ComputedHours-tc.computed) > 1e-9 {
				t.Fatalf("computed hours = %v, want %v", verdict.ComputedHours, tc.computed)
			}
			if tc.checkPercent && math.Abs(verdict.PercentDiff-tc.wantPct) > 1e-9 {
				t.Fatalf("percent diff = %v, want %v", verdict.PercentDiff, tc.wantPct)
			}
		})
	}
}

func TestReconcileWindowIsInclusiveUTC(t *testing.T) {
	shifts := []shift.Enriched{
		enrichedShift(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), 8),
		enrichedShift(time.Date(2024, time.January, 28, 23, 59, 59, 0, time.UTC), 4),
		enrichedShift(time.Date(2024, time.January, 14, 23, 59, 59, 0, time.UTC), 6),
		enrichedShift(time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC), 6),
	}

	got := reconcile.ComputedHours(testClaim(nil), shifts)
	if got != 12 {
		t.Fatalf("computed hours = %v, want 12 (bounds inclusive, outside excluded)", got)
	}
}

func TestReconcileAttributesByClockIn(t *testing.T) {
	// Starts inside the window, runs past the end; the full shift counts.
	inside := enrichedShift(time.Date(2024, time.January, 28, 22, 0, 0, 0, time.UTC), 5)
	// Starts after the window end; excluded even though close.
	after := enrichedShift(time.Date(2024, time.January, 29, 1, 0, 0, 0, time.UTC), 7)
	missing := shift.Enriched{Hours: 3}

	got := reconcile.ComputedHours(testClaim(nil), []shift.Enriched{inside, after, missing})
	if got != 5 {
		t.Fatalf("computed hours = %v, want 5", got)
	}
}

func TestReconcileNonUTCClockIn(t *testing.T) {
	// 01:00+02:00 on the 15th is 23:00 UTC on the 14th, before the window.
	zone := time.FixedZone("EET", 2*60*60)
	early := enrichedShift(time.Date(2024, time.January, 15, 1, 0, 0, 0, zone), 8)
	got := reconcile.ComputedHours(testClaim(nil), []shift.Enriched{early})
	if got != 0 {
		t.Fatalf("computed hours = %v, want 0 (comparison happens in UTC)", got)
	}
}

func TestClaimWindowDateFormats(t *testing.T) {
	cases := []struct {
		begin, end string
	}{
		{"2024-01-15", "2024-01-28"},
		{"01/15/2024", "01/28/2024"},
		{"1/15/24", "1/28/24"},
	}
	for _, tc := range cases {
		start, end, ok := reconcile.ClaimWindow(reconcile.Claim{BeginDate: tc.begin, EndDate: tc.end})
		if !ok {
			t.Fatalf("window for %q..%q should parse", tc.begin, tc.end)
		}
		if start != time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC) {
			t.Fatalf("start = %v for %q", start, tc.begin)
		}
		wantEnd := time.Date(2024, time.January, 28, 23, 59, 59, int(999*time.Millisecond), time.UTC)
		if end != wantEnd {
			t.Fatalf("end = %v for %q", end, tc.end)
		}
	}
}

func TestReconcileInvalidDatesYieldNoData(t *testing.T) {
	claim := reconcile.Claim{BeginDate: "soon", EndDate: "later", Hours: floatPtr(80)}
	verdict := reconcile.Reconcile(claim, periodShifts(8, 5))
	if verdict.Tier != reconcile.TierNoData {
		t.Fatalf("tier = %q, want %q", verdict.Tier, reconcile.TierNoData)
	}
	if verdict.ComputedHours != 0 {
		t.Fatalf("computed hours = %v, want 0", verdict.ComputedHours)
	}
}
