package paystub_test

import (
	"testing"

	"shifttrack/internal/paystub"
)

func TestExtractLabeledFields(t *testing.T) {
	text := `ACME STAFFING LLC
Begin Date: 01/15/2024
End Date: 01/28/2024
Total Hours Worked: 76.5
Net Pay: $1,032.75`

	result := paystub.Extract(text)

	if result.BeginDate != "01/15/2024" {
		t.Fatalf("begin date = %q", result.BeginDate)
	}
	if result.EndDate != "01/28/2024" {
		t.Fatalf("end date = %q", result.EndDate)
	}
	if result.TotalHours != "76.5" {
		t.Fatalf("total hours = %q", result.TotalHours)
	}
}

func TestExtractShortYearAndSingleDigits(t *testing.T) {
	result := paystub.Extract("Start Date: 1/5/24\nStop Date: 1/18/24")
	if result.BeginDate != "1/5/24" || result.EndDate != "1/18/24" {
		t.Fatalf("unexpected bounds: %q .. %q", result.BeginDate, result.EndDate)
	}
}

func TestExtractPayPeriodFallback(t *testing.T) {
	result := paystub.Extract("Pay Period: 02/01/2024 – 02/14/2024")
	if result.BeginDate != "02/01/2024" {
		t.Fatalf("begin date = %q", result.BeginDate)
	}
	if result.EndDate != "02/14/2024" {
		t.Fatalf("end date = %q", result.EndDate)
	}
}

func TestExtractLabeledBeatsPayPeriod(t *testing.T) {
	text := "Begin Date: 03/01/2024\nPay Period: 02/01/2024 - 02/14/2024"
	result := paystub.Extract(text)
	if result.BeginDate != "03/01/2024" {
		t.Fatalf("labeled rule should win, got %q", result.BeginDate)
	}
	if result.EndDate != "02/14/2024" {
		t.Fatalf("missing end should fall back to pay period, got %q", result.EndDate)
	}
}

func TestExtractHoursAcrossLines(t *testing.T) {
	text := "Total Hours\nRegular     Overtime\n80.25       4.5"
	result := paystub.Extract(text)
	if result.TotalHours != "80.25" {
		t.Fatalf("expected nearby rule to find 80.25, got %q", result.TotalHours)
	}
}

func TestExtractBareTotalRow(t *testing.T) {
	text := "Earnings Statement\nTOTAL\n       88.0"
	result := paystub.Extract(text)
	if result.TotalHours != "88.0" {
		t.Fatalf("expected total-row rule to find 88.0, got %q", result.TotalHours)
	}
}

func TestExtractNothingMatches(t *testing.T) {
	result := paystub.Extract("completely unrelated text with no dates or totals")
	if result.BeginDate != "" || result.EndDate != "" || result.TotalHours != "" {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	result := paystub.Extract("")
	if result != (paystub.Result{}) {
		t.Fatalf("expected zero result, got %+v", result)
	}
}

func TestNormalizeText(t *testing.T) {
	in := "Pay Period:\t01/01/2024— 01/14/2024\r\nTotal   Hours:  40"
	out := paystub.NormalizeText(in)
	want := "Pay Period: 01/01/2024- 01/14/2024\nTotal Hours: 40"
	if out != want {
		t.Fatalf("normalize mismatch:\n got %q\nwant %q", out, want)
	}
}
