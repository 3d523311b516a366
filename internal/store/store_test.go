package store_test

import (
	"context"
	"testing"
	"time"

	"shifttrack/internal/shift"
	"shifttrack/internal/testsupport"
)

func TestCreateAndGetShift(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	in := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)
	created, err := st.CreateShift(ctx, shift.Record{
		ClockIn:  &in,
		ClockOut: &out,
		Position: "Barista",
		Notes:    "opening shift",
	})
	if err != nil {
		t.Fatalf("CreateShift: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be populated")
	}

	fetched, err := st.GetShift(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetShift: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected shift to exist")
	}
	if !fetched.ClockIn.Equal(in) || !fetched.ClockOut.Equal(out) {
		t.Fatalf("timestamps mismatch: %v / %v", fetched.ClockIn, fetched.ClockOut)
	}
	if fetched.LunchIn != nil || fetched.LunchOut != nil {
		t.Fatal("expected nil lunch stamps")
	}
	if fetched.Position != "Barista" || fetched.Notes != "opening shift" {
		t.Fatalf("fields mismatch: %+v", fetched)
	}
}

func TestGetShiftMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	record, err := st.GetShift(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("GetShift: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil for missing shift, got %+v", record)
	}
}

func TestUpdateShift(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	in := time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC)
	out := in.Add(6 * time.Hour)
	record := testsupport.NewShift(t, st, in, out, "Cook")

	lunchIn := in.Add(3 * time.Hour)
	lunchOut := lunchIn.Add(30 * time.Minute)
	record.LunchIn = &lunchIn
	record.LunchOut = &lunchOut
	record.Position = "Line Cook"
	if err := st.UpdateShift(ctx, record); err != nil {
		t.Fatalf("UpdateShift: %v", err)
	}

	fetched, err := st.GetShift(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetShift: %v", err)
	}
	if fetched.Position != "Line Cook" {
		t.Fatalf("position not updated: %q", fetched.Position)
	}
	if fetched.LunchIn == nil || !fetched.LunchIn.Equal(lunchIn) {
		t.Fatalf("lunch in not persisted: %v", fetched.LunchIn)
	}
	if fetched.UpdatedAt.Before(fetched.CreatedAt) {
		t.Fatalf("expected updated_at >= created_at: created %v updated %v", fetched.CreatedAt, fetched.UpdatedAt)
	}
}

func TestUpdateShiftMissingRow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	record := &shift.Record{ID: "ghost"}
	if err := st.UpdateShift(context.Background(), record); err == nil {
		t.Fatal("expected error updating missing shift")
	}
}

func TestListShiftsOrdersByClockIn(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	testsupport.NewShift(t, st, base.AddDate(0, 0, 2), base.AddDate(0, 0, 2).Add(8*time.Hour), "B")
	testsupport.NewShift(t, st, base, base.Add(8*time.Hour), "A")
	testsupport.NewShift(t, st, base.AddDate(0, 0, 1), base.AddDate(0, 0, 1).Add(8*time.Hour), "C")

	records, err := st.ListShifts(ctx)
	if err != nil {
		t.Fatalf("ListShifts: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 shifts, got %d", len(records))
	}
	if records[0].Position != "A" || records[1].Position != "C" || records[2].Position != "B" {
		t.Fatalf("unexpected order: %s %s %s", records[0].Position, records[1].Position, records[2].Position)
	}
}

func TestListShiftsBetween(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2024, time.April, d, 9, 0, 0, 0, time.UTC)
	}
	for d := 1; d <= 10; d++ {
		testsupport.NewShift(t, st, day(d), day(d).Add(8*time.Hour), "Clerk")
	}

	records, err := st.ListShiftsBetween(ctx, day(3), day(6))
	if err != nil {
		t.Fatalf("ListShiftsBetween: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 shifts in window, got %d", len(records))
	}
	if !records[0].ClockIn.Equal(day(3)) || !records[3].ClockIn.Equal(day(6)) {
		t.Fatalf("window bounds wrong: %v .. %v", records[0].ClockIn, records[3].ClockIn)
	}
}

func TestDeleteShift(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	in := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	record := testsupport.NewShift(t, st, in, in.Add(4*time.Hour), "Temp")

	removed, err := st.DeleteShift(ctx, record.ID)
	if err != nil {
		t.Fatalf("DeleteShift: %v", err)
	}
	if !removed {
		t.Fatal("expected delete to report a removed row")
	}

	removed, err = st.DeleteShift(ctx, record.ID)
	if err != nil {
		t.Fatalf("DeleteShift second call: %v", err)
	}
	if removed {
		t.Fatal("expected second delete to be a no-op")
	}

	count, err := st.CountShifts(ctx)
	if err != nil {
		t.Fatalf("CountShifts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d", count)
	}
}

func TestUpsertRateReplacesByPosition(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := testsupport.NewRate(t, st, "Barista", 16.5, shift.RateHourly)
	second, err := st.UpsertRate(ctx, shift.Rate{Position: "  barista ", Amount: 18, Kind: shift.RatePerShift})
	if err != nil {
		t.Fatalf("UpsertRate: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same rate row, got %s and %s", first.ID, second.ID)
	}
	if second.Amount != 18 || second.Kind != shift.RatePerShift {
		t.Fatalf("rate not replaced: %+v", second)
	}

	rates, err := st.ListRates(ctx)
	if err != nil {
		t.Fatalf("ListRates: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("expected single rate, got %d", len(rates))
	}
}

func TestFindRateByPositionLooseMatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.NewRate(t, st, "Copy Center", 14, shift.RateHourly)

	rate, err := st.FindRateByPosition(ctx, "  COPY CENTER ")
	if err != nil {
		t.Fatalf("FindRateByPosition: %v", err)
	}
	if rate == nil {
		t.Fatal("expected loose match to find rate")
	}
	if rate.Position != "Copy Center" {
		t.Fatalf("expected stored label preserved, got %q", rate.Position)
	}

	missing, err := st.FindRateByPosition(ctx, "Unknown Role")
	if err != nil {
		t.Fatalf("FindRateByPosition miss: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown position, got %+v", missing)
	}
}

func TestDeleteRate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rate := testsupport.NewRate(t, st, "Cook", 20, shift.RatePerDay)
	removed, err := st.DeleteRate(ctx, rate.ID)
	if err != nil {
		t.Fatalf("DeleteRate: %v", err)
	}
	if !removed {
		t.Fatal("expected delete to remove the rate")
	}

	fetched, err := st.GetRate(ctx, rate.ID)
	if err != nil {
		t.Fatalf("GetRate: %v", err)
	}
	if fetched != nil {
		t.Fatalf("expected nil after delete, got %+v", fetched)
	}
}

func TestCheckHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	in := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	testsupport.NewShift(t, st, in, in.Add(8*time.Hour), "Clerk")

	health, err := st.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TablesExist {
		t.Fatalf("unexpected health: %+v", health)
	}
	if health.TotalShifts != 1 {
		t.Fatalf("expected 1 shift, got %d", health.TotalShifts)
	}
	if !health.IntegrityCheck {
		t.Fatal("expected integrity check to pass")
	}
}
