package testsupport

import (
	"context"
	"testing"
	"time"

	"shifttrack/internal/config"
	"shifttrack/internal/shift"
	"shifttrack/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewShift creates a shift for tests with the given bounds and position.
func NewShift(t testing.TB, st *store.Store, clockIn, clockOut time.Time, position string) *shift.Record {
	t.Helper()

	in := clockIn
	out := clockOut
	record, err := st.CreateShift(context.Background(), shift.Record{
		ClockIn:  &in,
		ClockOut: &out,
		Position: position,
	})
	if err != nil {
		t.Fatalf("store.CreateShift: %v", err)
	}
	return record
}

// NewRate creates a wage rate for tests.
func NewRate(t testing.TB, st *store.Store, position string, amount float64, kind shift.RateKind) *shift.Rate {
	t.Helper()

	rate, err := st.UpsertRate(context.Background(), shift.Rate{
		Position: position,
		Amount:   amount,
		Kind:     kind,
	})
	if err != nil {
		t.Fatalf("store.UpsertRate: %v", err)
	}
	return rate
}
