package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shifttrack/internal/config"
	"shifttrack/internal/logging"
	"shifttrack/internal/notifications"
	"shifttrack/internal/shift"
)

// ShiftStore abstracts the persistence operations the shift service needs.
type ShiftStore interface {
	CreateShift(ctx context.Context, record shift.Record) (*shift.Record, error)
	GetShift(ctx context.Context, id string) (*shift.Record, error)
	UpdateShift(ctx context.Context, record *shift.Record) error
	ListShifts(ctx context.Context) ([]shift.Record, error)
	DeleteShift(ctx context.Context, id string) (bool, error)
	ListRates(ctx context.Context) ([]shift.Rate, error)
}

// ShiftInput carries the writable fields of a shift. Timestamps arrive as
// strings and are parsed leniently; an empty string clears the field.
type ShiftInput struct {
	ClockIn  string `json:"clockIn"`
	ClockOut string `json:"clockOut"`
	LunchIn  string `json:"lunchIn"`
	LunchOut string `json:"lunchOut"`
	Position string `json:"position"`
	Notes    string `json:"notes"`
}

// ShiftService exposes shift CRUD with wage enrichment applied on the way out.
type ShiftService struct {
	store       ShiftStore
	defaultRate float64
	notifier    notifications.Service
	logger      *slog.Logger
}

// NewShiftService wires a shift service over the given store. The notifier may
// be the noop implementation; it is invoked best-effort after creates.
func NewShiftService(store ShiftStore, cfg *config.Config, notifier notifications.Service, logger *slog.Logger) *ShiftService {
	return &ShiftService{
		store:       store,
		defaultRate: cfg.Wages.DefaultRate,
		notifier:    notifier,
		logger:      logging.NewComponentLogger(logger, "api"),
	}
}

// List returns every shift ordered by clock-in, enriched with hours and
// earnings.
func (s *ShiftService) List(ctx context.Context) (ShiftListResponse, error) {
	if s == nil || s.store == nil {
		return ShiftListResponse{}, fmt.Errorf("shift service unavailable")
	}
	records, err := s.store.ListShifts(ctx)
	if err != nil {
		return ShiftListResponse{}, fmt.Errorf("list shifts: %w", err)
	}
	table, err := s.rateTable(ctx)
	if err != nil {
		return ShiftListResponse{}, err
	}
	shifts := make([]Shift, 0, len(records))
	for _, enriched := range shift.EnrichAll(records, table) {
		shifts = append(shifts, shiftToAPI(enriched))
	}
	return ShiftListResponse{Shifts: shifts}, nil
}

// Describe returns a single enriched shift by id.
func (s *ShiftService) Describe(ctx context.Context, id string) (ShiftResponse, error) {
	if s == nil || s.store == nil {
		return ShiftResponse{}, fmt.Errorf("shift service unavailable")
	}
	record, err := s.store.GetShift(ctx, id)
	if err != nil {
		return ShiftResponse{}, fmt.Errorf("get shift: %w", err)
	}
	if record == nil {
		return ShiftResponse{}, fmt.Errorf("shift %s: %w", id, ErrNotFound)
	}
	table, err := s.rateTable(ctx)
	if err != nil {
		return ShiftResponse{}, err
	}
	return ShiftResponse{Shift: shiftToAPI(shift.Enrich(*record, table))}, nil
}

// Create validates input, persists the shift, and fires a recorded
// notification. Notification failures are logged, never surfaced.
func (s *ShiftService) Create(ctx context.Context, input ShiftInput) (ShiftResponse, error) {
	if s == nil || s.store == nil {
		return ShiftResponse{}, fmt.Errorf("shift service unavailable")
	}
	record, err := recordFromInput(input)
	if err != nil {
		return ShiftResponse{}, err
	}
	created, err := s.store.CreateShift(ctx, record)
	if err != nil {
		return ShiftResponse{}, fmt.Errorf("create shift: %w", err)
	}
	table, err := s.rateTable(ctx)
	if err != nil {
		return ShiftResponse{}, err
	}
	enriched := shift.Enrich(*created, table)
	if s.notifier != nil {
		if err := s.notifier.NotifyShiftRecorded(ctx, enriched.Position, enriched.Hours); err != nil {
			s.logger.Warn("shift notification failed", logging.Error(err))
		}
	}
	return ShiftResponse{Shift: shiftToAPI(enriched)}, nil
}

// Update replaces the writable fields of an existing shift.
func (s *ShiftService) Update(ctx context.Context, id string, input ShiftInput) (ShiftResponse, error) {
	if s == nil || s.store == nil {
		return ShiftResponse{}, fmt.Errorf("shift service unavailable")
	}
	existing, err := s.store.GetShift(ctx, id)
	if err != nil {
		return ShiftResponse{}, fmt.Errorf("get shift: %w", err)
	}
	if existing == nil {
		return ShiftResponse{}, fmt.Errorf("shift %s: %w", id, ErrNotFound)
	}
	record, err := recordFromInput(input)
	if err != nil {
		return ShiftResponse{}, err
	}
	record.ID = existing.ID
	record.OwnerID = existing.OwnerID
	record.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateShift(ctx, &record); err != nil {
		return ShiftResponse{}, fmt.Errorf("update shift: %w", err)
	}
	table, err := s.rateTable(ctx)
	if err != nil {
		return ShiftResponse{}, err
	}
	return ShiftResponse{Shift: shiftToAPI(shift.Enrich(record, table))}, nil
}

// Delete removes a shift by id.
func (s *ShiftService) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("shift service unavailable")
	}
	removed, err := s.store.DeleteShift(ctx, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	if !removed {
		return fmt.Errorf("shift %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *ShiftService) rateTable(ctx context.Context) (shift.RateTable, error) {
	rates, err := s.store.ListRates(ctx)
	if err != nil {
		return shift.RateTable{}, fmt.Errorf("list rates: %w", err)
	}
	return shift.NewRateTable(rates, s.defaultRate), nil
}

// recordFromInput parses timestamp strings and enforces the minimal shape of
// a shift: clock-in is required, every supplied timestamp must parse, and a
// clock-out must not precede its clock-in.
func recordFromInput(input ShiftInput) (shift.Record, error) {
	record := shift.Record{
		Position: strings.TrimSpace(input.Position),
		Notes:    strings.TrimSpace(input.Notes),
	}

	var parseErr error
	parse := func(field, value string) *time.Time {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		parsed := shift.ParseTimestamp(value)
		if parsed == nil && parseErr == nil {
			parseErr = fmt.Errorf("%w: unparseable %s %q", ErrInvalidInput, field, value)
		}
		return parsed
	}

	record.ClockIn = parse("clockIn", input.ClockIn)
	record.ClockOut = parse("clockOut", input.ClockOut)
	record.LunchIn = parse("lunchIn", input.LunchIn)
	record.LunchOut = parse("lunchOut", input.LunchOut)
	if parseErr != nil {
		return shift.Record{}, parseErr
	}
	if record.ClockIn == nil {
		return shift.Record{}, fmt.Errorf("%w: clockIn is required", ErrInvalidInput)
	}
	if record.ClockOut != nil && record.ClockOut.Before(*record.ClockIn) {
		return shift.Record{}, fmt.Errorf("%w: clockOut precedes clockIn", ErrInvalidInput)
	}
	return record, nil
}
