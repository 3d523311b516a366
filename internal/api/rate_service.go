package api

import (
	"context"
	"fmt"
	"strings"

	"shifttrack/internal/shift"
)

// RateStore abstracts the persistence operations the rate service needs.
type RateStore interface {
	UpsertRate(ctx context.Context, rate shift.Rate) (*shift.Rate, error)
	GetRate(ctx context.Context, id string) (*shift.Rate, error)
	ListRates(ctx context.Context) ([]shift.Rate, error)
	DeleteRate(ctx context.Context, id string) (bool, error)
}

// RateInput carries the writable fields of a wage rate.
type RateInput struct {
	Position string  `json:"position"`
	Amount   float64 `json:"amount"`
	Kind     string  `json:"kind"`
}

// RateService exposes wage rate CRUD. Saving a rate for an existing position
// label replaces it; the position join is trimmed and case-insensitive.
type RateService struct {
	store RateStore
}

// NewRateService wires a rate service over the given store.
func NewRateService(store RateStore) *RateService {
	return &RateService{store: store}
}

// List returns every rate ordered by position label.
func (s *RateService) List(ctx context.Context) (RateListResponse, error) {
	if s == nil || s.store == nil {
		return RateListResponse{}, fmt.Errorf("rate service unavailable")
	}
	records, err := s.store.ListRates(ctx)
	if err != nil {
		return RateListResponse{}, fmt.Errorf("list rates: %w", err)
	}
	rates := make([]Rate, 0, len(records))
	for _, record := range records {
		rates = append(rates, rateToAPI(record))
	}
	return RateListResponse{Rates: rates}, nil
}

// Describe returns a single rate by id.
func (s *RateService) Describe(ctx context.Context, id string) (RateResponse, error) {
	if s == nil || s.store == nil {
		return RateResponse{}, fmt.Errorf("rate service unavailable")
	}
	record, err := s.store.GetRate(ctx, id)
	if err != nil {
		return RateResponse{}, fmt.Errorf("get rate: %w", err)
	}
	if record == nil {
		return RateResponse{}, fmt.Errorf("rate %s: %w", id, ErrNotFound)
	}
	return RateResponse{Rate: rateToAPI(*record)}, nil
}

// Save validates and upserts a rate keyed by its position label.
func (s *RateService) Save(ctx context.Context, input RateInput) (RateResponse, error) {
	if s == nil || s.store == nil {
		return RateResponse{}, fmt.Errorf("rate service unavailable")
	}
	position := strings.TrimSpace(input.Position)
	if position == "" {
		return RateResponse{}, fmt.Errorf("%w: position is required", ErrInvalidInput)
	}
	if input.Amount < 0 {
		return RateResponse{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	saved, err := s.store.UpsertRate(ctx, shift.Rate{
		Position: position,
		Amount:   input.Amount,
		Kind:     shift.ParseRateKind(input.Kind),
	})
	if err != nil {
		return RateResponse{}, fmt.Errorf("save rate: %w", err)
	}
	if saved == nil {
		return RateResponse{}, fmt.Errorf("save rate: row vanished after upsert")
	}
	return RateResponse{Rate: rateToAPI(*saved)}, nil
}

// Delete removes a rate by id.
func (s *RateService) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("rate service unavailable")
	}
	removed, err := s.store.DeleteRate(ctx, id)
	if err != nil {
		return fmt.Errorf("delete rate: %w", err)
	}
	if !removed {
		return fmt.Errorf("rate %s: %w", id, ErrNotFound)
	}
	return nil
}
