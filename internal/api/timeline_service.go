package api

import (
	"context"
	"fmt"
	"time"

	"shifttrack/internal/config"
	"shifttrack/internal/shift"
	"shifttrack/internal/timeline"
)

// TimelineStore abstracts the reads the timeline service needs.
type TimelineStore interface {
	ListShifts(ctx context.Context) ([]shift.Record, error)
	ListRates(ctx context.Context) ([]shift.Rate, error)
}

// TimelineService builds series, heatmap, and breakdown views over recorded
// shifts.
type TimelineService struct {
	store       TimelineStore
	defaultRate float64
	now         func() time.Time
}

// NewTimelineService wires a timeline service over the given store.
func NewTimelineService(store TimelineStore, cfg *config.Config) *TimelineService {
	return &TimelineService{
		store:       store,
		defaultRate: cfg.Wages.DefaultRate,
		now:         time.Now,
	}
}

// Series builds the dense daily series for a preset window, including the
// prior-window comparison.
func (s *TimelineService) Series(ctx context.Context, presetName string) (SeriesResponse, error) {
	if s == nil || s.store == nil {
		return SeriesResponse{}, fmt.Errorf("timeline service unavailable")
	}
	preset, ok := timeline.ParsePreset(presetName)
	if !ok {
		return SeriesResponse{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidInput, presetName)
	}
	enriched, err := s.enrichedShifts(ctx)
	if err != nil {
		return SeriesResponse{}, err
	}
	series := timeline.Build(preset, timeline.Aggregate(enriched), s.now())
	return seriesToAPI(series, timeline.RolesByDay(enriched)), nil
}

// Breakdown reports earnings and hours per position for a preset window.
func (s *TimelineService) Breakdown(ctx context.Context, presetName string) ([]PositionShare, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("timeline service unavailable")
	}
	preset, ok := timeline.ParsePreset(presetName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidInput, presetName)
	}
	enriched, err := s.enrichedShifts(ctx)
	if err != nil {
		return nil, err
	}
	// Build resolves the unbounded alltime preset to the span of the data,
	// so the breakdown window always comes from the built series.
	series := timeline.Build(preset, timeline.Aggregate(enriched), s.now())
	shares := timeline.PositionBreakdown(enriched, series.Window)
	out := make([]PositionShare, 0, len(shares))
	for _, share := range shares {
		out = append(out, PositionShare{Position: share.Position, Earnings: share.Earnings, Hours: share.Hours})
	}
	return out, nil
}

// Heatmap returns per-day activity cells with calendar-year display bounds.
// Days without recorded hours are omitted.
func (s *TimelineService) Heatmap(ctx context.Context) (HeatmapResponse, error) {
	if s == nil || s.store == nil {
		return HeatmapResponse{}, fmt.Errorf("timeline service unavailable")
	}
	enriched, err := s.enrichedShifts(ctx)
	if err != nil {
		return HeatmapResponse{}, err
	}
	totals := timeline.Aggregate(enriched)
	start, end := timeline.HeatmapWindow(s.now())
	values := timeline.Heatmap(totals.Hours)
	cells := make([]HeatmapCell, 0, len(values))
	for _, value := range values {
		cells = append(cells, HeatmapCell{Date: value.Date, Count: value.Count, Bucket: value.Bucket})
	}
	return HeatmapResponse{Start: start, End: end, Values: cells}, nil
}

func (s *TimelineService) enrichedShifts(ctx context.Context) ([]shift.Enriched, error) {
	records, err := s.store.ListShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	rates, err := s.store.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	return shift.EnrichAll(records, shift.NewRateTable(rates, s.defaultRate)), nil
}
