package api

import (
	"shifttrack/internal/shift"
	"shifttrack/internal/timeline"
)

func shiftToAPI(enriched shift.Enriched) Shift {
	return Shift{
		ID:        enriched.ID,
		ClockIn:   enriched.ClockIn,
		ClockOut:  enriched.ClockOut,
		LunchIn:   enriched.LunchIn,
		LunchOut:  enriched.LunchOut,
		Position:  enriched.Position,
		Notes:     enriched.Notes,
		DayKey:    enriched.DayKey,
		Hours:     enriched.Hours,
		Earned:    enriched.Earned,
		CreatedAt: enriched.CreatedAt,
		UpdatedAt: enriched.UpdatedAt,
	}
}

func rateToAPI(rate shift.Rate) Rate {
	return Rate{
		ID:        rate.ID,
		Position:  rate.Position,
		Amount:    rate.Amount,
		Kind:      string(rate.Kind),
		CreatedAt: rate.CreatedAt,
	}
}

func seriesToAPI(series timeline.Series, roles map[string][]string) SeriesResponse {
	points := make([]SeriesPoint, 0, len(series.Points))
	for _, point := range series.Points {
		points = append(points, SeriesPoint{
			DayKey:      point.DayKey,
			DisplayDate: point.DisplayDate,
			Earnings:    point.Earnings,
			Hours:       point.Hours,
			Roles:       roles[point.DayKey],
		})
	}
	return SeriesResponse{
		Preset:           string(series.Preset),
		Start:            series.Window.Start.Format(shift.DayKeyFormat),
		End:              series.Window.End.Format(shift.DayKeyFormat),
		Points:           points,
		Current:          SeriesTotals{Earnings: series.Current.Earnings, Hours: series.Current.Hours},
		Previous:         SeriesTotals{Earnings: series.Previous.Earnings, Hours: series.Previous.Hours},
		EarningsDeltaPct: series.EarningsDeltaPct,
		HoursDeltaPct:    series.HoursDeltaPct,
	}
}
