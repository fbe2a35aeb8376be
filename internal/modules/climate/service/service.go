package service

import (
	"context"
	"log/slog"
	"time"

	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/types"
)

type Service struct {
	repository repository.ClimateRepository
	logger     *slog.Logger
}

func NewService(repository repository.ClimateRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repository: repository, logger: logger}
}

// LookbackWindow is the year of data ending at the latest observation in the
// store, independent of the wall clock.
func (s *Service) LookbackWindow(ctx context.Context) (types.DateRange, error) {
	end, err := s.repository.LatestObservationDate(ctx)
	if err != nil {
		return types.DateRange{}, err
	}
	window := types.DateRange{Start: OneYearBefore(end), End: end}
	s.logger.DebugContext(ctx, "lookback window", "start", window.StartString(), "end", window.EndString())
	return window, nil
}

// Precipitation maps each date in the lookback window to its precipitation.
// When several stations report the same date the last row wins; rows arrive
// ordered by (date, station), so that is the station code sorting last.
func (s *Service) Precipitation(ctx context.Context) (map[string]*float64, error) {
	window, err := s.LookbackWindow(ctx)
	if err != nil {
		return nil, err
	}
	readings, err := s.repository.ObservationsInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "precipitation queried",
		"start", window.StartString(),
		"end", window.EndString(),
		"records", len(readings),
	)

	out := make(map[string]*float64, len(readings))
	for _, r := range readings {
		out[r.Date] = r.Precipitation
	}
	return out, nil
}

func (s *Service) Stations(ctx context.Context) ([]types.Station, error) {
	stations, err := s.repository.ListStations(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "stations queried", "records", len(stations))
	return stations, nil
}

// TemperatureObservations returns every temperature reading in the lookback window.
func (s *Service) TemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error) {
	window, err := s.LookbackWindow(ctx)
	if err != nil {
		return nil, err
	}
	observations, err := s.repository.TemperatureObservationsInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "temperature observations queried",
		"start", window.StartString(),
		"end", window.EndString(),
		"records", len(observations),
	)
	return observations, nil
}

func (s *Service) TemperatureSummary(ctx context.Context, start, end time.Time) (types.TemperatureSummary, error) {
	summary, err := s.repository.TemperatureSummary(ctx, start, end)
	if err != nil {
		return types.TemperatureSummary{}, err
	}
	s.logger.InfoContext(ctx, "temperature summary queried",
		"start", start.Format(types.DateLayout),
		"end", end.Format(types.DateLayout),
		"empty", summary.Avg == nil,
	)
	return summary, nil
}

// TemperatureSummaryFrom summarizes from start through the latest observation.
func (s *Service) TemperatureSummaryFrom(ctx context.Context, start time.Time) (types.TemperatureSummary, error) {
	end, err := s.repository.LatestObservationDate(ctx)
	if err != nil {
		return types.TemperatureSummary{}, err
	}
	return s.TemperatureSummary(ctx, start, end)
}
