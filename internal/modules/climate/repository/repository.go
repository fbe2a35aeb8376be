package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"climate-server/internal/db"
	"climate-server/internal/modules/climate/types"
)

// Schema is the DDL of the observation store. The service never executes it;
// it exists for fixtures.
//
//go:embed schema.sql
var Schema string

//go:embed sql/get-latest-observation-date.sql
var getLatestObservationDateSQL string

//go:embed sql/get-observations-in-range.sql
var getObservationsInRangeSQL string

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-temperature-observations.sql
var getTemperatureObservationsSQL string

//go:embed sql/get-temperature-summary.sql
var getTemperatureSummarySQL string

// ErrEmptyDataset is returned when the store holds no observations at all.
var ErrEmptyDataset = errors.New("no observations in dataset")

type ClimateRepository interface {
	LatestObservationDate(ctx context.Context) (time.Time, error)
	ObservationsInRange(ctx context.Context, start, end time.Time) ([]types.PrecipitationReading, error)
	ListStations(ctx context.Context) ([]types.Station, error)
	TemperatureObservationsInRange(ctx context.Context, start, end time.Time) ([]types.TemperatureObservation, error)
	TemperatureSummary(ctx context.Context, start, end time.Time) (types.TemperatureSummary, error)
}

type repositoryImpl struct {
	db      *sql.DB
	queries queries
}

type queries struct {
	latestDate   string
	observations string
	stations     string
	temperatures string
	summary      string
}

func NewRepository(conn *sql.DB, dialect db.Dialect) ClimateRepository {
	return &repositoryImpl{
		db: conn,
		queries: queries{
			latestDate:   dialect.Rebind(getLatestObservationDateSQL),
			observations: dialect.Rebind(getObservationsInRangeSQL),
			stations:     dialect.Rebind(getStationsSQL),
			temperatures: dialect.Rebind(getTemperatureObservationsSQL),
			summary:      dialect.Rebind(getTemperatureSummarySQL),
		},
	}
}

func (r *repositoryImpl) LatestObservationDate(ctx context.Context) (time.Time, error) {
	var latest sql.NullString
	if err := r.db.QueryRowContext(ctx, r.queries.latestDate).Scan(&latest); err != nil {
		return time.Time{}, fmt.Errorf("latest observation date: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, ErrEmptyDataset
	}
	t, err := time.Parse(types.DateLayout, latest.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse latest observation date %q: %w", latest.String, err)
	}
	return t, nil
}

func (r *repositoryImpl) ObservationsInRange(ctx context.Context, start, end time.Time) ([]types.PrecipitationReading, error) {
	rows, err := r.db.QueryContext(ctx, r.queries.observations, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("observations in range: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close observation rows", "error", err)
		}
	}()

	out := []types.PrecipitationReading{}
	for rows.Next() {
		var rec types.PrecipitationReading
		var prcp sql.NullFloat64
		if err := rows.Scan(&rec.Date, &prcp); err != nil {
			return nil, err
		}
		rec.Precipitation = nullableFloat(prcp)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) ListStations(ctx context.Context) ([]types.Station, error) {
	rows, err := r.db.QueryContext(ctx, r.queries.stations)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close stations rows", "error", err)
		}
	}()

	out := []types.Station{}
	for rows.Next() {
		var s types.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) TemperatureObservationsInRange(ctx context.Context, start, end time.Time) ([]types.TemperatureObservation, error) {
	rows, err := r.db.QueryContext(ctx, r.queries.temperatures, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("temperature observations in range: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close temperature rows", "error", err)
		}
	}()

	out := []types.TemperatureObservation{}
	for rows.Next() {
		var rec types.TemperatureObservation
		var tobs sql.NullFloat64
		if err := rows.Scan(&tobs, &rec.Date, &rec.StationID); err != nil {
			return nil, err
		}
		rec.Temperature = nullableFloat(tobs)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) TemperatureSummary(ctx context.Context, start, end time.Time) (types.TemperatureSummary, error) {
	var minT, avgT, maxT sql.NullFloat64
	err := r.db.QueryRowContext(ctx, r.queries.summary, formatDate(start), formatDate(end)).Scan(&minT, &avgT, &maxT)
	if err != nil {
		return types.TemperatureSummary{}, fmt.Errorf("temperature summary: %w", err)
	}
	return types.TemperatureSummary{
		Min: nullableFloat(minT),
		Avg: nullableFloat(avgT),
		Max: nullableFloat(maxT),
	}, nil
}

func formatDate(t time.Time) string {
	return t.Format(types.DateLayout)
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
