package controller

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"climate-server/internal/modules/climate/types"
)

// ClimateService is what the handlers need from the service layer.
type ClimateService interface {
	Precipitation(ctx context.Context) (map[string]*float64, error)
	Stations(ctx context.Context) ([]types.Station, error)
	TemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error)
	TemperatureSummary(ctx context.Context, start, end time.Time) (types.TemperatureSummary, error)
	TemperatureSummaryFrom(ctx context.Context, start time.Time) (types.TemperatureSummary, error)
}

type ClimateController interface {
	RegisterRoutes(r chi.Router)
}

type climateControllerImpl struct {
	service ClimateService
	logger  *slog.Logger
}

func NewClimateController(service ClimateService, logger *slog.Logger) ClimateController {
	if logger == nil {
		logger = slog.Default()
	}
	return &climateControllerImpl{service: service, logger: logger}
}

func (c *climateControllerImpl) RegisterRoutes(r chi.Router) {
	r.Get("/", c.handleIndex)
	r.Route(apiPrefix, func(r chi.Router) {
		r.Get("/precipitation", c.handlePrecipitation)
		r.Get("/stations", c.handleStations)
		r.Get("/tobs", c.handleTemperatureObservations)
		r.Get("/{start}", c.handleTemperatureFromStart)
		r.Get("/{start}/{end}", c.handleTemperatureRange)
	})
}
