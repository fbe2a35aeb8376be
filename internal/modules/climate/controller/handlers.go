package controller

import (
	"errors"
	"net/http"

	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/service"
	"climate-server/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, routeIndex)
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	precipitation, err := c.service.Precipitation(r.Context())
	if err != nil {
		c.writeServiceError(w, r, "precipitation", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, precipitation)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := c.service.Stations(r.Context())
	if err != nil {
		c.writeServiceError(w, r, "stations", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, stations)
}

func (c *climateControllerImpl) handleTemperatureObservations(w http.ResponseWriter, r *http.Request) {
	observations, err := c.service.TemperatureObservations(r.Context())
	if err != nil {
		c.writeServiceError(w, r, "tobs", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, observations)
}

func (c *climateControllerImpl) handleTemperatureFromStart(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateParam(r, "start")
	if err != nil {
		c.writeServiceError(w, r, "temperature from start", err)
		return
	}
	summary, err := c.service.TemperatureSummaryFrom(r.Context(), start)
	if err != nil {
		c.writeServiceError(w, r, "temperature from start", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (c *climateControllerImpl) handleTemperatureRange(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateParam(r, "start")
	if err != nil {
		c.writeServiceError(w, r, "temperature range", err)
		return
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		c.writeServiceError(w, r, "temperature range", err)
		return
	}
	summary, err := c.service.TemperatureSummary(r.Context(), start, end)
	if err != nil {
		c.writeServiceError(w, r, "temperature range", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// writeServiceError maps an error to its status. Only bad input and an empty
// store are reported to the client as-is.
func (c *climateControllerImpl) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var dateErr *service.DateError
	switch {
	case errors.As(err, &dateErr):
		c.logger.InfoContext(r.Context(), op+": bad date", "param", dateErr.Param, "raw", dateErr.Raw)
		utils.WriteError(w, http.StatusBadRequest, dateErr.Error())
	case errors.Is(err, repository.ErrEmptyDataset):
		c.logger.WarnContext(r.Context(), op+": store has no observations")
		utils.WriteError(w, http.StatusNotFound, "no observations available")
	default:
		c.logger.ErrorContext(r.Context(), op+" failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
