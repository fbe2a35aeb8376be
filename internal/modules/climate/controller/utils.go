package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"climate-server/internal/modules/climate/service"
)

const apiPrefix = "/api/v1.0"

// routeIndex is served verbatim by GET /.
var routeIndex = map[string]string{
	"Precipitation":        apiPrefix + "/precipitation",
	"Stations":             apiPrefix + "/stations",
	"tobs":                 apiPrefix + "/tobs",
	"temperatureRange":     apiPrefix + "/<start>/<end>",
	"temperatureFromStart": apiPrefix + "/<start>",
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	return service.ParseDate(name, chi.URLParam(r, name))
}
