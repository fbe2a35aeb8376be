package climate

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"climate-server/internal/db"
	"climate-server/internal/modules/climate/controller"
	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/service"
)

func RegisterFeature(r chi.Router, conn *sql.DB, dialect db.Dialect, logger *slog.Logger) {
	climateRepository := repository.NewRepository(conn, dialect)
	climateService := service.NewService(climateRepository, logger)
	climateController := controller.NewClimateController(climateService, logger)
	climateController.RegisterRoutes(r)
}
