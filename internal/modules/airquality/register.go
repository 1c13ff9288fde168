package airquality

import (
	"database/sql"
	"log/slog"
	"net/http"

	"airquality-server/internal/modules/airquality/controller"
	"airquality-server/internal/modules/airquality/repository"
	"airquality-server/internal/modules/airquality/service"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	airQualityRepository := repository.NewRepository(db)
	airQualityService := service.NewService(airQualityRepository, logger.With("module", "airquality"))
	airQualityController := controller.NewAirQualityController(airQualityService)
	airQualityController.RegisterRoutes(mux)
}
