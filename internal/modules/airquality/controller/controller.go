package controller

import (
	"net/http"

	"airquality-server/internal/modules/airquality/service"
)

type AirQualityController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type airQualityControllerImpl struct {
	service service.AirQualityService
}

func NewAirQualityController(service service.AirQualityService) AirQualityController {
	return &airQualityControllerImpl{service: service}
}

func (c *airQualityControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", c.handleDashboard)
	mux.HandleFunc("GET /partials/parameter", c.handleParameterPartial)

	mux.HandleFunc("GET /api/v1/parameters", c.handleParameters)
	mux.HandleFunc("GET /api/v1/parameters/{name}", c.handleParameter)
	mux.HandleFunc("GET /api/v1/parameters/{name}/{file}", c.handleChart)
	mux.HandleFunc("GET /api/v1/dataset", c.handleDataset)
}
