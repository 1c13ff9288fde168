package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"airquality-server/internal/config"
)

func NewServer(cfg config.Config, mux *http.ServeMux, logger *slog.Logger, metrics *Metrics) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           requestLogger(mux, logger, metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
