package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

func NewMux(db *sql.DB, staticDir string, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, db)
	registerMetrics(mux, gatherer)
	registerStatic(mux, staticDir)
	return mux
}

func registerStatic(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		return
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
}
