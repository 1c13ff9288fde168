package httpapi

import (
	"database/sql"
	"log/slog"
	"net/http"

	"airquality-server/internal/utils"
)

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	db *sql.DB
}

func NewHealthchecker(db *sql.DB) healthchecker {
	return &healthcheckerImpl{db: db}
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	// Counting a seeded table also catches an in-memory store that was dropped.
	var parameters int
	if err := h.db.QueryRowContext(r.Context(), `SELECT COUNT(*) FROM parameters`).Scan(&parameters); err != nil {
		slog.ErrorContext(r.Context(), "failed to check database connectivity", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to check database connectivity")
		return
	}
	if parameters == 0 {
		slog.ErrorContext(r.Context(), "dataset is empty")
		utils.WriteError(w, http.StatusServiceUnavailable, "dataset is empty")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func registerHealthcheck(mux *http.ServeMux, db *sql.DB) {
	healthchecker := NewHealthchecker(db)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}
