package controller

import (
	"io"
	"log/slog"
	"net/http"

	"airquality-server/internal/modules/airquality/chart"
	"airquality-server/internal/modules/airquality/views"
	"airquality-server/internal/utils"
)

const htmlContentType = "text/html; charset=utf-8"

func (c *airQualityControllerImpl) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	params, err := c.service.Parameters(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "dashboard: get parameters failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load parameters")
		return
	}
	selected := selectedParameter(r, params)

	update, err := c.service.Update(ctx, selected)
	if err != nil {
		slog.ErrorContext(ctx, "dashboard: update failed", "parameter", selected, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load parameter")
		return
	}

	data := views.DashboardData{
		Options: buildOptions(params, selected),
		Panel:   buildPanel(update),
	}
	err = utils.WriteRendered(w, htmlContentType, func(out io.Writer) error {
		return views.RenderDashboard(out, &data)
	})
	if err != nil {
		slog.ErrorContext(ctx, "dashboard template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
	}
}

func (c *airQualityControllerImpl) handleParameterPartial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := partialParameter(r)

	update, err := c.service.Update(ctx, name)
	if err != nil {
		slog.ErrorContext(ctx, "parameter partial: update failed", "parameter", name, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load parameter")
		return
	}
	if !update.Known {
		slog.WarnContext(ctx, "parameter partial: unknown parameter", "parameter", name)
	}

	panel := buildPanel(update)
	err = utils.WriteRendered(w, htmlContentType, func(out io.Writer) error {
		return views.RenderParameterPartial(out, &panel)
	})
	if err != nil {
		slog.ErrorContext(ctx, "parameter partial render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render")
	}
}

func (c *airQualityControllerImpl) handleParameters(w http.ResponseWriter, r *http.Request) {
	params, err := c.service.Parameters(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, params)
}

func (c *airQualityControllerImpl) handleParameter(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		utils.WriteError(w, http.StatusBadRequest, "missing parameter name")
		return
	}

	update, err := c.service.Update(r.Context(), name)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !update.Known {
		utils.WriteError(w, http.StatusNotFound, "unknown parameter "+name)
		return
	}
	utils.WriteJSON(w, http.StatusOK, update)
}

func (c *airQualityControllerImpl) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	format, err := parseChartFile(r.PathValue("file"))
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	update, err := c.service.Update(ctx, name)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !update.Known {
		utils.WriteError(w, http.StatusNotFound, "unknown parameter "+name)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	err = utils.WriteRendered(w, format.ContentType(), func(out io.Writer) error {
		return chart.Render(out, update.Figure, format)
	})
	if err != nil {
		w.Header().Del("Cache-Control")
		slog.ErrorContext(ctx, "chart render failed", "parameter", name, "format", format, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render chart")
	}
}

func (c *airQualityControllerImpl) handleDataset(w http.ResponseWriter, r *http.Request) {
	table, err := c.service.Dataset(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, table)
}
