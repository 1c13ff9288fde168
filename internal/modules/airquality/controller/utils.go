package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"airquality-server/internal/modules/airquality/chart"
	"airquality-server/internal/modules/airquality/service"
	"airquality-server/internal/modules/airquality/types"
	"airquality-server/internal/modules/airquality/views"
)

const parameterQueryKey = "parameter"

var errUnknownChartFile = errors.New("unknown chart file")

// selectedParameter returns the dropdown value for the full page: the query
// parameter when it names a known column, otherwise the default.
func selectedParameter(r *http.Request, params []types.Parameter) string {
	name := r.URL.Query().Get(parameterQueryKey)
	for _, p := range params {
		if p.Name == name {
			return name
		}
	}
	return service.DefaultParameter
}

// partialParameter reads the parameter for the HTMX fragment. Only a missing
// value falls back to the default; any other value is passed through as is.
func partialParameter(r *http.Request) string {
	q := r.URL.Query()
	if !q.Has(parameterQueryKey) {
		return service.DefaultParameter
	}
	return q.Get(parameterQueryKey)
}

// parseChartFile accepts "chart.svg" and "chart.png".
func parseChartFile(file string) (chart.Format, error) {
	ext, ok := strings.CutPrefix(file, "chart.")
	if !ok {
		return "", fmt.Errorf("%w %q", errUnknownChartFile, file)
	}
	format, err := chart.ParseFormat(ext)
	if err != nil || string(format) != ext {
		return "", fmt.Errorf("%w %q", errUnknownChartFile, file)
	}
	return format, nil
}

func buildOptions(params []types.Parameter, selected string) []views.ParameterOption {
	opts := make([]views.ParameterOption, 0, len(params))
	for _, p := range params {
		opts = append(opts, views.ParameterOption{Name: p.Name, Selected: p.Name == selected})
	}
	return opts
}

func buildPanel(u service.Update) views.ParameterPanel {
	panel := views.ParameterPanel{
		Parameter: u.Parameter,
		Known:     u.Known,
		Analysis:  u.Analysis,
	}
	if !u.Known {
		return panel
	}
	panel.Title = u.Figure.Title
	panel.ChartURL = views.ChartURL(u.Parameter, string(chart.FormatSVG))
	panel.PNGURL = views.ChartURL(u.Parameter, string(chart.FormatPNG))
	for _, s := range u.Figure.Series {
		for _, p := range s.Points {
			panel.Rows = append(panel.Rows, views.ValueRow{
				Date:  p.X.Format(types.DateLayout),
				Value: p.Y,
			})
		}
	}
	return panel
}
