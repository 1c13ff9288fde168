package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strconv"
)

var dashboardTmpl *template.Template

var funcs = template.FuncMap{
	"value": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}

// loadTemplatesFromFS loads dashboard templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	dashboardTmpl = tmpl
	return nil
}

// LoadTemplates loads embedded dashboard templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// ParameterOption is one entry of the parameter dropdown.
type ParameterOption struct {
	Name     string
	Selected bool
}

// ParameterPanel is the view model for the chart and analysis area.
type ParameterPanel struct {
	Parameter string
	Known     bool
	Title     string
	ChartURL  string
	PNGURL    string
	Analysis  string
	Rows      []ValueRow
}

// ValueRow is one day of the selected parameter.
type ValueRow struct {
	Date  string
	Value float64
}

type DashboardData struct {
	Options []ParameterOption
	Panel   ParameterPanel
}

// ChartURL returns the path of the rendered chart for a parameter.
func ChartURL(parameter, ext string) string {
	return "/api/v1/parameters/" + url.PathEscape(parameter) + "/chart." + ext
}

func RenderDashboard(w io.Writer, data *DashboardData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}

// RenderParameterPartial executes only the parameter panel into w.
// Served to the dropdown's HTMX change request.
func RenderParameterPartial(w io.Writer, data *ParameterPanel) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "partials/parameter.html", data)
}
