package chart

import (
	"fmt"
	"time"

	"airquality-server/internal/modules/airquality/types"
)

const (
	TypeLine  = "line"
	ThemeDark = "dark"

	// DateField is the x column of every figure.
	DateField = "date"
	dateLabel = "تاریخ"

	lineColor = "#FFA500"
	lineWidth = 3
)

// Figure is a renderer-agnostic chart description. It is served as JSON and
// rendered to SVG/PNG by Render.
type Figure struct {
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	Theme  string   `json:"theme"`
	XAxis  Axis     `json:"xAxis"`
	YAxis  Axis     `json:"yAxis"`
	Series []Series `json:"series"`
}

type Axis struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// Series plots one dataset column against the x field.
type Series struct {
	Name      string  `json:"name"`
	Column    string  `json:"column"`
	Color     string  `json:"color"`
	LineWidth float64 `json:"lineWidth"`
	Markers   bool    `json:"markers"`
	Points    []Point `json:"points"`
}

type Point struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
}

// Title returns the chart title for a parameter.
func Title(parameter string) string {
	return fmt.Sprintf("مقدار %s در طول زمان", parameter)
}

// NewLineFigure plots the parameter column against date. Measurements must
// already be in date order.
func NewLineFigure(parameter string, measurements []types.Measurement) Figure {
	points := make([]Point, 0, len(measurements))
	for _, m := range measurements {
		points = append(points, Point{X: m.Date, Y: m.Value})
	}

	return Figure{
		Type:  TypeLine,
		Title: Title(parameter),
		Theme: ThemeDark,
		XAxis: Axis{Field: DateField, Label: dateLabel},
		YAxis: Axis{Field: parameter, Label: parameter},
		Series: []Series{{
			Name:      parameter,
			Column:    parameter,
			Color:     lineColor,
			LineWidth: lineWidth,
			Markers:   true,
			Points:    points,
		}},
	}
}

// Empty reports whether the figure has nothing to plot.
func (f Figure) Empty() bool {
	for _, s := range f.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}
