package chart

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"airquality-server/internal/modules/airquality/types"
)

var (
	ErrNoData        = errors.New("chart: figure has no points")
	ErrUnknownFormat = errors.New("chart: unknown format")
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

const (
	defaultWidth  = 960
	defaultHeight = 440
)

// Dark palette close to the plotly_dark template.
var (
	darkBackground = drawing.ColorFromHex("111111")
	darkForeground = drawing.ColorFromHex("F2F5FA")
	darkAxis       = drawing.ColorFromHex("506784")
)

// Render draws the figure as a line chart in the requested format.
func Render(w io.Writer, fig Figure, format Format) error {
	provider, err := rendererFor(format)
	if err != nil {
		return err
	}
	if fig.Empty() {
		return ErrNoData
	}

	graph := buildChart(fig, format)
	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", format, err)
	}
	return nil
}

func rendererFor(format Format) (gochart.RendererProvider, error) {
	switch format {
	case FormatSVG:
		return gochart.SVG, nil
	case FormatPNG:
		return gochart.PNG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

func buildChart(fig Figure, format Format) gochart.Chart {
	textStyle := gochart.Style{FontColor: darkForeground}
	axisStyle := gochart.Style{FontColor: darkForeground, StrokeColor: darkAxis, StrokeWidth: 1}

	// The PNG rasteriser's font has no Persian glyphs and does no shaping, so
	// raster charts carry only Latin text. SVG text is drawn by the browser.
	title, xName := fig.Title, fig.XAxis.Label
	if format == FormatPNG {
		title, xName = fig.YAxis.Label, ""
	}

	graph := gochart.Chart{
		Title:      title,
		TitleStyle: textStyle,
		Width:      defaultWidth,
		Height:     defaultHeight,
		Background: gochart.Style{
			FillColor: darkBackground,
			Padding:   gochart.Box{Top: 56, Left: 24, Right: 32, Bottom: 16},
		},
		Canvas: gochart.Style{FillColor: darkBackground},
		XAxis: gochart.XAxis{
			Name:           xName,
			NameStyle:      textStyle,
			Style:          axisStyle,
			ValueFormatter: gochart.TimeValueFormatterWithFormat(types.DateLayout),
		},
		YAxis: gochart.YAxis{
			Name:      fig.YAxis.Label,
			NameStyle: textStyle,
			Style:     axisStyle,
		},
		YAxisSecondary: gochart.YAxis{Style: gochart.Style{Hidden: true}},
	}

	var xs []time.Time
	var ys []float64
	for _, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		sx := make([]time.Time, len(s.Points))
		sy := make([]float64, len(s.Points))
		for i, p := range s.Points {
			sx[i] = p.X
			sy[i] = p.Y
		}
		xs = append(xs, sx...)
		ys = append(ys, sy...)
		graph.Series = append(graph.Series, gochart.TimeSeries{
			Name:    s.Name,
			Style:   seriesStyle(s),
			XValues: sx,
			YValues: sy,
		})
	}

	// A single timestamp or a flat line gives the axes a zero delta, which
	// go-chart refuses to draw.
	xr, padded := paddedTimeRange(xs)
	if padded {
		graph.XAxis.Range = xr
	}
	graph.XAxis.Ticks = dayTicks(xs, xr)
	if yr, ok := paddedValueRange(ys); ok {
		graph.YAxis.Range = yr
	}

	return graph
}

func seriesStyle(s Series) gochart.Style {
	color := drawing.ColorFromHex(strings.TrimPrefix(s.Color, "#"))
	st := gochart.Style{
		StrokeColor: color,
		StrokeWidth: s.LineWidth,
	}
	if s.Markers {
		st.DotColor = color
		st.DotWidth = s.LineWidth + 2
	}
	return st
}

// dayTicks places one labelled tick on each distinct day. A padded range
// gets unlabelled ticks at its ends so the axis spans more than one tick.
func dayTicks(xs []time.Time, padded *gochart.ContinuousRange) []gochart.Tick {
	seen := make(map[time.Time]bool, len(xs))
	days := make([]time.Time, 0, len(xs))
	for _, t := range xs {
		if seen[t] {
			continue
		}
		seen[t] = true
		days = append(days, t)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	ticks := make([]gochart.Tick, 0, len(days)+2)
	if padded != nil {
		ticks = append(ticks, gochart.Tick{Value: padded.Min})
	}
	for _, d := range days {
		ticks = append(ticks, gochart.Tick{
			Value: gochart.TimeToFloat64(d),
			Label: d.Format(types.DateLayout),
		})
	}
	if padded != nil {
		ticks = append(ticks, gochart.Tick{Value: padded.Max})
	}
	return ticks
}

func paddedTimeRange(xs []time.Time) (*gochart.ContinuousRange, bool) {
	if len(xs) == 0 {
		return nil, false
	}
	lo, hi := xs[0], xs[0]
	for _, t := range xs[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	if hi.After(lo) {
		return nil, false
	}
	return &gochart.ContinuousRange{
		Min: gochart.TimeToFloat64(lo.Add(-12 * time.Hour)),
		Max: gochart.TimeToFloat64(hi.Add(12 * time.Hour)),
	}, true
}

func paddedValueRange(ys []float64) (*gochart.ContinuousRange, bool) {
	if len(ys) == 0 {
		return nil, false
	}
	lo, hi := ys[0], ys[0]
	for _, v := range ys[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi > lo {
		return nil, false
	}
	return &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}, true
}
