package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"retail-dashboard/internal/errors"
	"retail-dashboard/internal/models"
	"retail-dashboard/internal/presentation"
	"retail-dashboard/internal/services"
)

const (
	chartWidth  = 1024
	chartHeight = 480
)

// ChartHandlers renders the dashboard charts as PNG images, for clients
// that cannot run the browser renderer.
type ChartHandlers struct {
	api     *APIHandlers
	profile presentation.Profile
	logger  *slog.Logger
}

func NewChartHandlers(analytics *services.Analytics, profile presentation.Profile, logger *slog.Logger) *ChartHandlers {
	return &ChartHandlers{
		api:     NewAPIHandlers(analytics, logger),
		profile: profile,
		logger:  logger,
	}
}

func (h *ChartHandlers) HandleMonthlySales(w http.ResponseWriter, r *http.Request) {
	view, ok := h.api.view(w, r)
	if !ok {
		return
	}

	graph, err := monthlySalesChart(h.profile.Labels.MonthlySales, view.MonthlySales)
	if err != nil {
		h.api.fail(w, r, err)
		return
	}
	h.writePNG(w, r, graph)
}

func (h *ChartHandlers) HandleRatings(w http.ResponseWriter, r *http.Request) {
	view, ok := h.api.view(w, r)
	if !ok {
		return
	}

	bins := services.Histogram(view.Ratings.Values, view.Ratings.Bins)
	if len(bins) == 0 {
		h.api.fail(w, r, errors.NoData("No ratings in the current selection"))
		return
	}
	h.writePNG(w, r, ratingChart(h.profile.Labels.RatingHistogram, bins))
}

type renderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// writePNG renders fully before writing so a failed render still gets a
// JSON error response.
func (h *ChartHandlers) writePNG(w http.ResponseWriter, r *http.Request, graph renderer) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		h.api.fail(w, r, errors.InternalWrap(err, "Chart could not be rendered"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("write chart", "error", err, "path", r.URL.Path)
	}
}

// monthlySalesChart needs at least two months: a single x value has no range.
func monthlySalesChart(title string, ts models.TimeSeries) (*chart.Chart, error) {
	months := make(map[models.Month]struct{})
	lo, hi := math.Inf(1), math.Inf(-1)
	series := make([]chart.Series, 0, len(ts.Series))
	for i, s := range ts.Series {
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = p.Month.Time()
			ys[j] = p.Total.InexactFloat64()
			lo, hi = min(lo, ys[j]), max(hi, ys[j])
			months[p.Month] = struct{}{}
		}
		series = append(series, chart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
				DotColor:    chart.GetDefaultColor(i),
				DotWidth:    4,
			},
		})
	}
	if len(months) < 2 {
		return nil, errors.NoData(fmt.Sprintf("Need at least two months of sales to draw a line, have %d", len(months)))
	}

	graph := &chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return presentation.Number(f)
				}
				return ""
			},
		},
		Series: series,
	}
	// A flat line still needs a non-empty value range.
	if lo == hi {
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph, nil
}

func ratingChart(title string, bins []models.Bin) *chart.BarChart {
	bars := make([]chart.Value, len(bins))
	peak := 1
	for i, b := range bins {
		peak = max(peak, b.Count)
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.1f", b.Lower),
		}
	}
	return &chart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   32,
		BarSpacing: 12,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak)},
		},
		Bars: bars,
	}
}
