package evaluator

import (
	"fmt"
	"io"

	"github.com/aouyang1/go-forecast-eval/plot"
	"github.com/aouyang1/go-forecast-eval/table"
	"github.com/go-echarts/go-echarts/v2/components"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Plotter renders a model and its merged forecast table.
type Plotter interface {
	Render(m Model, result *dataframe.DataFrame) error
}

// PlotterFunc adapts a function to a Plotter.
type PlotterFunc func(m Model, result *dataframe.DataFrame) error

// Render calls f(m, result).
func (f PlotterFunc) Render(m Model, result *dataframe.DataFrame) error {
	return f(m, result)
}

// DiscardPlotter renders nothing, for batch and headless use.
type DiscardPlotter struct{}

// Render does nothing.
func (DiscardPlotter) Render(Model, *dataframe.DataFrame) error {
	return nil
}

// HTMLPlotter writes an Apache Echarts page with the forecast fit and the absolute error. If the
// model implements fmt.Stringer its description is used as the chart subtitle.
type HTMLPlotter struct {
	w     io.Writer
	title string
}

// NewHTMLPlotter writes pages to w. An empty title defaults to "Forecast Fit".
func NewHTMLPlotter(w io.Writer, title string) *HTMLPlotter {
	if title == "" {
		title = "Forecast Fit"
	}
	return &HTMLPlotter{w: w, title: title}
}

// Render writes one html page per call.
func (p *HTMLPlotter) Render(m Model, result *dataframe.DataFrame) error {
	var subtitle string
	if s, ok := m.(fmt.Stringer); ok {
		subtitle = s.String()
	}

	fit, err := plot.LineForecast(p.title, subtitle, result)
	if err != nil {
		return fmt.Errorf("unable to plot forecast, %w", err)
	}
	charts := []components.Charter{fit}

	if mae, err := table.Floats(result, table.ColumnMAE); err == nil {
		t, err := table.Times(result)
		if err != nil {
			return err
		}
		charts = append(charts, plot.LineTSeries("Absolute Error", []string{"MAE"}, t, [][]float64{mae}))
	}
	return plot.WritePage(p.w, charts...)
}
