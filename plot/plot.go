// Package plot renders forecast tables as Apache Echarts line charts.
package plot

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aouyang1/go-forecast-eval/table"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

const timeLabelLayout = "2006-01-02 15:04:05"

// LineTSeries generates an echart multi-line chart for some arbitrary time/value combination. Each
// series in y must have the same length as t. NaN values are left as gaps.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	line.SetXAxis(timeLabels(t))
	for i, name := range seriesName {
		if i >= len(y) {
			break
		}
		line.AddSeries(name, lineData(y[i]))
	}
	return line
}

// LineForecast generates an echart line chart of a merged forecast table plotting the observed
// values along with the forecast, upper and lower values. Columns missing from the table are
// skipped.
func LineForecast(title, subtitle string, res *dataframe.DataFrame) (*charts.Line, error) {
	t, err := table.Times(res)
	if err != nil {
		return nil, fmt.Errorf("unable to read forecast times, %w", err)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    title,
				Subtitle: subtitle,
			},
		),
	)
	line.SetXAxis(timeLabels(t))

	series := []struct {
		name   string
		column string
	}{
		{"Actual", table.ColumnObserved},
		{"Forecast", table.ColumnForecast},
		{"Upper", table.ColumnUpper},
		{"Lower", table.ColumnLower},
	}
	for _, s := range series {
		vals, err := table.Floats(res, s.column)
		if err != nil {
			continue
		}
		line.AddSeries(s.name, lineData(vals))
	}
	return line, nil
}

// WritePage renders the charts as a single html page.
func WritePage(w io.Writer, c ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(c...)
	return page.Render(w)
}

func timeLabels(t []time.Time) []string {
	labels := make([]string, len(t))
	for i, tPnt := range t {
		labels[i] = tPnt.Format(timeLabelLayout)
	}
	return labels
}

func lineData(y []float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(y))
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			data = append(data, opts.LineData{Value: nil})
			continue
		}
		data = append(data, opts.LineData{Value: v})
	}
	return data
}
