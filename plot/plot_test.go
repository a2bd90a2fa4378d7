package plot

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/aouyang1/go-forecast-eval/table"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineForecast(t *testing.T) {
	ts := []time.Time{
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	res := dataframe.NewDataFrame(
		table.NewTimeSeries(table.ColumnTime, ts),
		table.NewFloatSeries(table.ColumnObserved, []float64{10, math.NaN()}),
		table.NewFloatSeries(table.ColumnForecast, []float64{9, 22}),
	)

	line, err := LineForecast("Forecast Fit", "y ~ 1.00", res)
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, WritePage(&buf, line))
	out := buf.String()
	assert.Contains(t, out, "Forecast Fit")
	assert.Contains(t, out, "2021-01-02 00:00:00")
	assert.Contains(t, out, "Actual")
	assert.NotContains(t, out, "Upper")
}

func TestLineForecastNoTime(t *testing.T) {
	res := dataframe.NewDataFrame(table.NewFloatSeries(table.ColumnForecast, []float64{1}))
	_, err := LineForecast("Forecast Fit", "", res)
	assert.ErrorIs(t, err, table.ErrColumnNotFound)
}

func TestLineTSeries(t *testing.T) {
	ts := []time.Time{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)}
	line := LineTSeries("Components", []string{"Trend", "Seasonality", "Extra"}, ts, [][]float64{{1}, {2}})

	var buf bytes.Buffer
	require.Nil(t, WritePage(&buf, line))
	assert.Contains(t, buf.String(), "Seasonality")
	assert.NotContains(t, buf.String(), "Extra")
}

func TestLineData(t *testing.T) {
	data := lineData([]float64{1, math.NaN(), math.Inf(-1)})
	require.Len(t, data, 3)
	assert.Equal(t, 1.0, data[0].Value)
	assert.Nil(t, data[1].Value)
	assert.Nil(t, data[2].Value)
}
