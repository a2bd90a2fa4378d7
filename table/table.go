// Package table holds the column conventions and relational helpers used to move observations,
// predictions and error metrics around as dataframes.
package table

import (
	"errors"
	"fmt"
	"math"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Column names shared by observation, prediction and merged tables.
const (
	ColumnTime     = "ds"
	ColumnObserved = "y"
	ColumnForecast = "yhat"
	ColumnLower    = "yhat_lower"
	ColumnUpper    = "yhat_upper"
	ColumnMAE      = "mae"
	ColumnMAPE     = "mape"
)

// PredictionColumns are the prediction table columns carried into a merge.
var PredictionColumns = []string{ColumnTime, ColumnForecast, ColumnLower, ColumnUpper}

var (
	ErrNilTable          = errors.New("nil table")
	ErrColumnNotFound    = errors.New("column not found")
	ErrNotTimeColumn     = errors.New("column is not a time series")
	ErrNotFloatColumn    = errors.New("column is not a float series")
	ErrColumnLenMismatch = errors.New("column length does not match table rows")
)

// Column returns the series with the given name.
func Column(df *dataframe.DataFrame, name string) (dataframe.Series, error) {
	if df == nil {
		return nil, ErrNilTable
	}
	idx, err := df.NameToColumn(name)
	if err != nil {
		return nil, fmt.Errorf("%s, %w", name, ErrColumnNotFound)
	}
	return df.Series[idx], nil
}

// TimeColumn returns the named column as a time series.
func TimeColumn(df *dataframe.DataFrame, name string) (*dataframe.SeriesTime, error) {
	s, err := Column(df, name)
	if err != nil {
		return nil, err
	}
	ts, ok := s.(*dataframe.SeriesTime)
	if !ok {
		return nil, fmt.Errorf("%s has type %s, %w", name, s.Type(), ErrNotTimeColumn)
	}
	return ts, nil
}

// FloatColumn returns the named column as a float64 series.
func FloatColumn(df *dataframe.DataFrame, name string) (*dataframe.SeriesFloat64, error) {
	s, err := Column(df, name)
	if err != nil {
		return nil, err
	}
	fs, ok := s.(*dataframe.SeriesFloat64)
	if !ok {
		return nil, fmt.Errorf("%s has type %s, %w", name, s.Type(), ErrNotFloatColumn)
	}
	return fs, nil
}

// Times returns a copy of the ds column. Null timestamps are returned as the zero time.
func Times(df *dataframe.DataFrame) ([]time.Time, error) {
	ts, err := TimeColumn(df, ColumnTime)
	if err != nil {
		return nil, err
	}
	t := make([]time.Time, len(ts.Values))
	for i, v := range ts.Values {
		if v != nil {
			t[i] = *v
		}
	}
	return t, nil
}

// Floats returns a copy of a float column where nulls are NaN.
func Floats(df *dataframe.DataFrame, name string) ([]float64, error) {
	fs, err := FloatColumn(df, name)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, len(fs.Values))
	copy(vals, fs.Values)
	return vals, nil
}

// NewTimeSeries builds a ds style time column.
func NewTimeSeries(name string, t []time.Time) *dataframe.SeriesTime {
	s := dataframe.NewSeriesTime(name, &dataframe.SeriesInit{Capacity: len(t)})
	for i := range t {
		tPnt := t[i]
		s.Values = append(s.Values, &tPnt)
	}
	return s
}

// NewFloatSeries builds a float column, copying the input values.
func NewFloatSeries(name string, vals []float64) *dataframe.SeriesFloat64 {
	s := dataframe.NewSeriesFloat64(name, nil)
	s.Values = make([]float64, len(vals))
	copy(s.Values, vals)
	return s
}

// NewObservations creates an observation table with ds and y columns.
func NewObservations(t []time.Time, y []float64) (*dataframe.DataFrame, error) {
	if len(t) != len(y) {
		return nil, fmt.Errorf("time has length %d and values have length %d, %w", len(t), len(y), ErrColumnLenMismatch)
	}
	return dataframe.NewDataFrame(
		NewTimeSeries(ColumnTime, t),
		NewFloatSeries(ColumnObserved, y),
	), nil
}

// Select copies the named columns, in the given order, into a new table.
func Select(df *dataframe.DataFrame, names ...string) (*dataframe.DataFrame, error) {
	series := make([]dataframe.Series, 0, len(names))
	for _, name := range names {
		s, err := Column(df, name)
		if err != nil {
			return nil, err
		}
		series = append(series, s.Copy())
	}
	return dataframe.NewDataFrame(series...), nil
}

// AddFloatColumn appends a float column to the table in place.
func AddFloatColumn(df *dataframe.DataFrame, name string, vals []float64) error {
	if df == nil {
		return ErrNilTable
	}
	if n := df.NRows(); n != len(vals) {
		return fmt.Errorf("%s has %d values for %d rows, %w", name, len(vals), n, ErrColumnLenMismatch)
	}
	return df.AddSeries(NewFloatSeries(name, vals), nil)
}

// Rows returns one map per row keyed by column name. Nulls and NaNs are nil and timestamps are
// RFC3339 formatted, which keeps the output json encodable.
func Rows(df *dataframe.DataFrame) ([]map[string]any, error) {
	if df == nil {
		return nil, ErrNilTable
	}
	n := df.NRows()
	rows := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, len(df.Series))
		for _, s := range df.Series {
			row[s.Name()] = cell(s, i)
		}
		rows[i] = row
	}
	return rows, nil
}

func cell(s dataframe.Series, row int) any {
	switch cs := s.(type) {
	case *dataframe.SeriesFloat64:
		v := cs.Values[row]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case *dataframe.SeriesTime:
		v := cs.Values[row]
		if v == nil {
			return nil
		}
		return v.Format(time.RFC3339Nano)
	}
	return s.Value(row)
}
