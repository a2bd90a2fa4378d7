// Package timedataset validates univariate time series and converts them to and from observation
// tables.
package timedataset

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aouyang1/go-forecast-eval/table"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMontonic        = errors.New("time feature is not monotonic")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
	ErrNullTime           = errors.New("null timestamp")
)

// TimeDataset represents a time series storing a slice of time points and values.
// Both must be of the same length.
type TimeDataset struct {
	T []time.Time
	Y []float64
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time and value slice. Time
// must be strictly increasing.
func NewUnivariateDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMontonic)
		}
	}

	td := &TimeDataset{
		T: make([]time.Time, len(t)),
		Y: make([]float64, len(y)),
	}
	copy(td.T, t)
	copy(td.Y, y)
	return td, nil
}

// FromTable reads the ds and y columns of an observation table.
func FromTable(df *dataframe.DataFrame) (*TimeDataset, error) {
	ts, err := table.TimeColumn(df, table.ColumnTime)
	if err != nil {
		return nil, err
	}
	y, err := table.Floats(df, table.ColumnObserved)
	if err != nil {
		return nil, err
	}

	t := make([]time.Time, len(ts.Values))
	for i, v := range ts.Values {
		if v == nil {
			return nil, fmt.Errorf("row %d, %w", i, ErrNullTime)
		}
		t[i] = *v
	}
	return NewUnivariateDataset(t, y)
}

// Table returns the dataset as an observation table.
func (td *TimeDataset) Table() (*dataframe.DataFrame, error) {
	return table.NewObservations(td.T, td.Y)
}

// Copy returns a deep copy of the dataset.
func (td *TimeDataset) Copy() *TimeDataset {
	tSeries := make([]time.Time, len(td.T))
	ySeries := make([]float64, len(td.Y))
	copy(tSeries, td.T)
	copy(ySeries, td.Y)
	return &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}
}

// DropNaN returns a dataset without the points whose value is NaN.
func (td *TimeDataset) DropNaN() *TimeDataset {
	res := &TimeDataset{
		T: make([]time.Time, 0, len(td.T)),
		Y: make([]float64, 0, len(td.Y)),
	}
	for i := range td.Y {
		if math.IsNaN(td.Y[i]) {
			continue
		}
		res.T = append(res.T, td.T[i])
		res.Y = append(res.Y, td.Y[i])
	}
	return res
}
