// Package score computes per row and aggregate forecast errors. Missing values are represented
// as NaN and never contribute to an aggregate.
package score

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

var ErrResLenMismatch = errors.New("predicted and actual have different lengths")

// MAE computes the absolute error |yhat - y| per row. Rows where either side is missing are NaN.
func MAE(predicted, actual []float64) ([]float64, error) {
	if len(predicted) != len(actual) {
		return nil, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}
	mae := make([]float64, len(actual))
	for i := range actual {
		mae[i] = math.Abs(predicted[i] - actual[i])
	}
	return mae, nil
}

// MAPE computes the absolute percentage error mae / y per row. The error is undefined when the
// actual value is zero or missing and those rows are NaN.
func MAPE(mae, actual []float64) ([]float64, error) {
	if len(mae) != len(actual) {
		return nil, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(mae), ErrResLenMismatch)
	}
	mape := make([]float64, len(actual))
	for i := range actual {
		if actual[i] == 0 || math.IsNaN(actual[i]) || math.IsNaN(mae[i]) {
			mape[i] = math.NaN()
			continue
		}
		mape[i] = mae[i] / actual[i]
	}
	return mape, nil
}

// Mean averages the defined values and returns how many contributed. If nothing is defined the
// mean is NaN.
func Mean(vals []float64) (float64, int) {
	defined := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		defined = append(defined, v)
	}
	if len(defined) == 0 {
		return math.NaN(), 0
	}
	return stat.Mean(defined, nil), len(defined)
}

// Round rounds half away from zero to the number of decimal places.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

// FormatMAPE renders a mean absolute percentage error rounded to 4 decimal places.
func FormatMAPE(mape float64) string {
	return strconv.FormatFloat(Round(mape, 4), 'f', -1, 64)
}
