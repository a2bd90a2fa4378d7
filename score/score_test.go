package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMAE(t *testing.T) {
	testData := map[string]struct {
		predicted []float64
		actual    []float64
		expected  []float64
		err       error
	}{
		"basic": {
			predicted: []float64{9, 22},
			actual:    []float64{10, 20},
			expected:  []float64{1, 2},
		},
		"missing actual": {
			predicted: []float64{9, 22},
			actual:    []float64{math.NaN(), 20},
			expected:  []float64{math.NaN(), 2},
		},
		"length mismatch": {
			predicted: []float64{1},
			actual:    []float64{1, 2},
			err:       ErrResLenMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := MAE(td.predicted, td.actual)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			require.Len(t, res, len(td.expected))
			for i := range td.expected {
				if math.IsNaN(td.expected[i]) {
					assert.True(t, math.IsNaN(res[i]))
					continue
				}
				assert.InDelta(t, td.expected[i], res[i], 1e-9)
			}
		})
	}
}

func TestMAPE(t *testing.T) {
	testData := map[string]struct {
		mae      []float64
		actual   []float64
		expected []float64
		err      error
	}{
		"basic": {
			mae:      []float64{1, 2},
			actual:   []float64{10, 20},
			expected: []float64{0.1, 0.1},
		},
		"zero actual is undefined": {
			mae:      []float64{1, 0},
			actual:   []float64{0, 0},
			expected: []float64{math.NaN(), math.NaN()},
		},
		"negative actual keeps sign": {
			mae:      []float64{1},
			actual:   []float64{-4},
			expected: []float64{-0.25},
		},
		"length mismatch": {
			mae:    []float64{1},
			actual: []float64{},
			err:    ErrResLenMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := MAPE(td.mae, td.actual)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			require.Len(t, res, len(td.expected))
			for i := range td.expected {
				if math.IsNaN(td.expected[i]) {
					assert.True(t, math.IsNaN(res[i]))
					continue
				}
				assert.InDelta(t, td.expected[i], res[i], 1e-9)
			}
		})
	}
}

func TestMean(t *testing.T) {
	mean, n := Mean([]float64{0.1, math.NaN(), 0.3, math.Inf(1)})
	assert.InDelta(t, 0.2, mean, 1e-9)
	assert.Equal(t, 2, n)

	mean, n = Mean([]float64{math.NaN()})
	assert.True(t, math.IsNaN(mean))
	assert.Equal(t, 0, n)
}

func TestFormatMAPE(t *testing.T) {
	testData := map[string]struct {
		input    float64
		expected string
	}{
		"exact":   {input: 0.1, expected: "0.1"},
		"rounded": {input: 0.123456, expected: "0.1235"},
		"zero":    {input: 0, expected: "0"},
		"nan":     {input: math.NaN(), expected: "NaN"},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, FormatMAPE(td.input))
		})
	}
}
