package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateFreq(t *testing.T) {
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

	testData := map[string]struct {
		t        TimeSlice
		expected time.Duration
		err      error
	}{
		"too few points": {
			t:   TimeSlice{start},
			err: ErrCannotInferFreq,
		},
		"regular": {
			t:        TimeSlice{start, start.Add(time.Minute), start.Add(2 * time.Minute)},
			expected: time.Minute,
		},
		"gap": {
			t: TimeSlice{
				start,
				start.Add(time.Minute),
				start.Add(2 * time.Minute),
				start.Add(10 * time.Minute),
			},
			expected: time.Minute,
		},
		"tie picks smaller": {
			t:        TimeSlice{start, start.Add(2 * time.Minute), start.Add(3 * time.Minute)},
			expected: time.Minute,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := td.t.EstimateFreq()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestExtend(t *testing.T) {
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := TimeSlice{start, start.Add(time.Hour)}

	res, err := ts.Extend(2)
	require.Nil(t, err)
	assert.Equal(t, TimeSlice{start, start.Add(time.Hour), start.Add(2 * time.Hour), start.Add(3 * time.Hour)}, res)
	assert.Equal(t, start, res.StartTime())
	assert.Equal(t, start.Add(3*time.Hour), res.EndTime())

	_, err = TimeSlice{}.Extend(1)
	assert.ErrorIs(t, err, ErrCannotInferFreq)
}
