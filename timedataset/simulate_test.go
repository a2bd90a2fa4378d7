package timedataset

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(1970, 1, 8, 0, 0, 0, 0, time.UTC)
}

func TestGenerateT(t *testing.T) {
	numPnts := 7
	res := GenerateT(numPnts, 24*time.Hour, fixedNow)
	assert.Len(t, res, numPnts)

	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), res[0])
	assert.Equal(t, time.Date(1970, 1, 7, 0, 0, 0, 0, time.UTC), res[numPnts-1])
}

func TestSeries(t *testing.T) {
	numPnts := 7
	tSeries := GenerateT(numPnts, 24*time.Hour, fixedNow)

	s := GenerateConstY(numPnts, 1).Add(GenerateConstY(numPnts, 2))
	require.Equal(t, Series{3, 3, 3, 3, 3, 3, 3}, s)

	s.SetConst(tSeries, 2.0,
		time.Date(1970, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(1970, 1, 5, 0, 0, 0, 0, time.UTC),
	)
	assert.Equal(t, Series{3, 3, 2, 2, 3, 3, 3}, s)

	// 1970-01-03 and 1970-01-04 are the weekend
	s.MaskWithWeekend(tSeries)
	assert.Equal(t, Series{0, 0, 2, 2, 0, 0, 0}, s)

	s.Add(GenerateConstY(numPnts, 1))
	s.MaskWithTimeRange(
		time.Date(1970, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(1970, 1, 5, 0, 0, 0, 0, time.UTC),
		tSeries,
	)
	assert.Equal(t, Series{0, 0, 3, 3, 1, 0, 0}, s)
}

func TestGenerateWaveY(t *testing.T) {
	tSeries := []time.Time{time.Unix(0, 0), time.Unix(21600, 0), time.Unix(43200, 0)}
	y := GenerateWaveY(tSeries, 2.0, 86400.0, 1.0, 0.0)
	assert.InDeltaSlice(t, []float64{0, 2, 0}, []float64(y), 1e-9)
}

func TestGenerateChange(t *testing.T) {
	tSeries := GenerateT(4, time.Minute, fixedNow)
	y := GenerateChange(tSeries, tSeries[2], 10.0, 1.0)
	assert.Equal(t, Series{0, 0, 10, 11}, y)
}

func TestGenerateNoiseSeeded(t *testing.T) {
	tSeries := GenerateT(16, time.Minute, fixedNow)
	a := GenerateNoise(rand.New(rand.NewPCG(1, 2)), tSeries, 1.0, 0.0, 86400.0, 1.0, 0.0)
	b := GenerateNoise(rand.New(rand.NewPCG(1, 2)), tSeries, 1.0, 0.0, 86400.0, 1.0, 0.0)
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}
