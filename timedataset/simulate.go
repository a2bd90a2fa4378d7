package timedataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateT returns n points spaced by interval ending one interval before the minute truncated
// now.
func GenerateT(n int, interval time.Duration, nowFunc func() time.Time) []time.Time {
	t := make([]time.Time, 0, n)
	ct := time.Unix(nowFunc().Unix()/60*60, 0).Add(-time.Duration(n) * interval).UTC()
	for i := 0; i < n; i++ {
		t = append(t, ct.Add(interval*time.Duration(i)))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func (s Series) SetConst(t []time.Time, val float64, start, end time.Time) Series {
	for i := range s {
		if (t[i].After(start) || t[i].Equal(start)) && t[i].Before(end) {
			s[i] = val
		}
	}
	return s
}

func (s Series) MaskWithWeekend(t []time.Time) Series {
	for i := range s {
		switch t[i].Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			s[i] = 0.0
		}
	}
	return s
}

func (s Series) MaskWithTimeRange(start, end time.Time, t []time.Time) Series {
	for i := range s {
		if t[i].Before(start) || t[i].After(end) {
			s[i] = 0.0
		}
	}
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

func GenerateWaveY(t []time.Time, amp, periodSec, order, timeOffset float64) Series {
	y := make([]float64, 0, len(t))
	for i := range t {
		y = append(y, amp*math.Sin(2.0*math.Pi*order/periodSec*(float64(t[i].Unix())+timeOffset)))
	}
	return Series(y)
}

// GenerateNoise draws gaussian noise whose scale oscillates with the given period. A nil rng uses
// the global source.
func GenerateNoise(rng *rand.Rand, t []time.Time, noiseScale, amp, periodSec, order, timeOffset float64) Series {
	norm := rand.NormFloat64
	if rng != nil {
		norm = rng.NormFloat64
	}
	y := make([]float64, 0, len(t))
	for i := range t {
		scale := noiseScale + amp*math.Sin(2.0*math.Pi*order/periodSec*(float64(t[i].Unix())+timeOffset))
		y = append(y, norm()*scale)
	}
	return Series(y)
}

// GenerateChange adds a level shift of bias plus a per minute slope starting at chpt.
func GenerateChange(t []time.Time, chpt time.Time, bias, slope float64) Series {
	y := make([]float64, len(t))
	for i := range t {
		if t[i].After(chpt) || t[i].Equal(chpt) {
			y[i] = bias + slope*t[i].Sub(chpt).Minutes()
		}
	}
	return Series(y)
}
