package timedataset

import (
	"errors"
	"time"
)

var ErrCannotInferFreq = errors.New("cannot infer frequency from time")

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}
	return t[len(t)-1]
}

// EstimateFreq returns the most common delta between consecutive points. Ties go to the smaller
// delta.
func (t TimeSlice) EstimateFreq() (time.Duration, error) {
	if len(t) < 2 {
		return 0, ErrCannotInferFreq
	}

	frequencies := make(map[time.Duration]int)
	for i := 1; i < len(t); i++ {
		frequencies[t[i].Sub(t[i-1])] += 1
	}

	var maxCnt int
	var maxDelta time.Duration
	for delta, cnt := range frequencies {
		if cnt > maxCnt || (cnt == maxCnt && delta < maxDelta) {
			maxCnt = cnt
			maxDelta = delta
		}
	}
	if maxDelta <= 0 {
		return 0, ErrCannotInferFreq
	}
	return maxDelta, nil
}

// Extend returns the input times followed by n more points spaced by the estimated frequency.
func (t TimeSlice) Extend(n int) (TimeSlice, error) {
	freq, err := t.EstimateFreq()
	if err != nil {
		return nil, err
	}
	res := make(TimeSlice, len(t), len(t)+n)
	copy(res, t)
	end := t.EndTime()
	for i := 1; i <= n; i++ {
		res = append(res, end.Add(time.Duration(i)*freq))
	}
	return res, nil
}
