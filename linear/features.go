package linear

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aouyang1/go-forecast-eval/table"
	"github.com/rickar/cal/v2"
	"gonum.org/v1/gonum/stat"
)

// Component groups feature columns for the prediction table and the component plot.
type Component string

const (
	ComponentTrend       Component = "trend"
	ComponentSeasonality Component = "seasonality"
	ComponentHolidays    Component = "holidays"
	ComponentRegressors  Component = "regressors"
)

// Components lists the component columns in prediction table order.
var Components = []Component{ComponentTrend, ComponentSeasonality, ComponentHolidays, ComponentRegressors}

var reservedColumns = map[string]struct{}{
	table.ColumnTime:             {},
	table.ColumnObserved:         {},
	table.ColumnForecast:         {},
	table.ColumnLower:            {},
	table.ColumnUpper:            {},
	table.ColumnMAE:              {},
	table.ColumnMAPE:             {},
	string(ComponentTrend):       {},
	string(ComponentSeasonality): {},
	string(ComponentHolidays):    {},
	string(ComponentRegressors):  {},
}

const (
	secondsPerDay  = 86400.0
	secondsPerWeek = 7 * secondsPerDay
	secondsPerYear = 365.25 * secondsPerDay

	// a feature with less spread than this over the training set carries no information
	minFeatureStdDev = 1e-9
)

type seasonality struct {
	name   string
	period float64 // seconds
	orders int
}

type featureSet struct {
	labels []string
	groups map[string]Component
	cols   map[string][]float64
}

func newFeatureSet() *featureSet {
	return &featureSet{
		groups: make(map[string]Component),
		cols:   make(map[string][]float64),
	}
}

func (fs *featureSet) add(label string, group Component, col []float64) {
	if _, exists := fs.cols[label]; !exists {
		fs.labels = append(fs.labels, label)
	}
	fs.groups[label] = group
	fs.cols[label] = col
}

// trendFeature scales time onto [0, 1] over the training span. Points outside the span
// extrapolate linearly.
func trendFeature(t []time.Time, start time.Time, scale float64) []float64 {
	feat := make([]float64, len(t))
	for i, tPnt := range t {
		feat[i] = tPnt.Sub(start).Seconds() / scale
	}
	return feat
}

func fourierFeatures(fs *featureSet, t []time.Time, s seasonality) {
	for order := 1; order <= s.orders; order++ {
		sinFeat := make([]float64, len(t))
		cosFeat := make([]float64, len(t))
		for i, tPnt := range t {
			phase := 2.0 * math.Pi * float64(order) * float64(tPnt.Unix()) / s.period
			sinFeat[i] = math.Sin(phase)
			cosFeat[i] = math.Cos(phase)
		}
		fs.add(fmt.Sprintf("%s_%dsin", s.name, order), ComponentSeasonality, sinFeat)
		fs.add(fmt.Sprintf("%s_%dcos", s.name, order), ComponentSeasonality, cosFeat)
	}
}

func holidayLabel(hol *cal.Holiday) string {
	return "holiday_" + strings.ToLower(strings.ReplaceAll(hol.Name, " ", "_"))
}

// holidayFeature is 1 on the observed day of the holiday in the location of each point.
func holidayFeature(t []time.Time, hol *cal.Holiday) []float64 {
	observedByYear := make(map[int]time.Time)
	feat := make([]float64, len(t))
	for i, tPnt := range t {
		year, month, day := tPnt.Date()
		observed, exists := observedByYear[year]
		if !exists {
			_, observed = hol.Calc(year)
			observedByYear[year] = observed
		}
		oYear, oMonth, oDay := observed.Date()
		if oYear == year && oMonth == month && oDay == day {
			feat[i] = 1.0
		}
	}
	return feat
}

func regressorLabel(name string) string {
	return "regressor_" + name
}

// informative reports whether a feature varies over the training set.
func informative(col []float64) bool {
	if len(col) < 2 {
		return false
	}
	return stat.StdDev(col, nil) > minFeatureStdDev
}
