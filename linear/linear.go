// Package linear is a small additive regression forecaster. The series is decomposed into a
// linear trend, fourier seasonalities, holiday indicators and caller supplied regressors, fit with
// ordinary least squares. Uncertainty bounds are a constant band scaled from the training
// residual standard deviation.
package linear

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aouyang1/go-forecast-eval/plot"
	"github.com/aouyang1/go-forecast-eval/table"
	"github.com/aouyang1/go-forecast-eval/timedataset"
	"github.com/go-echarts/go-echarts/v2/components"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrInsufficientTrainingData = errors.New("insufficient training data after removing NaNs")
	ErrUntrainedModel           = errors.New("model has not been trained yet")
	ErrNoModelCoefficients      = errors.New("no model coefficients from fit")
	ErrNullRegressor            = errors.New("regressor has a null value")
)

// Model is a linear forecast model. It is not safe for concurrent use since Fit replaces the
// fitted state in place.
type Model struct {
	opt *Options

	// fitted state
	start        time.Time
	trendScale   float64
	seasonality  []seasonality
	labels       []string
	groups       map[string]Component
	coef         []float64
	intercept    float64
	sigma        float64
	trainEndTime time.Time
	trained      bool
}

// New creates a model with the given options. If none are provided a default is used.
func New(opt *Options) (*Model, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return &Model{opt: opt}, nil
}

// Fit trains the model on the ds and y columns of the observation table plus any configured
// regressor columns. Rows with a NaN y are ignored.
func (m *Model) Fit(observations *dataframe.DataFrame) error {
	td, err := timedataset.FromTable(observations)
	if err != nil {
		return fmt.Errorf("unable to read training data, %w", err)
	}
	regs, err := m.regressorValues(observations)
	if err != nil {
		return err
	}

	// drop rows without a target
	t := make([]time.Time, 0, len(td.T))
	y := make([]float64, 0, len(td.Y))
	keep := make([]int, 0, len(td.Y))
	for i := range td.Y {
		if math.IsNaN(td.Y[i]) {
			continue
		}
		t = append(t, td.T[i])
		y = append(y, td.Y[i])
		keep = append(keep, i)
	}
	if len(t) <= 1 {
		return ErrInsufficientTrainingData
	}
	for name, vals := range regs {
		kept := make([]float64, len(keep))
		for j, i := range keep {
			kept[j] = vals[i]
		}
		regs[name] = kept
	}

	m.trained = false
	m.start = t[0]
	m.trainEndTime = t[len(t)-1]
	m.trendScale = m.trainEndTime.Sub(m.start).Seconds()

	// only model seasonalities that complete at least one cycle over the training span
	m.seasonality = m.seasonality[:0]
	for _, s := range []seasonality{
		{name: "daily", period: secondsPerDay, orders: m.opt.DailyOrders},
		{name: "weekly", period: secondsPerWeek, orders: m.opt.WeeklyOrders},
		{name: "yearly", period: secondsPerYear, orders: m.opt.YearlyOrders},
	} {
		if s.orders > 0 && m.trendScale >= s.period {
			m.seasonality = append(m.seasonality, s)
		}
	}

	fs := m.features(t, regs)
	m.labels = m.labels[:0]
	m.groups = make(map[string]Component)
	for _, label := range fs.labels {
		if !informative(fs.cols[label]) {
			continue
		}
		m.labels = append(m.labels, label)
		m.groups[label] = fs.groups[label]
	}
	if len(m.labels)+1 > len(t) {
		return fmt.Errorf("%d features for %d points, %w", len(m.labels)+1, len(t), ErrInsufficientTrainingData)
	}

	x := designMatrix(fs, m.labels, len(t))
	var w mat.VecDense
	if err := w.SolveVec(x, mat.NewVecDense(len(y), y)); err != nil {
		return fmt.Errorf("unable to solve least squares, %w", err)
	}
	m.intercept = w.AtVec(0)
	m.coef = make([]float64, len(m.labels))
	for i := range m.coef {
		m.coef[i] = w.AtVec(i + 1)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &w)
	residual := make([]float64, len(y))
	for i := range y {
		residual[i] = y[i] - fitted.AtVec(i)
	}
	_, m.sigma = stat.MeanStdDev(residual, nil)
	m.trained = true
	return nil
}

// Predict generates yhat, yhat_lower and yhat_upper for every ds in the horizon table along with
// the trend, seasonality, holidays and regressors components.
func (m *Model) Predict(horizon *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	if !m.trained {
		return nil, ErrUntrainedModel
	}
	t, err := table.Times(horizon)
	if err != nil {
		return nil, fmt.Errorf("unable to read horizon times, %w", err)
	}
	regs, err := m.regressorValues(horizon)
	if err != nil {
		return nil, err
	}

	fs := m.features(t, regs)
	comps := make(map[Component][]float64, len(Components))
	for _, c := range Components {
		comps[c] = make([]float64, len(t))
	}
	for i := range t {
		comps[ComponentTrend][i] = m.intercept
	}
	for j, label := range m.labels {
		col := fs.cols[label]
		comp := comps[m.groups[label]]
		for i := range t {
			comp[i] += m.coef[j] * col[i]
		}
	}

	yhat := make([]float64, len(t))
	lower := make([]float64, len(t))
	upper := make([]float64, len(t))
	band := m.opt.IntervalZscore * m.sigma
	for i := range t {
		for _, c := range Components {
			yhat[i] += comps[c][i]
		}
		lower[i] = yhat[i] - band
		upper[i] = yhat[i] + band
	}

	series := []dataframe.Series{table.NewTimeSeries(table.ColumnTime, t)}
	for _, c := range Components {
		series = append(series, table.NewFloatSeries(string(c), comps[c]))
	}
	series = append(series,
		table.NewFloatSeries(table.ColumnLower, lower),
		table.NewFloatSeries(table.ColumnUpper, upper),
		table.NewFloatSeries(table.ColumnForecast, yhat),
	)
	return dataframe.NewDataFrame(series...), nil
}

// PlotComponents renders one chart per component of a prediction table to the configured
// ComponentsWriter. Without a writer this is a no-op.
func (m *Model) PlotComponents(predictions *dataframe.DataFrame) error {
	if m.opt.ComponentsWriter == nil {
		return nil
	}
	t, err := table.Times(predictions)
	if err != nil {
		return fmt.Errorf("unable to read prediction times, %w", err)
	}

	charts := make([]components.Charter, 0, len(Components))
	for _, c := range Components {
		vals, err := table.Floats(predictions, string(c))
		if err != nil {
			return fmt.Errorf("unable to read %s component, %w", c, err)
		}
		title := strings.ToUpper(string(c[:1])) + string(c[1:])
		charts = append(charts, plot.LineTSeries(title, []string{title}, t, [][]float64{vals}))
	}
	return plot.WritePage(m.opt.ComponentsWriter, charts...)
}

// Intercept returns the intercept of the fit.
func (m *Model) Intercept() float64 {
	return m.intercept
}

// Sigma returns the standard deviation of the training residual.
func (m *Model) Sigma() float64 {
	return m.sigma
}

// TrainEndTime returns the last training timestamp with a target value.
func (m *Model) TrainEndTime() time.Time {
	return m.trainEndTime
}

// Coefficients returns all coefficient weights keyed by feature label.
func (m *Model) Coefficients() (map[string]float64, error) {
	if len(m.labels) == 0 || len(m.coef) == 0 {
		return nil, ErrNoModelCoefficients
	}
	coef := make(map[string]float64, len(m.labels))
	for i, label := range m.labels {
		coef[label] = m.coef[i]
	}
	return coef, nil
}

// String represents the fit model as y ~ b + m1*x1 + m2*x2 ...
func (m *Model) String() string {
	if !m.trained {
		return "y ~ untrained"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "y ~ %.2f", m.intercept)
	for i, label := range m.labels {
		fmt.Fprintf(&sb, "%+.2f*%s", m.coef[i], label)
	}
	return sb.String()
}

func (m *Model) regressorValues(df *dataframe.DataFrame) (map[string][]float64, error) {
	regs := make(map[string][]float64, len(m.opt.Regressors))
	for _, name := range m.opt.Regressors {
		vals, err := table.Floats(df, name)
		if err != nil {
			return nil, fmt.Errorf("unable to read regressor, %w", err)
		}
		for i, v := range vals {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%s at row %d, %w", name, i, ErrNullRegressor)
			}
		}
		regs[name] = vals
	}
	return regs, nil
}

// features builds every candidate feature for the given times. The trend uses the training span
// so it must be called after the fit state is set.
func (m *Model) features(t []time.Time, regs map[string][]float64) *featureSet {
	fs := newFeatureSet()
	if m.opt.Growth {
		scale := m.trendScale
		if scale <= 0 {
			scale = 1.0
		}
		fs.add(string(ComponentTrend), ComponentTrend, trendFeature(t, m.start, scale))
	}
	for _, s := range m.seasonality {
		fourierFeatures(fs, t, s)
	}
	for _, hol := range m.opt.Holidays {
		fs.add(holidayLabel(hol), ComponentHolidays, holidayFeature(t, hol))
	}
	for _, name := range m.opt.Regressors {
		fs.add(regressorLabel(name), ComponentRegressors, regs[name])
	}
	return fs
}

// designMatrix lays out an intercept column followed by the labelled features.
func designMatrix(fs *featureSet, labels []string, n int) *mat.Dense {
	x := mat.NewDense(n, len(labels)+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1.0)
	}
	for j, label := range labels {
		col := fs.cols[label]
		for i := 0; i < n; i++ {
			x.Set(i, j+1, col[i])
		}
	}
	return x
}
