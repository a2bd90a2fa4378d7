// Package evaluator fits a forecasting model, predicts over a horizon and scores the predictions
// against ground truth. The model, the table layer and the plotting are all delegated; the
// evaluator only sequences them and attaches error metrics.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-forecast-eval/score"
	"github.com/aouyang1/go-forecast-eval/table"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// ErrNilModel is returned when Evaluate is called without a model.
var ErrNilModel = errors.New("nil model")

// mergeOutputs are produced by MergeForecast and never read from the actual table.
var mergeOutputs = map[string]struct{}{
	table.ColumnForecast: {},
	table.ColumnLower:    {},
	table.ColumnUpper:    {},
	table.ColumnMAE:      {},
	table.ColumnMAPE:     {},
}

// Evaluator runs fit, predict and scoring for a model. It holds no state between calls.
type Evaluator struct {
	opt *Options
}

// New creates an Evaluator. Nil options, or nil fields, fall back to NewDefaultOptions.
func New(opt *Options) *Evaluator {
	return &Evaluator{opt: opt.withDefaults()}
}

// MergeForecast right joins the actual table onto the ds, yhat, yhat_lower and yhat_upper columns
// of the forecast. Every forecast row is kept in order, y is null where no actual exists and
// actual rows without a forecast are dropped. Stale yhat, yhat_lower, yhat_upper, mae and mape
// columns on actual are ignored so a merged table can be merged again. The mae and mape columns
// are appended.
func MergeForecast(actual, forecast *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	pred, err := table.Select(forecast, table.PredictionColumns...)
	if err != nil {
		return nil, fmt.Errorf("unable to select prediction columns, %w", err)
	}
	if actual == nil {
		return nil, table.ErrNilTable
	}

	actualCols := make([]string, 0, len(actual.Series))
	for _, name := range actual.Names() {
		if _, exists := mergeOutputs[name]; exists {
			continue
		}
		actualCols = append(actualCols, name)
	}
	actual, err = table.Select(actual, actualCols...)
	if err != nil {
		return nil, err
	}

	merged, err := table.Join(actual, pred, table.ColumnTime, table.JoinRight)
	if err != nil {
		return nil, fmt.Errorf("unable to merge forecast with actual, %w", err)
	}

	y, err := table.Floats(merged, table.ColumnObserved)
	if err != nil {
		return nil, err
	}
	yhat, err := table.Floats(merged, table.ColumnForecast)
	if err != nil {
		return nil, err
	}
	mae, err := score.MAE(yhat, y)
	if err != nil {
		return nil, err
	}
	mape, err := score.MAPE(mae, y)
	if err != nil {
		return nil, err
	}
	if err := table.AddFloatColumn(merged, table.ColumnMAE, mae); err != nil {
		return nil, err
	}
	if err := table.AddFloatColumn(merged, table.ColumnMAPE, mape); err != nil {
		return nil, err
	}
	return merged, nil
}

// MergeForecast is the package level MergeForecast.
func (e *Evaluator) MergeForecast(actual, forecast *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	return MergeForecast(actual, forecast)
}

// TestModel fits the model on input, predicts over future, or over input when future is nil, and
// returns the horizon table with the prediction and error columns attached. Columns of the
// horizon win over merged columns of the same name so extra regressors pass through unchanged.
// The mean absolute percentage error is written to the report writer and, when visualize is set,
// the result and the model components are plotted.
func (e *Evaluator) TestModel(model Model, input, future *dataframe.DataFrame, visualize bool) (*dataframe.DataFrame, error) {
	res, err := e.Evaluate(model, input, future, visualize)
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}

// TestModel runs an evaluation with default options.
func TestModel(model Model, input, future *dataframe.DataFrame, visualize bool) (*dataframe.DataFrame, error) {
	return New(nil).TestModel(model, input, future, visualize)
}

// Evaluate is TestModel returning the aggregate error along with the table.
func (e *Evaluator) Evaluate(model Model, input, future *dataframe.DataFrame, visualize bool) (*Results, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	log := e.opt.Logger

	log.Debug().Int("rows", nrows(input)).Msg("fitting model")
	if err := model.Fit(input); err != nil {
		return nil, fmt.Errorf("unable to fit model, %w", err)
	}

	horizon := future
	if horizon == nil {
		horizon = input
	}

	log.Debug().Int("rows", nrows(horizon)).Bool("in_sample", future == nil).Msg("predicting horizon")
	prediction, err := model.Predict(horizon)
	if err != nil {
		return nil, fmt.Errorf("unable to predict horizon, %w", err)
	}

	merged, err := MergeForecast(input, prediction)
	if err != nil {
		return nil, err
	}

	result, err := table.Join(horizon, merged, table.ColumnTime, table.JoinLeft)
	if err != nil {
		return nil, fmt.Errorf("unable to join horizon with forecast, %w", err)
	}

	mape, err := table.Floats(result, table.ColumnMAPE)
	if err != nil {
		return nil, err
	}
	mean, evaluated := score.Mean(mape)
	log.Debug().Int("evaluated", evaluated).Int("rows", result.NRows()).Msg("scored forecast")
	if _, err := fmt.Fprintf(e.opt.Report, "Mean Absolute Percentage Error of forecasts: %s\n", score.FormatMAPE(mean)); err != nil {
		return nil, err
	}

	if visualize {
		if err := e.opt.Plotter.Render(model, result); err != nil {
			return nil, fmt.Errorf("unable to render forecast, %w", err)
		}
		if err := model.PlotComponents(prediction); err != nil {
			return nil, fmt.Errorf("unable to plot model components, %w", err)
		}
	}

	return &Results{
		Table:     result,
		MeanMAPE:  mean,
		Evaluated: evaluated,
	}, nil
}

func nrows(df *dataframe.DataFrame) int {
	if df == nil {
		return 0
	}
	return df.NRows()
}
