package evaluator

import (
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Model is a forecasting model the evaluator can fit, predict with and ask for a component plot.
// Fit mutates the model in place. Predict must return a table with ds, yhat, yhat_lower and
// yhat_upper columns, one row per ds in the horizon.
type Model interface {
	Fit(observations *dataframe.DataFrame) error
	Predict(horizon *dataframe.DataFrame) (*dataframe.DataFrame, error)
	PlotComponents(predictions *dataframe.DataFrame) error
}
