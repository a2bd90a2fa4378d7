package evaluator_test

import (
	"fmt"
	"math"
	"os"
	"time"

	evaluator "github.com/aouyang1/go-forecast-eval"
	"github.com/aouyang1/go-forecast-eval/linear"
	"github.com/aouyang1/go-forecast-eval/table"
	"github.com/aouyang1/go-forecast-eval/timedataset"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

func ExampleEvaluator_Evaluate() {
	start := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	t := timedataset.GenerateT(3*24, time.Hour, func() time.Time { return start.Add(3 * 24 * time.Hour) })

	y := make(timedataset.Series, len(t))
	y.Add(timedataset.GenerateConstY(len(t), 100.0)).
		Add(timedataset.GenerateWaveY(t, 5.0, 86400.0, 1.0, 0.0))

	input, err := table.NewObservations(t, y)
	if err != nil {
		panic(err)
	}

	// the horizon is the last day of the input with no target column
	future := dataframe.NewDataFrame(table.NewTimeSeries(table.ColumnTime, t[len(t)-24:]))

	m, err := linear.New(&linear.Options{
		DailyOrders:    1,
		IntervalZscore: linear.DefaultIntervalZscore,
	})
	if err != nil {
		panic(err)
	}

	e := evaluator.New(&evaluator.Options{Report: os.Stdout})
	res, err := e.Evaluate(m, input, future, false)
	if err != nil {
		panic(err)
	}
	fmt.Printf("rows: %d, evaluated: %d, within 1e-6: %t\n", res.Table.NRows(), res.Evaluated, math.Abs(res.MeanMAPE) < 1e-6)
	// Output:
	// Mean Absolute Percentage Error of forecasts: 0
	// rows: 24, evaluated: 24, within 1e-6: true
}
