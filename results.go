package evaluator

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/aouyang1/go-forecast-eval/score"
	"github.com/aouyang1/go-forecast-eval/table"
	"github.com/goccy/go-json"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Results is a merged forecast table along with its aggregate error.
type Results struct {
	Table *dataframe.DataFrame

	// MeanMAPE is NaN when no row has a defined mape.
	MeanMAPE  float64
	Evaluated int // rows contributing to MeanMAPE
}

type resultsJSON struct {
	MeanMAPE  *float64         `json:"mean_mape"`
	Evaluated int              `json:"evaluated"`
	Rows      []map[string]any `json:"rows"`
}

func (r *Results) MarshalJSON() ([]byte, error) {
	rows, err := table.Rows(r.Table)
	if err != nil {
		return nil, err
	}
	out := resultsJSON{
		Evaluated: r.Evaluated,
		Rows:      rows,
	}
	if !math.IsNaN(r.MeanMAPE) && !math.IsInf(r.MeanMAPE, 0) {
		mean := r.MeanMAPE
		out.MeanMAPE = &mean
	}
	return json.Marshal(out)
}

// TablePrint writes a summary followed by the ds, y, yhat, mae and mape of every row.
func (r *Results) TablePrint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Rows: %d    Evaluated: %d    MAPE: %s\n",
		r.Table.NRows(), r.Evaluated, score.FormatMAPE(r.MeanMAPE)); err != nil {
		return err
	}

	cols := []string{table.ColumnTime, table.ColumnObserved, table.ColumnForecast, table.ColumnMAE, table.ColumnMAPE}
	rows, err := table.Rows(r.Table)
	if err != nil {
		return err
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, col := range cols {
		fmt.Fprintf(tbl, "%s\t", col)
	}
	fmt.Fprintln(tbl)
	for _, row := range rows {
		for _, col := range cols {
			switch v := row[col].(type) {
			case nil:
				fmt.Fprint(tbl, "-\t")
			case float64:
				fmt.Fprintf(tbl, "%.3f\t", v)
			default:
				fmt.Fprintf(tbl, "%v\t", v)
			}
		}
		fmt.Fprintln(tbl)
	}
	return tbl.Flush()
}
