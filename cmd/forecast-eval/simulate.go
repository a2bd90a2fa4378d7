package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/aouyang1/go-forecast-eval/table"
	"github.com/aouyang1/go-forecast-eval/timedataset"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

type simulateFlags struct {
	points    int
	interval  time.Duration
	end       string
	out       string
	horizon   int
	future    string
	seed      uint64
	noise     float64
	regressor string
	regStart  string
	regEnd    string

	outageStart string
	outageEnd   string
	outageValue float64
}

func newSimulateCmd(a *app) *cobra.Command {
	var f simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write a synthetic daily and weekly seasonal series as csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.simulate(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.points, "points", "n", 14*24, "number of observations")
	flags.DurationVar(&f.interval, "interval", time.Hour, "spacing between observations")
	flags.StringVar(&f.end, "end", "", "timestamp after the last observation, defaults to now")
	flags.StringVarP(&f.out, "out", "o", "observations.csv", "observation csv")
	flags.IntVar(&f.horizon, "horizon", 0, "points on each side of the end of the observations written to the future csv")
	flags.StringVar(&f.future, "future", "future.csv", "future csv, written when horizon is positive")
	flags.Uint64Var(&f.seed, "seed", 1, "noise seed")
	flags.Float64Var(&f.noise, "noise", 1.0, "noise standard deviation")
	flags.StringVar(&f.regressor, "regressor", "", "name of a weekend indicator regressor column to add")
	flags.StringVar(&f.regStart, "regressor-start", "", "first timestamp the regressor can be active, defaults to the series start")
	flags.StringVar(&f.regEnd, "regressor-end", "", "last timestamp the regressor can be active, defaults to the series end")
	flags.StringVar(&f.outageStart, "outage-start", "", "start of a window where y is held at --outage-value")
	flags.StringVar(&f.outageEnd, "outage-end", "", "exclusive end of the outage window, defaults to the series end")
	flags.Float64Var(&f.outageValue, "outage-value", 0.0, "y during the outage window")
	return cmd
}

func (a *app) simulate(cmd *cobra.Command, f simulateFlags) error {
	if f.points <= 0 {
		return fmt.Errorf("points must be positive, got %d", f.points)
	}
	if f.horizon < 0 || f.horizon > f.points {
		return fmt.Errorf("horizon must be between 0 and %d, got %d", f.points, f.horizon)
	}

	end := time.Now()
	if f.end != "" {
		var err error
		if end, err = table.ParseTime(f.end); err != nil {
			return err
		}
	}

	// the series runs past the observations so the future table can extend beyond them
	n := f.points + f.horizon
	t := timedataset.GenerateT(n, f.interval, func() time.Time { return end.Add(time.Duration(f.horizon) * f.interval) })

	rng := rand.New(rand.NewPCG(f.seed, f.seed))
	y := make(timedataset.Series, n)
	y.Add(timedataset.GenerateConstY(n, 100.0)).
		Add(timedataset.GenerateWaveY(t, 10.0, 86400.0, 1.0, 0.0)).
		Add(timedataset.GenerateWaveY(t, 4.0, 86400.0, 2.0, 3*60*60)).
		Add(timedataset.GenerateWaveY(t, 6.0, 7*86400.0, 1.0, 0.0)).
		Add(timedataset.GenerateNoise(rng, t, f.noise, 0.0, 86400.0, 1.0, 0.0))

	var reg timedataset.Series
	if f.regressor != "" {
		start, end, err := window(t, f.regStart, f.regEnd)
		if err != nil {
			return fmt.Errorf("unable to parse regressor window, %w", err)
		}
		reg = timedataset.GenerateConstY(n, 1.0).
			MaskWithWeekend(t).
			MaskWithTimeRange(start, end, t)
		floats.AddScaled(y, 8.0, reg)
	}
	if f.outageStart != "" {
		start, end, err := window(t, f.outageStart, f.outageEnd)
		if err != nil {
			return fmt.Errorf("unable to parse outage window, %w", err)
		}
		if f.outageEnd == "" {
			end = end.Add(f.interval)
		}
		y.SetConst(t, f.outageValue, start, end)
	}

	obs, err := table.NewObservations(t[:f.points], y[:f.points])
	if err != nil {
		return err
	}
	if reg != nil {
		if err := table.AddFloatColumn(obs, f.regressor, reg[:f.points]); err != nil {
			return err
		}
	}
	if err := writeTable(cmd, f.out, obs); err != nil {
		return err
	}
	a.log.Info().Str("path", f.out).Int("rows", f.points).Msg("wrote observations")

	if f.horizon == 0 {
		return nil
	}
	lo, hi := f.points-f.horizon, f.points+f.horizon
	future := dataframe.NewDataFrame(table.NewTimeSeries(table.ColumnTime, t[lo:hi]))
	if reg != nil {
		if err := table.AddFloatColumn(future, f.regressor, reg[lo:hi]); err != nil {
			return err
		}
	}
	if err := writeTable(cmd, f.future, future); err != nil {
		return err
	}
	a.log.Info().Str("path", f.future).Int("rows", hi-lo).Msg("wrote future")
	return nil
}

// window parses optional start and end timestamps, defaulting to the first and last of t.
func window(t []time.Time, start, end string) (time.Time, time.Time, error) {
	lo, hi := t[0], t[len(t)-1]
	var err error
	if start != "" {
		if lo, err = table.ParseTime(start); err != nil {
			return lo, hi, err
		}
	}
	if end != "" {
		if hi, err = table.ParseTime(end); err != nil {
			return lo, hi, err
		}
	}
	return lo, hi, nil
}

func writeTable(cmd *cobra.Command, path string, df *dataframe.DataFrame) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s, %w", path, err)
	}
	defer w.Close()

	if err := table.WriteCSV(cmd.Context(), w, df); err != nil {
		return fmt.Errorf("unable to write %s, %w", path, err)
	}
	return w.Close()
}
