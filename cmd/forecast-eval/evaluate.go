package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	evaluator "github.com/aouyang1/go-forecast-eval"
	"github.com/aouyang1/go-forecast-eval/linear"
	"github.com/aouyang1/go-forecast-eval/table"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/spf13/cobra"
)

var ErrUnknownProfile = errors.New("unknown profile mode")

type evaluateFlags struct {
	input      string
	future     string
	output     string
	plot       string
	components string
	noViz      bool
	profile    string
	profileDir string
}

func newEvaluateCmd(a *app) *cobra.Command {
	var f evaluateFlags

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Fit the model on the input csv and score its predictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop, err := startProfile(f.profile, f.profileDir)
			if err != nil {
				return err
			}
			defer stop()
			return a.evaluate(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "observation csv with ds, y and regressor columns")
	flags.StringVarP(&f.future, "future", "f", "", "horizon csv, defaults to the input timestamps")
	flags.StringVarP(&f.output, "output", "o", "", "write the result as .json or .csv instead of a table on stdout")
	flags.StringVar(&f.plot, "plot", "", "html file for the forecast fit chart")
	flags.StringVar(&f.components, "components", "", "html file for the model components chart")
	flags.BoolVar(&f.noViz, "no-viz", false, "skip chart rendering")
	flags.StringVar(&f.profile, "profile", "", "cpu or mem profiling")
	flags.StringVar(&f.profileDir, "profile-dir", ".", "directory for profile output")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func startProfile(mode, dir string) (func(), error) {
	var p func(*profile.Profile)
	switch mode {
	case "":
		return func() {}, nil
	case "cpu":
		p = profile.CPUProfile
	case "mem":
		p = profile.MemProfile
	default:
		return nil, fmt.Errorf("%q, %w", mode, ErrUnknownProfile)
	}
	return profile.Start(p, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook).Stop, nil
}

func (a *app) evaluate(cmd *cobra.Command, f evaluateFlags) error {
	log := a.log.With().Str("input", f.input).Logger()

	input, err := loadTable(cmd, f.input)
	if err != nil {
		return err
	}
	var future *dataframe.DataFrame
	if f.future != "" {
		if future, err = loadTable(cmd, f.future); err != nil {
			return err
		}
	}

	opt, err := a.cfg.Model.Options()
	if err != nil {
		return err
	}

	visualize := !f.noViz && (f.plot != "" || f.components != "")
	plotter := evaluator.Plotter(evaluator.DiscardPlotter{})
	if visualize {
		if f.components != "" {
			w, err := os.Create(f.components)
			if err != nil {
				return fmt.Errorf("unable to create components plot, %w", err)
			}
			defer w.Close()
			opt.ComponentsWriter = w
		}
		if f.plot != "" {
			w, err := os.Create(f.plot)
			if err != nil {
				return fmt.Errorf("unable to create forecast plot, %w", err)
			}
			defer w.Close()
			plotter = evaluator.NewHTMLPlotter(w, a.cfg.Plot.Title)
		}
	}

	m, err := linear.New(opt)
	if err != nil {
		return fmt.Errorf("unable to create model, %w", err)
	}

	e := evaluator.New(&evaluator.Options{
		Plotter: plotter,
		Report:  cmd.OutOrStdout(),
		Logger:  &log,
	})
	res, err := e.Evaluate(m, input, future, visualize)
	if err != nil {
		return err
	}
	log.Info().
		Int("rows", res.Table.NRows()).
		Int("evaluated", res.Evaluated).
		Float64("mean_mape", res.MeanMAPE).
		Stringer("model", m).
		Msg("evaluated forecast")

	if f.output == "" {
		return res.TablePrint(cmd.OutOrStdout())
	}
	return writeResults(cmd, f.output, res)
}

func loadTable(cmd *cobra.Command, path string) (*dataframe.DataFrame, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s, %w", path, err)
	}
	defer r.Close()

	df, err := table.LoadCSV(cmd.Context(), r)
	if err != nil {
		return nil, fmt.Errorf("unable to load %s, %w", path, err)
	}
	return df, nil
}

func writeResults(cmd *cobra.Command, path string, res *evaluator.Results) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s, %w", path, err)
	}
	defer w.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = table.WriteCSV(cmd.Context(), w, res.Table)
	default:
		err = writeJSON(w, res)
	}
	if err != nil {
		return fmt.Errorf("unable to write %s, %w", path, err)
	}
	return w.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
