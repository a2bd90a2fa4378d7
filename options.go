package evaluator

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Options configures the side effects of an evaluation.
type Options struct {
	// Plotter renders the merged result when visualization is requested.
	Plotter Plotter

	// Report receives the one line mean absolute percentage error summary.
	Report io.Writer

	Logger *zerolog.Logger
}

// NewDefaultOptions reports to stdout, discards plots and does not log.
func NewDefaultOptions() *Options {
	nop := zerolog.Nop()
	return &Options{
		Plotter: DiscardPlotter{},
		Report:  os.Stdout,
		Logger:  &nop,
	}
}

func (o *Options) withDefaults() *Options {
	def := NewDefaultOptions()
	if o == nil {
		return def
	}
	res := *o
	if res.Plotter == nil {
		res.Plotter = def.Plotter
	}
	if res.Report == nil {
		res.Report = def.Report
	}
	if res.Logger == nil {
		res.Logger = def.Logger
	}
	return &res
}
