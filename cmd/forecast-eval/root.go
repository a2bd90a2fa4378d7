package main

import (
	"fmt"
	"io"

	"github.com/aouyang1/go-forecast-eval/internal/config"
	"github.com/aouyang1/go-forecast-eval/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by the subcommands once the root pre-run has loaded it.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "forecast-eval",
		Short:         "forecast-eval scores a forecasting model against observed values",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer == nil {
				return nil
			}
			return a.closer.Close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./forecast-eval.yaml)")
	flags.String("log-level", "", "log level overriding logging.level")
	flags.String("log-format", "", "json or console, overriding logging.format")
	flags.String("log-output", "", "stdout, stderr or a file path, overriding logging.output")
	for key, flag := range map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
		"logging.output": "log-output",
	} {
		// BindPFlag only fails on a nil flag
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newEvaluateCmd(a), newSimulateCmd(a))
	return rootCmd
}

func (a *app) load() error {
	cfg, err := config.LoadViper(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("unable to create logger, %w", err)
	}
	a.cfg = cfg
	a.log = log
	a.closer = closer
	a.log.Debug().Str("config", a.v.ConfigFileUsed()).Msg("loaded configuration")
	return nil
}
