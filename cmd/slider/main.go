// Command slider derives the effort tables of the slider exercise and
// exports, checks, stores and inspects them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/edwinlock/resource-allocation-tool/internal/config"
	"github.com/edwinlock/resource-allocation-tool/internal/logging"
	"github.com/edwinlock/resource-allocation-tool/internal/store"
)

// #region app
// app holds state shared by every subcommand of one invocation.
type app struct {
	configPath string
	dbPath     string
	logMode    string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

// exitError carries a specific process exit code: 1 for failed checks and
// divergent replays, 2 for usage errors.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

func mismatchErr(format string, args ...any) error {
	return &exitError{code: 1, err: fmt.Errorf(format, args...)}
}

// openStore opens the run database named by --db or the config.
func (a *app) openStore() (*store.Store, error) {
	path := a.dbPath
	if path == "" {
		path = a.cfg.Output.DB
	}
	s, err := store.NewStore(path, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", path, err)
	}
	return s, nil
}

// #endregion app

// #region root
func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "slider",
		Short: "Derive and report the slider exercise effort tables",
		Long: `slider builds the full parameter grid of the slider exercise, evaluates
the production function and effort levels for every cell, and writes the
resulting tables as CSV, plots, terminal tables or rows in a run database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			mode := cfg.Log.Mode
			if a.logMode != "" {
				mode = a.logMode
			}
			logger, err := logging.New(mode, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &exitError{code: 2, err: err}
	})

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (or set "+config.EnvConfig+")")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "run database path (or set "+config.EnvDB+")")
	root.PersistentFlags().StringVar(&a.logMode, "log-mode", "", "logger mode: development or production")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newRunCmd(a),
		newCompareCmd(a),
		newCheckCmd(a),
		newReplayCmd(a),
		newOutcomesCmd(a),
		newInspectCmd(a),
		newFixtureExportCmd(a),
		newConfigCmd(a),
	)
	return root
}

// #endregion root

// #region main
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

// #endregion main
