package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/patrikhermansson/vdist/core"
	"github.com/patrikhermansson/vdist/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app carries the state shared by every sub-command.
type app struct {
	cfg        config.Config
	configPath string
	envFiles   []string
	debug      bool
}

// NewRootCommand builds the vdist command tree.
func NewRootCommand() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:           "vdist",
		Short:         "Compute distances and similarities between numeric vectors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "Environment files to load before reading settings")

	root.AddCommand(
		newDistanceCommand(a),
		newCompareCommand(a),
		newRandomCommand(a),
		newMatrixCommand(a),
		newNearestCommand(a),
		newCheckCommand(),
	)
	return root
}

// setup loads the environment and settings, configures logging, and
// validates the environment. The check command reports problems itself.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFiles(a.envFiles...); err != nil {
		return err
	}
	core.ConfigureLogging()
	if a.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if cmd.Name() == checkCommandName {
		return nil
	}
	if _, err := core.ValidateEnvironment(); err != nil {
		return err
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// VDIST_LOG already overrides the file in config.Load; --debug wins over both.
	level, err := core.ParseLogMode(cfg.LogMode)
	if err != nil {
		return err
	}
	if a.debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Debug().Interface("config", cfg).Msg("Settings loaded")
	return nil
}

// distanceFunc resolves the metric from the flags, falling back to the loaded settings.
func (a *app) distanceFunc(cmd *cobra.Command) (core.DistanceFunc, string, error) {
	cfg := a.cfg
	if f := cmd.Flags().Lookup("metric"); f != nil && f.Changed {
		cfg.Metric = f.Value.String()
	}
	if cmd.Flags().Changed("order") {
		p, err := cmd.Flags().GetFloat64("order")
		if err != nil {
			return nil, "", err
		}
		cfg.P = p
	}
	fn, err := cfg.DistanceFunc()
	return fn, cfg.Metric, err
}

// ExecuteContext runs the CLI code with ctx. Cancelling ctx stops
// long-running commands such as matrix.
func ExecuteContext(ctx context.Context) error {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Command failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
