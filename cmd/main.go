package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"lunatint/internal/app"
	"lunatint/internal/app/cli"
	"lunatint/internal/config"
	"lunatint/internal/config/logger"
)

// main is the entry point for the application
func main() {
	os.Exit(runApp(os.Args[1:], os.Stderr))
}

// runApp parses flags, loads config and runs the fx application
func runApp(args []string, stderr io.Writer) int {
	opts, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, cli.RenderError(err))
		return cli.ExitFailure
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(stderr, cli.RenderError(err))
		return cli.ExitFailure
	}

	application := createApp(cfg, opts)
	application.Run()

	return cli.ExitSuccess
}

// loadConfig loads the config file and applies command-line overrides
func loadConfig(opts *cli.Options) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}

	applyOverrides(cfg, opts)

	return cfg, nil
}

// applyOverrides copies flag values that take precedence over the config file
func applyOverrides(cfg *config.Config, opts *cli.Options) {
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	if opts.Preview != nil {
		cfg.Preview.Enabled = *opts.Preview
	}
}

// createApp creates the FX application with the given config and options
func createApp(cfg *config.Config, opts *cli.Options) *fx.App {
	return fx.New(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg, opts),
		app.Module,
	)
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel || cfg.Logging.Level == logger.TraceLevel {
			return &fxevent.ConsoleLogger{W: os.Stderr}
		}

		return fxevent.NopLogger
	}
}
