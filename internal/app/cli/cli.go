//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"lunatint/internal/app/errors"
	"lunatint/internal/app/generator"
	"lunatint/internal/app/runner"
	"lunatint/internal/app/source"
	"lunatint/internal/app/watcher"
	"lunatint/internal/config/logger"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// CLI defines the interface for cli operations
type CLI interface {
	Execute(ctx context.Context) (int, error)
}

// cli dispatches parsed options to the runner
type cli struct {
	opts      *Options
	runner    runner.Runner
	generator generator.Generator
	watcher   watcher.Watcher
	log       logger.Logger
	stdout    io.Writer
	stderr    io.Writer
}

// NewCLI creates a new cli instance
func NewCLI(opts *Options, runner runner.Runner, generator generator.Generator, watcher watcher.Watcher, log logger.Logger) CLI {
	return &cli{
		opts:      opts,
		runner:    runner,
		generator: generator,
		watcher:   watcher,
		log:       log.WithComponent("CLI"),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// Execute runs the parsed command and returns the process exit code
func (c *cli) Execute(ctx context.Context) (int, error) {
	switch c.opts.Type {
	case CommandHelp:
		return c.handleHelp()
	case CommandVersion:
		return c.handleVersion()
	case CommandGenerate:
		return c.handleRun(ctx, runner.TargetPreview)
	case CommandFile:
		return c.handleRun(ctx, runner.TargetFile)
	case CommandDocument:
		return c.handleRun(ctx, runner.TargetDocument)
	case CommandInit:
		return c.handleInit()
	default:
		return c.handleUnknown()
	}
}

func (c *cli) handleHelp() (int, error) {
	c.log.Debug().Msg("Displaying help information")
	fmt.Fprint(c.stdout, renderHelp())

	return ExitSuccess, nil
}

func (c *cli) handleVersion() (int, error) {
	c.log.Debug().Msg("Displaying version information")
	fmt.Fprint(c.stdout, renderVersion())

	return ExitSuccess, nil
}

func (c *cli) handleRun(ctx context.Context, target string) (int, error) {
	job := runner.Job{
		Target: target,
		Path:   c.opts.Path,
		Out:    c.opts.Out,
		DryRun: c.opts.DryRun,
		Emit:   c.opts.Emit,
		Source: source.Options{
			Files:  c.opts.Inputs,
			Colors: c.opts.Colors,
			Only:   c.opts.Only,
		},
	}

	if c.opts.Watch && len(job.Source.Files) == 0 {
		return c.report(errors.ErrNothingToWatch, "Cannot watch")
	}

	code, err := c.run(ctx, job)
	if !c.opts.Watch {
		return code, err
	}

	err = c.watcher.Watch(ctx, job.Source.Files, func(files []string) {
		c.log.Info().Msgf("Reapplying after change to %s", strings.Join(files, ", "))
		_, _ = c.run(ctx, job)
	})
	if err != nil {
		return c.report(err, "Failed to watch inputs")
	}

	return ExitSuccess, nil
}

func (c *cli) run(ctx context.Context, job runner.Job) (int, error) {
	c.log.Debug().Msgf("Running %s target (path=%q, colors=%d, inputs=%d)", job.Target, job.Path, len(job.Source.Colors), len(job.Source.Files))

	if _, err := c.runner.Run(ctx, job); err != nil {
		return c.report(err, "Failed to apply colors")
	}

	return ExitSuccess, nil
}

// report logs err and prints it to stderr
func (c *cli) report(err error, msg string) (int, error) {
	c.log.Error().Err(err).Msg(msg)
	fmt.Fprintln(c.stderr, RenderError(err))

	return ExitFailure, err
}

func (c *cli) handleInit() (int, error) {
	opts := generator.DefaultOptions()
	if c.opts.Path != "" {
		opts.Path = c.opts.Path
	}

	if err := c.generator.Generate(opts, c.opts.Force, c.opts.DryRun); err != nil {
		return c.report(err, "Failed to generate config")
	}

	return ExitSuccess, nil
}

func (c *cli) handleUnknown() (int, error) {
	c.log.Debug().Msg("Unknown command")
	fmt.Fprintln(c.stderr, RenderError(errors.ErrUnknownCommand))

	return ExitFailure, errors.ErrUnknownCommand
}
