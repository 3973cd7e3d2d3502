package app

import (
	"go.uber.org/fx"

	"lunatint/internal/app/cli"
	"lunatint/internal/app/generator"
	"lunatint/internal/app/palette"
	"lunatint/internal/app/preview"
	"lunatint/internal/app/ramp"
	"lunatint/internal/app/runner"
	"lunatint/internal/app/watcher"
	"lunatint/internal/app/worker"
	"lunatint/internal/config/logger"
)

var Module = fx.Options(
	logger.Module,
	ramp.Module,
	worker.Module,
	palette.Module,
	preview.Module,
	runner.Module,
	generator.Module,
	watcher.Module,
	cli.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
