package runner

import (
	"go.uber.org/fx"
)

// Module provides the run pipeline
var Module = fx.Options(
	fx.Provide(NewRunner),
)
