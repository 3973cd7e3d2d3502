package ramp

import "go.uber.org/fx"

// Module provides the ramp generator
var Module = fx.Options(
	fx.Provide(NewGenerator),
)
