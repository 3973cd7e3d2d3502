package preview

import "go.uber.org/fx"

// Module provides the ramp preview
var Module = fx.Options(
	fx.Provide(NewPreview),
)
