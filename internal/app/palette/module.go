package palette

import "go.uber.org/fx"

// Module provides the palette store
var Module = fx.Options(
	fx.Provide(NewStore),
)
