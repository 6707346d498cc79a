package config

import "go.uber.org/fx"

// Module wires application configuration and the hot-reloadable limits.
var Module = fx.Module("config",
	fx.Provide(
		Load,
		NewLimitsHolder,
	),
)
