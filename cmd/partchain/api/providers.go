package api

import "go.uber.org/fx"

// Module serves the operational endpoints for the lifetime of the application
var Module = fx.Options(
	fx.Provide(NewServer),
	fx.Invoke(registerLifecycle),
)
