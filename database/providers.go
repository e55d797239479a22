package database

import (
	"context"

	"github.com/l3montree-dev/partchain/shared"
	"go.uber.org/fx"
)

// NewRegistryFromEnv opens organization databases on the server of the admin database.
func NewRegistryFromEnv(admin shared.DB) (*Registry, error) {
	cfg := GetPoolConfigFromEnv()
	return NewRegistry(admin, NewPostgresOpener(admin, cfg, cfg.OrgMaxOpenConns), cfg.OrgCacheSize, cfg.OrgCloseGrace)
}

func registerLifecycle(lc fx.Lifecycle, registry shared.DatabaseRegistry) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return registry.Close()
		},
	})
}

// Module expects the admin database to be supplied.
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewRegistryFromEnv, fx.As(new(shared.DatabaseRegistry)))),
	fx.Invoke(registerLifecycle),
)
