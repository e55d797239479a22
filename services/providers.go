package services

import (
	"context"

	"github.com/l3montree-dev/partchain/shared"
	"go.uber.org/fx"
)

func provideLeaderElector(lc fx.Lifecycle, configService shared.ConfigService) shared.LeaderElector {
	elector := NewDatabaseLeaderElector(configService)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			elector.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			elector.Stop()
			return nil
		},
	})
	return elector
}

// Module provides all service-layer constructors
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewConfigService, fx.As(new(shared.ConfigService)))),
	fx.Provide(provideLeaderElector),
	fx.Provide(fx.Annotate(NewMirrorService, fx.As(new(shared.MirrorService)))),
	fx.Provide(fx.Annotate(NewAssetService, fx.As(new(shared.AssetService)))),
	fx.Provide(fx.Annotate(NewEventService, fx.As(new(shared.EventService)))),
	fx.Provide(fx.Annotate(NewAccessControlService, fx.As(new(shared.AccessControlService)))),
)
