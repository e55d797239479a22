package ledger

import (
	"context"

	"github.com/l3montree-dev/partchain/shared"
	"go.uber.org/fx"
)

func provideIdentities(config shared.ReconcilerConfig) (Identities, error) {
	return LoadIdentities(config.IdentitiesFilePath)
}

func registerLifecycle(lc fx.Lifecycle, registry *ConnectionRegistry, listener *EventListener, config shared.ReconcilerConfig) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if config.EventListenerEnabled {
				listener.Start()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			listener.Stop()
			return registry.Close()
		},
	})
}

var Module = fx.Module("ledger",
	fx.Provide(provideIdentities),
	fx.Provide(fx.Annotate(NewFabricConnector, fx.As(new(Connector)))),
	fx.Provide(NewConnectionRegistry),
	fx.Provide(fx.Annotate(NewExecutor, fx.As(new(shared.LedgerExecutor)))),
	fx.Provide(NewEventListener),
	fx.Invoke(registerLifecycle),
)
