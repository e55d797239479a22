package commands

import (
	"github.com/l3montree-dev/partchain/daemons"
	"github.com/l3montree-dev/partchain/database"
	"github.com/l3montree-dev/partchain/database/repositories"
	"github.com/l3montree-dev/partchain/ledger"
	"github.com/l3montree-dev/partchain/services"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// loadConfig reads the environment and lets flags of the command override it.
func loadConfig(cmd *cobra.Command) shared.ReconcilerConfig {
	v := shared.NewViper()
	if flag := cmd.Flag("identities"); flag != nil && flag.Changed {
		_ = v.BindPFlag("hlf_identities_file_path", flag)
	}
	if flag := cmd.Flag("channel"); flag != nil && flag.Changed {
		_ = v.BindPFlag("hlf_network_channel_name", flag)
	}
	// the cli never listens for events and never schedules jobs
	v.Set("event_listener_enabled", false)
	v.Set("scheduler_enabled", false)
	return shared.LoadReconcilerConfig(v)
}

// bootstrap wires the application without starting it and fills the targets.
// The returned function releases every connection.
func bootstrap(cmd *cobra.Command, targets ...any) (func(), error) {
	shared.LoadConfig() // nolint: errcheck

	db, pool, err := database.NewConnection(cmd.Context(), database.GetPoolConfigFromEnv())
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to database")
	}

	var (
		registry shared.DatabaseRegistry
		ledgers  *ledger.ConnectionRegistry
	)
	app := fx.New(
		fx.NopLogger,
		fx.Supply(db),
		fx.Supply(loadConfig(cmd)),
		database.Module,
		repositories.Module,
		services.Module,
		ledger.Module,
		daemons.Module,
		fx.Populate(&registry, &ledgers),
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		pool.Close()
		return nil, err
	}

	return func() {
		_ = ledgers.Close()
		_ = registry.Close()
		pool.Close()
	}, nil
}
