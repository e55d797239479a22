package commands

import (
	"log/slog"

	"github.com/l3montree-dev/partchain/database"
	"github.com/l3montree-dev/partchain/ledger"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	migrate := cobra.Command{
		Use:   "migrate",
		Short: "Runs the database migrations",
		Long: `Migrates the admin database and the databases of the given organizations.
Without --org every organization of the identities file is migrated.
Missing organization databases are created.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			shared.LoadConfig() // nolint: errcheck
			orgs, _ := cmd.Flags().GetStringSlice("org")

			db, pool, err := database.NewConnection(cmd.Context(), database.GetPoolConfigFromEnv())
			if err != nil {
				return errors.Wrap(err, "could not connect to database")
			}
			defer pool.Close()

			if err := database.RunMigrationsWithDB(db, database.SchemaAdmin); err != nil {
				return err
			}
			slog.Info("migrated admin database")

			if len(orgs) == 0 {
				identities, err := ledger.LoadIdentities(loadConfig(cmd).IdentitiesFilePath)
				if err != nil {
					return err
				}
				orgs = identities.MspIDs()
			}

			registry, err := database.NewRegistryFromEnv(db)
			if err != nil {
				return err
			}
			defer registry.Close() // nolint: errcheck

			for _, org := range orgs {
				// opening an organization database creates and migrates it
				if _, err := registry.ForOrg(cmd.Context(), org); err != nil {
					return errors.Wrapf(err, "could not migrate database of %s", org)
				}
				slog.Info("migrated organization database", "org", org)
			}
			return nil
		},
	}

	migrate.Flags().StringSlice("org", nil, "Organizations to migrate")
	return &migrate
}
