package database

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/l3montree-dev/partchain/shared"
)

// Schema selects the migration set of a database.
type Schema string

const (
	// SchemaAdmin holds process wide state like the leader election.
	SchemaAdmin Schema = "migrations/admin"
	// SchemaOrg is the relational mirror of a single organization.
	SchemaOrg Schema = "migrations/org"
)

//go:embed migrations/admin/*.sql migrations/org/*.sql
var migrationFiles embed.FS

// a migrator is bound to a single connection, every database gets its own.
func newMigrator(gormDB shared.DB, schema Schema) (*migrate.Migrate, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrationFiles, string(schema))
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}

// RunMigrationsWithDB runs all pending migrations of the schema using an existing GORM database instance
func RunMigrationsWithDB(gormDB shared.DB, schema Schema) error {
	migrator, err := newMigrator(gormDB, schema)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil {
		if err == migrate.ErrNoChange {
			slog.Debug("no pending migrations", "schema", schema)
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("migrations completed successfully", "schema", schema)
	return nil
}

// GetMigrationVersionWithDB returns the current migration version using an existing GORM database instance
func GetMigrationVersionWithDB(gormDB shared.DB, schema Schema) (uint, bool, error) {
	migrator, err := newMigrator(gormDB, schema)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create migrator: %w", err)
	}
	return migrator.Version()
}
