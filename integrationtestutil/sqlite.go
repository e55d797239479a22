package integrationtestutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/l3montree-dev/partchain/database"
	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated organization database inside the test's temp dir.
func NewSQLiteDB(t *testing.T, name string) shared.DB {
	t.Helper()

	db, closeFn, err := openSQLite(filepath.Join(t.TempDir(), name+".db"))
	if err != nil {
		t.Fatalf("could not open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = closeFn() })
	return db
}

// NewSQLiteRegistry returns a registry which opens one sqlite database per organization.
func NewSQLiteRegistry(t *testing.T) *database.Registry {
	t.Helper()

	dir := t.TempDir()
	admin := NewSQLiteDB(t, "admin")
	registry, err := database.NewRegistry(admin, func(ctx context.Context, orgID string) (shared.DB, func() error, error) {
		return openSQLite(filepath.Join(dir, utils.DatabaseName(orgID)+".db"))
	}, 8, 0)
	if err != nil {
		t.Fatalf("could not create registry: %v", err)
	}
	t.Cleanup(func() { _ = registry.Close() })
	return registry
}

func openSQLite(path string) (shared.DB, func() error, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	// a single connection serializes writers
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Asset{},
		&models.Relationship{},
		&models.Transaction{},
		&models.InvestigationRelationship{},
		&models.Config{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, nil, errors.Wrap(err, "could not migrate sqlite database")
	}
	return db, sqlDB.Close, nil
}
