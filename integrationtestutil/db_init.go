package integrationtestutil

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/l3montree-dev/partchain/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// InitDatabaseContainer starts a postgres server and returns a registry whose admin database is migrated.
// Organization databases are created on first use, exactly like in production.
func InitDatabaseContainer() (*database.Registry, func()) {
	ctx := context.Background()

	dbName := "partchain"
	dbUser := "user"
	dbPassword := "password"

	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)

	terminate := func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if err != nil {
		slog.Info("failed to start postgres container", "error", err)
		panic(err)
	}

	host, _ := postgresC.Host(ctx)
	port, _ := postgresC.MappedPort(ctx, "5432")

	cfg := database.PoolConfig{
		User:         dbUser,
		Password:     dbPassword,
		Host:         host,
		Port:         port.Port(),
		DBName:       dbName,
		MaxOpenConns: 10,
		MinConns:     1,
	}

	admin, pool, err := database.NewConnection(ctx, cfg)
	if err != nil {
		log.Printf("failed to connect to database: %s", err)
		panic(err)
	}

	if err := database.RunMigrationsWithDB(admin, database.SchemaAdmin); err != nil {
		log.Printf("failed to run migrations: %s", err)
		panic(err)
	}

	registry, err := database.NewRegistry(admin, database.NewPostgresOpener(admin, cfg, 2), 8, time.Minute)
	if err != nil {
		panic(err)
	}

	return registry, func() {
		_ = registry.Close()
		pool.Close()
		terminate()
	}
}
