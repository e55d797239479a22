package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	pgUniqueViolation       = "23505"
	pgDuplicateDatabaseCode = "42P04"
)

// alertingLogger reports database errors of one database to the error tracking.
// Not found and duplicate errors are part of normal operation and only logged.
type alertingLogger struct {
	logger.Interface
	db string
}

func newAlertingLogger(db string) logger.Interface {
	return &alertingLogger{Interface: logger.Default.LogMode(logger.Warn), db: db}
}

func (l *alertingLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &alertingLogger{Interface: l.Interface.LogMode(level), db: l.db}
}

func (l *alertingLogger) Error(ctx context.Context, msg string, data ...any) {
	var err error
	if len(data) > 0 {
		if e, ok := data[0].(error); ok {
			err = e
		} else {
			err = fmt.Errorf("%v", data[0])
		}
	}
	if !isExpected(err) {
		monitoring.Alert(msg, err, "db", l.db)
	}
	l.Interface.Error(ctx, msg, data...)
}

func (l *alertingLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err != nil && !isExpected(err) {
		sql, _ := fc()
		monitoring.Alert("database error", err, "db", l.db, "sql", sql)
	}
	l.Interface.Trace(ctx, begin, fc, err)
}

// edges and organization databases are created concurrently by several jobs
func isExpected(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || IsDuplicateKeyError(err) || IsDuplicateDatabaseError(err)
}

// getDSN builds a PostgreSQL connection string from parameters
func getDSN(host, user, password, dbname, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
}

func NewPgxConnPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(getDSN(cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port))
	if err != nil {
		return nil, errors.Wrap(err, "could not parse pgx pool config")
	}
	config.MaxConnIdleTime = cfg.ConnMaxIdleTime
	config.MaxConnLifetime = cfg.ConnMaxLifetime
	config.MaxConns = cfg.MaxOpenConns
	config.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "could not create pgx pool")
	}

	slog.Info("database connection pool configured",
		"db", cfg.DBName,
		"maxOpenConns", cfg.MaxOpenConns,
		"connMaxLifetime", cfg.ConnMaxLifetime,
		"connMaxIdleTime", cfg.ConnMaxIdleTime,
	)

	return pool, nil
}

// NewGormDB wraps an existing pool. Errors are alerted with the name of the database.
func NewGormDB(pool *pgxpool.Pool, dbName string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), &gorm.Config{
		Logger: newAlertingLogger(dbName),
	})
}

// NewConnection opens a pool for the given configuration and wraps it with GORM.
func NewConnection(ctx context.Context, cfg PoolConfig) (*gorm.DB, *pgxpool.Pool, error) {
	pool, err := NewPgxConnPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := NewGormDB(pool, cfg.DBName)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return db, pool, nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsDuplicateKeyError(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func IsDuplicateDatabaseError(err error) bool {
	return pgErrorCode(err) == pgDuplicateDatabaseCode
}
