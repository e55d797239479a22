// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"context"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/utils"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Opener connects to the database of an organization, creating and migrating it if required.
// The returned function releases the connection pool.
type Opener func(ctx context.Context, orgID string) (shared.DB, func() error, error)

type orgDB struct {
	orgID string
	db    shared.DB
	close func() error
}

// Registry keeps the connection pools of the most recently used organization databases open.
// Evicted pools stay usable for the grace period so running jobs can finish with their handle.
type Registry struct {
	admin  shared.DB
	opener Opener
	grace  time.Duration

	mu       sync.Mutex
	cache    *lru.Cache[string, orgDB]
	evicted  map[*time.Timer]orgDB
	shutdown bool
}

var _ shared.DatabaseRegistry = (*Registry)(nil)

func NewRegistry(admin shared.DB, opener Opener, size int, grace time.Duration) (*Registry, error) {
	r := &Registry{
		admin:   admin,
		opener:  opener,
		grace:   grace,
		evicted: map[*time.Timer]orgDB{},
	}
	cache, err := lru.NewWithEvict(size, r.evict)
	if err != nil {
		return nil, errors.Wrap(err, "could not create database cache")
	}
	r.cache = cache
	return r, nil
}

// evict runs with r.mu held.
func (r *Registry) evict(orgID string, v orgDB) {
	monitoring.OrgDatabasesOpen.Dec()
	if r.shutdown || r.grace <= 0 {
		closeOrgDB(v)
		return
	}

	slog.Debug("organization database evicted, closing it later", "org", orgID, "grace", r.grace)
	var timer *time.Timer
	timer = time.AfterFunc(r.grace, func() {
		r.mu.Lock()
		delete(r.evicted, timer)
		r.mu.Unlock()
		closeOrgDB(v)
	})
	r.evicted[timer] = v
}

func closeOrgDB(v orgDB) {
	slog.Debug("closing organization database", "org", v.orgID)
	if err := v.close(); err != nil {
		slog.Warn("could not close organization database", "org", v.orgID, "err", err)
	}
}

func (r *Registry) ForOrg(ctx context.Context, orgID string) (shared.DB, error) {
	if orgID == "" {
		return nil, shared.NewBadRequestError("organization id must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(orgID); ok {
		return v.db.WithContext(ctx), nil
	}

	db, closeFn, err := r.opener(ctx, orgID)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open database of organization %s", orgID)
	}
	r.cache.Add(orgID, orgDB{orgID: orgID, db: db, close: closeFn})
	monitoring.OrgDatabasesOpen.Inc()

	return db.WithContext(ctx), nil
}

func (r *Registry) Admin() shared.DB {
	return r.admin
}

// Close releases every organization pool, evicted ones included. The admin database is owned by the caller.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shutdown = true
	r.cache.Purge()
	for timer, v := range r.evicted {
		// a timer which already fired closes its pool itself
		if timer.Stop() {
			closeOrgDB(v)
		}
		delete(r.evicted, timer)
	}
	return nil
}

// NewPostgresOpener creates one database per organization on the server of the admin database.
func NewPostgresOpener(admin shared.DB, base PoolConfig, poolSize int32) Opener {
	return func(ctx context.Context, orgID string) (shared.DB, func() error, error) {
		name := utils.DatabaseName(orgID)
		if err := ensureDatabase(ctx, admin, name); err != nil {
			return nil, nil, err
		}

		db, pool, err := NewConnection(ctx, base.ForDatabase(name, poolSize))
		if err != nil {
			return nil, nil, err
		}

		if err := RunMigrationsWithDB(db, SchemaOrg); err != nil {
			pool.Close()
			return nil, nil, err
		}

		return db, func() error {
			pool.Close()
			return nil
		}, nil
	}
}

func ensureDatabase(ctx context.Context, admin shared.DB, name string) error {
	var exists bool
	if err := admin.WithContext(ctx).Raw("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = ?)", name).Scan(&exists).Error; err != nil {
		return errors.Wrap(err, "could not check if database exists")
	}
	if exists {
		return nil
	}

	slog.Info("creating organization database", "db", name)
	// CREATE DATABASE does not accept bind parameters
	if err := admin.WithContext(ctx).Exec("CREATE DATABASE " + pq.QuoteIdentifier(name)).Error; err != nil && !IsDuplicateDatabaseError(err) {
		return errors.Wrapf(err, "could not create database %s", name)
	}
	return nil
}
