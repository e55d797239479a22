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
	"time"

	"github.com/spf13/viper"
)

// PoolConfig describes the connection pool of one database.
type PoolConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// organization databases live on the same server with their own, smaller pools
	OrgMaxOpenConns int32
	OrgCacheSize    int
	// evicted organization pools are closed after this period
	OrgCloseGrace time.Duration
}

// ForDatabase returns a copy pointing to another database on the same server.
func (c PoolConfig) ForDatabase(name string, maxOpenConns int32) PoolConfig {
	c.DBName = name
	if maxOpenConns > 0 {
		c.MaxOpenConns = maxOpenConns
		c.MinConns = min(c.MinConns, maxOpenConns)
	}
	return c
}

// GetPoolConfigFromEnv reads the pool configuration of the admin database and the
// organization databases. Invalid or missing values fall back to the defaults.
//
// Environment variables:
// - POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_HOST, POSTGRES_PORT, POSTGRES_DB
// - DB_MAX_OPEN_CONNS (25), DB_MIN_CONNS (2)
// - DB_CONN_MAX_LIFETIME (4h), DB_CONN_MAX_IDLE_TIME (15m)
// - DB_ORG_MAX_OPEN_CONNS (5), DB_ORG_CACHE_SIZE (32): pools kept open at the same time
// - DB_ORG_CLOSE_GRACE (10m)
func GetPoolConfigFromEnv() PoolConfig {
	v := viper.New()
	v.AutomaticEnv()

	return PoolConfig{
		User:     v.GetString("postgres_user"),
		Password: v.GetString("postgres_password"),
		Host:     v.GetString("postgres_host"),
		Port:     v.GetString("postgres_port"),
		DBName:   v.GetString("postgres_db"),

		MaxOpenConns:    positive(v.GetInt32("db_max_open_conns"), 25),
		MinConns:        max(v.GetInt32("db_min_conns"), 0),
		ConnMaxLifetime: positive(v.GetDuration("db_conn_max_lifetime"), 4*time.Hour),
		ConnMaxIdleTime: positive(v.GetDuration("db_conn_max_idle_time"), 15*time.Minute),

		OrgMaxOpenConns: positive(v.GetInt32("db_org_max_open_conns"), 5),
		OrgCacheSize:    positive(v.GetInt("db_org_cache_size"), 32),
		OrgCloseGrace:   positive(v.GetDuration("db_org_close_grace"), 10*time.Minute),
	}
}

func positive[T int | int32 | time.Duration](val, def T) T {
	if val > 0 {
		return val
	}
	return def
}
