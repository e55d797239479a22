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

package shared

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Limit int
	// Schedule is a cron expression with a leading seconds field. Empty disables the job.
	Schedule string
}

// RetryTier selects edges by retry count and age so that new failures are retried more often than old ones.
type RetryTier struct {
	Name            string
	LimitPercentage float64
	MinRetries      int
	// MaxRetries is exclusive, 0 means unbounded.
	MaxRetries int
	// RetryPeriod is the minimum time since the last retry.
	RetryPeriod time.Duration
}

// Quota returns the share of limit this tier may use, rounded up.
func (t RetryTier) Quota(limit int) int {
	return int(math.Ceil(float64(limit) * t.LimitPercentage))
}

type ReconcilerConfig struct {
	SchedulerEnabled bool

	Unknown                SchedulerConfig
	NotInFabric            SchedulerConfig
	ChildInPublicLedger    SchedulerConfig
	ParentShared           SchedulerConfig
	RequestAssetNotAllowed SchedulerConfig

	NotInFabricTiers    []RetryTier
	ParentSharedTimeout time.Duration

	PaginationLimit           int
	ChildrenMaxRecursiveLimit int
	DefaultChannelName        string
	DefaultMspID              string
	IdentitiesFilePath        string
	EventListenerEnabled      bool
	MetricsPort               string
}

var schedulerDefaults = map[string]SchedulerConfig{
	"unknown":                   {Limit: 50, Schedule: "0 */1 * * * *"},
	"not_in_fabric":             {Limit: 150, Schedule: "15 */5 * * * *"},
	"child_in_public_ledger":    {Limit: 30},
	"parent_shared":             {Limit: 100, Schedule: "30 */30 * * * *"},
	"request_asset_not_allowed": {Limit: 250, Schedule: "45 */30 * * * *"},
}

var tierDefaults = []RetryTier{
	{Name: "new", LimitPercentage: 0.5, MinRetries: 0, MaxRetries: 5, RetryPeriod: 0},
	{Name: "medium", LimitPercentage: 0.3, MinRetries: 5, MaxRetries: 20, RetryPeriod: 24 * time.Hour},
	{Name: "old", LimitPercentage: 0.2, MinRetries: 20, MaxRetries: 0, RetryPeriod: 7 * 24 * time.Hour},
}

// NewViper returns a viper instance reading from the environment with all reconciler defaults set.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("scheduler_enabled", true)
	for name, cfg := range schedulerDefaults {
		v.SetDefault("scheduler_"+name+"_limit", cfg.Limit)
		v.SetDefault("scheduler_"+name+"_schedule", cfg.Schedule)
	}
	for _, tier := range tierDefaults {
		prefix := "not_in_fabric_" + tier.Name + "_"
		v.SetDefault(prefix+"limit_percentage", tier.LimitPercentage)
		v.SetDefault(prefix+"min_retries", tier.MinRetries)
		v.SetDefault(prefix+"max_retries", tier.MaxRetries)
		v.SetDefault(prefix+"retry_period_days", int(tier.RetryPeriod/(24*time.Hour)))
	}
	v.SetDefault("parent_shared_timeout", "60m")
	v.SetDefault("pagination_limit", 25)
	v.SetDefault("children_max_recursive_limit", 1)
	v.SetDefault("hlf_network_channel_name", "partchain-channel")
	v.SetDefault("hlf_default_msp_id", "Lion")
	v.SetDefault("hlf_identities_file_path", "/hlf-identities/hlf-identities.json")
	v.SetDefault("event_listener_enabled", true)
	v.SetDefault("metrics_port", "8080")
	return v
}

func LoadReconcilerConfig(v *viper.Viper) ReconcilerConfig {
	scheduler := func(name string) SchedulerConfig {
		return SchedulerConfig{
			Limit:    v.GetInt("scheduler_" + name + "_limit"),
			Schedule: v.GetString("scheduler_" + name + "_schedule"),
		}
	}

	tiers := make([]RetryTier, 0, len(tierDefaults))
	for _, tier := range tierDefaults {
		prefix := "not_in_fabric_" + tier.Name + "_"
		tiers = append(tiers, RetryTier{
			Name:            tier.Name,
			LimitPercentage: v.GetFloat64(prefix + "limit_percentage"),
			MinRetries:      v.GetInt(prefix + "min_retries"),
			MaxRetries:      v.GetInt(prefix + "max_retries"),
			RetryPeriod:     time.Duration(v.GetInt(prefix+"retry_period_days")) * 24 * time.Hour,
		})
	}

	return ReconcilerConfig{
		SchedulerEnabled:          v.GetBool("scheduler_enabled"),
		Unknown:                   scheduler("unknown"),
		NotInFabric:               scheduler("not_in_fabric"),
		ChildInPublicLedger:       scheduler("child_in_public_ledger"),
		ParentShared:              scheduler("parent_shared"),
		RequestAssetNotAllowed:    scheduler("request_asset_not_allowed"),
		NotInFabricTiers:          tiers,
		ParentSharedTimeout:       v.GetDuration("parent_shared_timeout"),
		PaginationLimit:           v.GetInt("pagination_limit"),
		ChildrenMaxRecursiveLimit: v.GetInt("children_max_recursive_limit"),
		DefaultChannelName:        v.GetString("hlf_network_channel_name"),
		DefaultMspID:              v.GetString("hlf_default_msp_id"),
		IdentitiesFilePath:        v.GetString("hlf_identities_file_path"),
		EventListenerEnabled:      v.GetBool("event_listener_enabled"),
		MetricsPort:               v.GetString("metrics_port"),
	}
}

// DefaultReconcilerConfig reads the environment and falls back to the built-in defaults.
func DefaultReconcilerConfig() ReconcilerConfig {
	return LoadReconcilerConfig(NewViper())
}
