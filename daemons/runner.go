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

package daemons

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// maximum number of organizations and edges processed in parallel by a single job
const concurrency = 8

type job struct {
	name     string
	status   statemachine.RelationshipStatus
	schedule string
	run      func(ctx context.Context, orgID string) error
}

// DaemonRunner drives the relationships of every organization through the
// state machine. Each status has its own cron job.
type DaemonRunner struct {
	mirror        shared.MirrorService
	assetService  shared.AssetService
	accessControl shared.AccessControlService
	executor      shared.LedgerExecutor
	leaderElector shared.LeaderElector
	config        shared.ReconcilerConfig

	cron *cron.Cron
	now  func() time.Time
}

var _ shared.DaemonRunner = (*DaemonRunner)(nil)

func NewDaemonRunner(
	mirror shared.MirrorService,
	assetService shared.AssetService,
	accessControl shared.AccessControlService,
	executor shared.LedgerExecutor,
	leaderElector shared.LeaderElector,
	config shared.ReconcilerConfig,
) *DaemonRunner {
	return &DaemonRunner{
		mirror:        mirror,
		assetService:  assetService,
		accessControl: accessControl,
		executor:      executor,
		leaderElector: leaderElector,
		config:        config,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (runner *DaemonRunner) jobs() []job {
	return []job{
		{name: "unknown", status: statemachine.StatusUnknown, schedule: runner.config.Unknown.Schedule, run: runner.reconcileUnknown},
		{name: "childInPublicLedger", status: statemachine.StatusChildInPublicLedger, schedule: runner.config.ChildInPublicLedger.Schedule, run: runner.requestChildren},
		{name: "notInFabric", status: statemachine.StatusNotInFabric, schedule: runner.config.NotInFabric.Schedule, run: runner.reconcileNotInFabric},
		{name: "parentShared", status: statemachine.StatusParentShared, schedule: runner.config.ParentShared.Schedule, run: runner.reconcileParentShared},
		{name: "requestAssetNotAllowed", status: statemachine.StatusRequestAssetNotAllowed, schedule: runner.config.RequestAssetNotAllowed.Schedule, run: runner.reconcileRequestAssetNotAllowed},
	}
}

// Start registers every job with a schedule. Jobs only run on the leader.
func (runner *DaemonRunner) Start() {
	if !runner.config.SchedulerEnabled {
		slog.Info("schedulers are disabled")
		return
	}

	logger := cronLogger{}
	runner.cron = cron.New(
		cron.WithSeconds(),
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
		cron.WithLogger(logger),
	)

	for _, j := range runner.jobs() {
		if j.schedule == "" {
			slog.Debug("job has no schedule, skipping", "job", j.name)
			continue
		}
		if _, err := runner.cron.AddFunc(j.schedule, func() { runner.tick(j) }); err != nil {
			monitoring.Alert("could not schedule reconciliation job", err, "job", j.name, "schedule", j.schedule)
			continue
		}
		slog.Info("scheduled reconciliation job", "job", j.name, "schedule", j.schedule)
	}
	runner.cron.Start()
}

// Stop returns a context which is done once all running jobs finished.
func (runner *DaemonRunner) Stop() context.Context {
	if runner.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return runner.cron.Stop()
}

// Trigger runs the job of the given status once for all organizations regardless of leadership.
func (runner *DaemonRunner) Trigger(ctx context.Context, status statemachine.RelationshipStatus) error {
	for _, j := range runner.jobs() {
		if j.status == status {
			return runner.runJob(ctx, j)
		}
	}
	return shared.NewBadRequestError("there is no reconciliation job for status %s", status)
}

func (runner *DaemonRunner) tick(j job) {
	if !runner.leaderElector.IsLeader() {
		slog.Debug("not the leader - skipping reconciliation job", "job", j.name)
		return
	}
	if err := runner.runJob(context.Background(), j); err != nil {
		slog.Error("reconciliation job failed", "job", j.name, "err", err)
	}
}

func (runner *DaemonRunner) runJob(ctx context.Context, j job) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			monitoring.RecoverAndAlert("reconciliation job panicked", r)
			err = errors.Errorf("job %s panicked", j.name)
		}
		monitoring.DaemonJobDuration.WithLabelValues(j.name).Observe(time.Since(start).Minutes())
	}()

	slog.Debug("running reconciliation job", "job", j.name)
	return runner.forEachOrg(ctx, j)
}

// forEachOrg runs the job for every organization. A failing organization never stops the others.
func (runner *DaemonRunner) forEachOrg(ctx context.Context, j job) error {
	var (
		mu     sync.Mutex
		failed []string
	)

	var g errgroup.Group
	g.SetLimit(concurrency)
	for _, orgID := range runner.executor.Organizations() {
		g.Go(func() error {
			if err := j.run(ctx, orgID); err != nil {
				monitoring.DaemonJobFailures.WithLabelValues(j.name).Inc()
				slog.Error("reconciliation job failed for organization", "job", j.name, "org", orgID, "err", err)
				mu.Lock()
				failed = append(failed, orgID)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) > 0 {
		return errors.Errorf("job %s failed for %s", j.name, strings.Join(failed, ", "))
	}
	return nil
}

// concurrently calls f for every item. Errors are handled inside f.
func concurrently[T any](items []T, f func(T)) {
	var g errgroup.Group
	g.SetLimit(concurrency)
	for _, item := range items {
		g.Go(func() error {
			f(item)
			return nil
		})
	}
	_ = g.Wait()
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append([]any{"err", err}, keysAndValues...)...)
}
