package services

import (
	"context"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/partchain/shared"
)

const (
	leaderElectionKey = "leaderElection"
	// a leader which did not ping for this long is considered dead
	leaderTimeout = 360 * time.Second
)

type leaderElectionConfig struct {
	LeaderID string `json:"leaderId"`
	LastPing int64  `json:"lastPing"`
}

type databaseLeaderElector struct {
	leaderElectorID string
	configService   shared.ConfigService
	isLeader        atomic.Bool // this variable gets updated by a daemon goroutine. Usage of atomic is required.
	cancel          context.CancelFunc
	done            chan struct{}
	now             func() time.Time
}

var _ shared.LeaderElector = (*databaseLeaderElector)(nil)

func NewDatabaseLeaderElector(configService shared.ConfigService) *databaseLeaderElector {
	return &databaseLeaderElector{
		configService: configService,
		// generate a random ID for this leader elector
		leaderElectorID: uuid.New().String(),
		now:             time.Now,
	}
}

func randomNumberBetween(min, max int) int {
	return rand.Intn(max-min) + min // #nosec
}

func (e *databaseLeaderElector) daemon(ctx context.Context) {
	for {
		isLeader, err := e.checkIfLeader()
		if err != nil {
			slog.Error("could not check if leader", "err", err)
		}
		if e.isLeader.Swap(isLeader) != isLeader {
			slog.Info("leadership changed", "leader", isLeader, "id", e.leaderElectorID)
		}

		// the leader pings well inside the timeout
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(randomNumberBetween(60, 179)) * time.Second):
		}
	}
}

// Start runs the election in the background until Stop is called.
func (e *databaseLeaderElector) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	go func() {
		defer close(e.done)
		e.daemon(ctx)
	}()
}

// Stop ends the election. A leader resigns so another replica takes over on its next check.
func (e *databaseLeaderElector) Stop() {
	if e.cancel != nil {
		e.cancel()
		<-e.done
	}
	if e.isLeader.Swap(false) {
		if err := e.resign(); err != nil {
			slog.Warn("could not resign leadership", "err", err)
		}
	}
}

func (e *databaseLeaderElector) IsLeader() bool {
	return e.isLeader.Load()
}

func (e *databaseLeaderElector) makeLeader() error {
	return e.configService.SetJSONConfig(leaderElectionKey, leaderElectionConfig{
		LeaderID: e.leaderElectorID,
		LastPing: e.now().Unix(),
	})
}

func (e *databaseLeaderElector) resign() error {
	return e.configService.SetJSONConfig(leaderElectionKey, leaderElectionConfig{
		LeaderID: e.leaderElectorID,
	})
}

func (e *databaseLeaderElector) checkIfLeader() (bool, error) {
	var config leaderElectionConfig

	err := e.configService.GetJSONConfig(leaderElectionKey, &config)
	if err != nil {
		slog.Info("could not get leader election config", "err", err)
		// there is no leader yet - overwrite it.
		return true, e.makeLeader()
	}

	if config.LeaderID == e.leaderElectorID {
		// still the leader - refresh the ping
		return true, e.makeLeader()
	}

	if e.now().Unix()-config.LastPing > int64(leaderTimeout.Seconds()) {
		// probably the leader died - overwrite it.
		return true, e.makeLeader()
	}

	return false, nil
}
