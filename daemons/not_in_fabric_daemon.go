package daemons

import (
	"context"
	"log/slog"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/pkg/errors"
)

// reconcileNotInFabric retries the public lookup of children which were not found yet.
// Recent failures are retried more often than old ones.
func (runner *DaemonRunner) reconcileNotInFabric(ctx context.Context, orgID string) error {
	edges, err := runner.mirror.GetRelationshipsByStatusTiered(ctx, orgID, statemachine.StatusNotInFabric, runner.config.NotInFabric.Limit)
	if err != nil {
		return errors.Wrap(err, "could not fetch notInFabric relationships")
	}
	monitoring.RelationshipsProcessed.WithLabelValues("notInFabric").Add(float64(len(edges)))

	concurrently(uniqueChildren(edges), func(edge models.Relationship) {
		if err := runner.locateChild(ctx, orgID, edge); err != nil {
			slog.Error("could not locate child in public ledger", "org", orgID, "child", edge.ChildSerialNumberCustomer, "retries", edge.Retries, "err", err)
		}
	})
	return nil
}
