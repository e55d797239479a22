package daemons

import (
	"context"
	"log/slog"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/pkg/errors"
)

// reconcileParentShared asks again for children whose manufacturer did not answer in time.
// Edges pointing to the organization itself are the manufacturer side of a request and stay.
func (runner *DaemonRunner) reconcileParentShared(ctx context.Context, orgID string) error {
	edges, err := runner.mirror.GetRelationshipsByStatus(ctx, orgID, []statemachine.RelationshipStatus{statemachine.StatusParentShared}, runner.config.ParentShared.Limit, false)
	if err != nil {
		return errors.Wrap(err, "could not fetch parentShared relationships")
	}

	cutoff := runner.now().Add(-runner.config.ParentSharedTimeout)
	timedOut := make([]models.Relationship, 0, len(edges))
	for _, edge := range edges {
		if edge.ChildMspID == orgID {
			continue
		}
		if edge.LastRetry != nil && edge.LastRetry.After(cutoff) {
			continue
		}
		timedOut = append(timedOut, edge)
	}
	monitoring.RelationshipsProcessed.WithLabelValues("parentShared").Add(float64(len(timedOut)))

	// the timeout is per edge, a fresher request of another parent for the same child keeps waiting
	concurrently(timedOut, func(edge models.Relationship) {
		slog.Info("manufacturer did not share child in time, requesting again", "org", orgID, "parent", edge.ParentSerialNumberCustomer, "child", edge.ChildSerialNumberCustomer, "manufacturer", edge.ChildMspID)
		if err := runner.advanceEdge(ctx, orgID, edge, statemachine.StatusChildInPublicLedger); err != nil {
			slog.Error("could not update relationship", "org", orgID, "child", edge.ChildSerialNumberCustomer, "err", err)
		}
	})
	return nil
}
