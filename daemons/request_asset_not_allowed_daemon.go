package daemons

import (
	"context"
	"log/slog"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/pkg/errors"
)

// reconcileRequestAssetNotAllowed resets the edges of manufacturers which granted access in the meantime.
func (runner *DaemonRunner) reconcileRequestAssetNotAllowed(ctx context.Context, orgID string) error {
	partners, err := runner.accessControl.ActivePartners(ctx, orgID)
	if err != nil {
		return err
	}
	if len(partners) == 0 {
		return nil
	}

	edges, err := runner.mirror.GetRelationshipsByStatusAndChildOrgs(ctx, orgID, statemachine.StatusRequestAssetNotAllowed, partners)
	if err != nil {
		return errors.Wrap(err, "could not fetch requestAssetNotAllowed relationships")
	}
	if limit := runner.config.RequestAssetNotAllowed.Limit; limit > 0 && len(edges) > limit {
		edges = edges[:limit]
	}
	monitoring.RelationshipsProcessed.WithLabelValues("requestAssetNotAllowed").Add(float64(len(edges)))

	concurrently(uniqueChildren(edges), func(edge models.Relationship) {
		if err := runner.advance(ctx, orgID, edge, statemachine.StatusUnknown, ""); err != nil {
			slog.Error("could not update relationship", "org", orgID, "child", edge.ChildSerialNumberCustomer, "err", err)
		}
	})
	return nil
}
