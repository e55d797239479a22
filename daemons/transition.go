package daemons

import (
	"context"
	"log/slog"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
)

// advance moves every edge of the child which is still in the status of the picked edge.
// Transitions the state machine does not know are counted and skipped.
// An empty childOrg keeps the stored child organization.
func (runner *DaemonRunner) advance(ctx context.Context, orgID string, edge models.Relationship, to statemachine.RelationshipStatus, childOrg string) error {
	return runner.transition(ctx, orgID, edge, shared.RelationshipTransition{
		Child:    edge.ChildSerialNumberCustomer,
		From:     []statemachine.RelationshipStatus{edge.TransferStatus},
		To:       to,
		ChildOrg: childOrg,
	})
}

// advanceEdge only moves the edge between the parent and the child of the picked edge.
func (runner *DaemonRunner) advanceEdge(ctx context.Context, orgID string, edge models.Relationship, to statemachine.RelationshipStatus) error {
	return runner.transition(ctx, orgID, edge, shared.RelationshipTransition{
		Parent: edge.ParentSerialNumberCustomer,
		Child:  edge.ChildSerialNumberCustomer,
		From:   []statemachine.RelationshipStatus{edge.TransferStatus},
		To:     to,
	})
}

func (runner *DaemonRunner) transition(ctx context.Context, orgID string, edge models.Relationship, transition shared.RelationshipTransition) error {
	from := edge.TransferStatus
	if !statemachine.CanTransition(from, transition.To) {
		monitoring.UnexpectedRelationshipTransitions.Inc()
		slog.Warn("skipping unexpected relationship transition", "org", orgID, "parent", edge.ParentSerialNumberCustomer, "child", edge.ChildSerialNumberCustomer, "from", from, "to", transition.To)
		return nil
	}

	moved, err := runner.mirror.TransitionRelationships(ctx, orgID, transition)
	if err != nil {
		return err
	}
	if moved == 0 {
		slog.Debug("relationship moved on in the meantime", "org", orgID, "child", edge.ChildSerialNumberCustomer, "from", from, "to", transition.To)
		return nil
	}
	monitoring.RelationshipTransitions.WithLabelValues(from.String(), transition.To.String()).Add(float64(moved))
	slog.Debug("relationship transitioned", "org", orgID, "child", edge.ChildSerialNumberCustomer, "from", from, "to", transition.To, "edges", moved)
	return nil
}
