package daemons

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/l3montree-dev/partchain/utils"
	"github.com/pkg/errors"
)

// reconcileUnknown looks up the children of random unknown edges in the public ledger
// and asks the manufacturers of located children to share them.
func (runner *DaemonRunner) reconcileUnknown(ctx context.Context, orgID string) error {
	edges, err := runner.mirror.GetRelationshipsByStatus(ctx, orgID, []statemachine.RelationshipStatus{statemachine.StatusUnknown}, runner.config.Unknown.Limit, true)
	if err != nil {
		return errors.Wrap(err, "could not fetch unknown relationships")
	}
	monitoring.RelationshipsProcessed.WithLabelValues("unknown").Add(float64(len(edges)))

	concurrently(uniqueChildren(edges), func(edge models.Relationship) {
		if err := runner.locateChild(ctx, orgID, edge); err != nil {
			slog.Error("could not locate child in public ledger", "org", orgID, "child", edge.ChildSerialNumberCustomer, "err", err)
		}
	})

	return runner.requestChildren(ctx, orgID)
}

// locateChild moves an edge according to the public ledger entry of its child.
func (runner *DaemonRunner) locateChild(ctx context.Context, orgID string, edge models.Relationship) error {
	res, err := runner.assetService.GetPublicAssetDetail(ctx, orgID, edge.ChildSerialNumberCustomer)
	if err != nil {
		return err
	}

	child, found := res.First()
	switch {
	case res.OK() && found && child.MspID == orgID:
		return runner.advance(ctx, orgID, edge, statemachine.StatusChildShared, orgID)
	case res.OK() && found:
		return runner.advance(ctx, orgID, edge, statemachine.StatusChildInPublicLedger, child.MspID)
	case res.OK() || res.Status == http.StatusNotFound:
		return runner.advance(ctx, orgID, edge, statemachine.StatusNotInFabric, "")
	default:
		return shared.LedgerError{Msg: "could not read public asset " + edge.ChildSerialNumberCustomer, Err: errors.Errorf("status %d: %v", res.Status, res.Error)}
	}
}

// requestChildren sends one asset request per parent and child organization for every edge
// whose child was located in the public ledger or whose update is pending.
func (runner *DaemonRunner) requestChildren(ctx context.Context, orgID string) error {
	edges, err := runner.mirror.GetRelationshipsByStatus(ctx, orgID, requestableStatuses, runner.config.ChildInPublicLedger.Limit, false)
	if err != nil {
		return errors.Wrap(err, "could not fetch requestable relationships")
	}
	monitoring.RelationshipsProcessed.WithLabelValues("childInPublicLedger").Add(float64(len(edges)))

	byParent, parents := utils.GroupBy(edges, func(edge models.Relationship) string {
		return edge.ParentSerialNumberCustomer
	})
	concurrently(parents, func(parent string) {
		if err := runner.requestFromParent(ctx, orgID, parent, byParent[parent]); err != nil {
			slog.Error("could not request children", "org", orgID, "parent", parent, "err", err)
		}
	})
	return nil
}

var requestableStatuses = []statemachine.RelationshipStatus{statemachine.StatusChildInPublicLedger, statemachine.StatusUpdatePending}

func (runner *DaemonRunner) requestFromParent(ctx context.Context, orgID, parentSerial string, edges []models.Relationship) error {
	detail, err := runner.assetService.GetAssetDetail(ctx, orgID, parentSerial)
	if err != nil {
		return err
	}
	parent, ok := detail.First()
	if detail.Status == http.StatusNotFound || (detail.OK() && !ok) {
		slog.Warn("parent of relationship not found in ledger", "org", orgID, "parent", parentSerial)
		return nil
	}
	if !detail.OK() {
		return shared.LedgerError{Msg: "could not read parent " + parentSerial, Err: errors.Errorf("status %d: %v", detail.Status, detail.Error)}
	}
	parent = parent.WithoutLedgerInternals()
	parent.ChildComponents = nil

	// the request names every child of this parent the manufacturer owns, not only the picked ones
	all, err := runner.mirror.GetRelationshipsByParent(ctx, orgID, parentSerial)
	if err != nil {
		return err
	}

	childOrgs := utils.CompactUnique(utils.Map(edges, func(edge models.Relationship) string {
		return edge.ChildMspID
	}))
	for _, childOrg := range childOrgs {
		ofOrg := utils.Filter(all, func(edge models.Relationship) bool {
			return edge.ChildMspID == childOrg
		})
		runner.request(ctx, orgID, parent, childOrg, ofOrg)
	}
	return nil
}

func (runner *DaemonRunner) request(ctx context.Context, orgID string, parent dtos.Asset, childOrg string, edges []models.Relationship) {
	payload := dtos.RequestAssetPayload{
		Asset:             parent,
		ManufacturerMSPID: childOrg,
		ChildSerialNumberCustomer: utils.Map(edges, func(edge models.Relationship) dtos.RequestedChild {
			return dtos.RequestedChild{
				SerialNumberCustomer: edge.ChildSerialNumberCustomer,
				Flagged:              edge.TransferStatus == statemachine.StatusUpdatePending,
			}
		}),
	}

	res, err := runner.assetService.RequestAsset(ctx, orgID, payload)
	if err != nil {
		slog.Error("could not request asset", "org", orgID, "parent", parent.SerialNumberCustomer, "manufacturer", childOrg, "err", err)
		return
	}

	var next statemachine.RelationshipStatus
	switch res.Status {
	case http.StatusOK:
		next = statemachine.StatusParentShared
	case http.StatusForbidden:
		slog.Warn("manufacturer does not allow asset requests", "org", orgID, "parent", parent.SerialNumberCustomer, "manufacturer", childOrg)
		next = statemachine.StatusRequestAssetNotAllowed
	default:
		slog.Error("asset request failed", "org", orgID, "parent", parent.SerialNumberCustomer, "manufacturer", childOrg, "status", res.Status, "errors", res.Error)
		return
	}

	for _, edge := range edges {
		if !utils.Contains(requestableStatuses, edge.TransferStatus) {
			continue
		}
		if err := runner.advanceEdge(ctx, orgID, edge, next); err != nil {
			slog.Error("could not update relationship", "org", orgID, "child", edge.ChildSerialNumberCustomer, "err", err)
		}
	}
}

// uniqueChildren keeps one edge per child, advance moves the other edges of the child in the same status along.
func uniqueChildren(edges []models.Relationship) []models.Relationship {
	return utils.UniqBy(edges, func(edge models.Relationship) string {
		return edge.ChildSerialNumberCustomer
	})
}
