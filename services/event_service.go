package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/l3montree-dev/partchain/utils"
	"github.com/pkg/errors"
)

type eventService struct {
	assetService shared.AssetService
	mirror       shared.MirrorService
	executor     shared.LedgerExecutor
}

var _ shared.EventService = (*eventService)(nil)

func NewEventService(assetService shared.AssetService, mirror shared.MirrorService, executor shared.LedgerExecutor) *eventService {
	return &eventService{
		assetService: assetService,
		mirror:       mirror,
		executor:     executor,
	}
}

// HandleEvent processes a chaincode event on behalf of the organization it is addressed to.
// Events for organizations without a local identity are ignored.
func (s *eventService) HandleEvent(ctx context.Context, eventName string, payload []byte) error {
	var event dtos.LedgerEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return errors.Wrap(err, "could not decode event payload")
	}

	if !utils.Contains(s.executor.Organizations(), event.MspID) {
		slog.Debug("ignoring event addressed to another organization", "event", eventName, "org", event.MspID)
		return nil
	}

	switch eventName {
	case dtos.EventRequest:
		return s.handleRequest(ctx, event)
	case dtos.EventExchange:
		return s.handleExchange(ctx, event)
	case dtos.EventRequestInvestigation, dtos.EventExchangeInvestigation:
		slog.Info("received investigation event", "event", eventName, "org", event.MspID, "investigation", event.InvestigationID, "key", event.Key)
		return nil
	default:
		slog.Warn("no handler for event", "event", eventName)
		return nil
	}
}

// handleRequest answers a partner which asked for the children of one of its assets.
// The parent is validated against its public hash before anything is shared.
func (s *eventService) handleRequest(ctx context.Context, event dtos.LedgerEvent) error {
	orgID := event.MspID

	detail, err := s.assetService.GetAssetEventDetail(ctx, orgID, event.Key)
	if err != nil {
		return err
	}
	raw, ok := detail.First()
	if !detail.OK() || !ok {
		slog.Warn("request event points to nothing readable", "org", orgID, "key", event.Key, "status", detail.Status)
		return nil
	}

	var request dtos.RequestAssetPayload
	if err := json.Unmarshal(raw, &request); err != nil {
		return errors.Wrap(err, "could not decode asset request")
	}
	if request.SerialNumberCustomer == "" {
		slog.Info("request event does not carry an asset request", "org", orgID, "key", event.Key)
		return nil
	}

	parent := request.Asset
	parent.ComponentsSerialNumbers = utils.Map(request.ChildSerialNumberCustomer, func(c dtos.RequestedChild) string {
		return c.SerialNumberCustomer
	})
	flagged := utils.Map(utils.Filter(request.ChildSerialNumberCustomer, func(c dtos.RequestedChild) bool {
		return c.Flagged
	}), func(c dtos.RequestedChild) string {
		return c.SerialNumberCustomer
	})

	validation, err := s.assetService.ValidateAsset(ctx, orgID, raw)
	if err != nil {
		return err
	}
	if result, ok := validation.First(); !validation.OK() || !ok || !result.Result {
		slog.Warn("parent of asset request failed hash validation, nothing is shared", "org", orgID, "parent", parent.SerialNumberCustomer, "requester", parent.MspID)
		return s.mirror.UpsertAsset(ctx, orgID, parent, parent.MspID, &dtos.RelationshipExtra{
			ChildMspID:     orgID,
			TransferStatus: statemachine.StatusParentHashValidationFailure,
		}, true)
	}

	// if this fails nothing is shared and the requester asks again
	if err := s.mirror.UpsertAsset(ctx, orgID, parent, parent.MspID, &dtos.RelationshipExtra{
		ChildMspID:     orgID,
		TransferStatus: statemachine.StatusParentShared,
	}, true); err != nil {
		return errors.Wrap(err, "could not store requesting parent")
	}

	for _, child := range parent.ComponentsSerialNumbers {
		if err := s.shareChild(ctx, orgID, parent.MspID, child, utils.Contains(flagged, child)); err != nil {
			slog.Error("could not share requested child", "org", orgID, "child", child, "requester", parent.MspID, "err", err)
		}
	}
	return nil
}

func (s *eventService) shareChild(ctx context.Context, orgID, requester, serial string, flagged bool) error {
	child, err := s.readOwnAsset(ctx, orgID, serial)
	if err != nil || child == nil {
		return err
	}

	if flagged {
		slog.Warn("asset was flagged by its parent", "org", orgID, "serial", serial)
		update := child.WithoutLedgerInternals()
		update.ChildComponents = nil
		update.QualityStatus = dtos.QualityStatusFlag
		if _, err := s.assetService.UpdateAsset(ctx, orgID, []dtos.Asset{update}, true); err != nil {
			return errors.Wrap(err, "could not flag asset")
		}
		if child, err = s.readOwnAsset(ctx, orgID, serial); err != nil || child == nil {
			return err
		}
	}

	// the requester only learns about the child itself, never about its components
	info, err := json.Marshal(child.WithoutChildren())
	if err != nil {
		return errors.Wrap(err, "could not encode asset")
	}

	status := statemachine.StatusChildShared
	res, err := s.assetService.ExchangeAsset(ctx, orgID, requester, serial, string(info))
	if err != nil || !res.OK() {
		slog.Error("could not exchange requested child", "org", orgID, "serial", serial, "requester", requester, "status", res.Status, "err", err)
		status = statemachine.StatusChildExchangeFailure
	}
	return s.mirror.UpdateRelationshipStatus(ctx, orgID, serial, status, "")
}

func (s *eventService) readOwnAsset(ctx context.Context, orgID, serial string) (*dtos.Asset, error) {
	detail, err := s.assetService.GetAssetDetail(ctx, orgID, serial)
	if err != nil {
		return nil, err
	}
	asset, ok := detail.First()
	if !detail.OK() || !ok {
		slog.Error("requested child not found, it can not be shared", "org", orgID, "serial", serial, "status", detail.Status)
		return nil, nil
	}
	return &asset, nil
}

// handleExchange stores an asset a partner wrote into our private data collection.
func (s *eventService) handleExchange(ctx context.Context, event dtos.LedgerEvent) error {
	orgID := event.MspID

	detail, err := s.assetService.GetAssetEventDetail(ctx, orgID, event.Key)
	if err != nil {
		return err
	}
	if detail.Status == http.StatusNotFound {
		slog.Warn("exchanged asset not found in private data collection, skipping event", "org", orgID, "key", event.Key)
		return nil
	}
	if !detail.OK() {
		return shared.LedgerError{Msg: "could not read exchanged asset " + event.Key, Err: errors.Errorf("status %d: %v", detail.Status, detail.Error)}
	}
	raw, ok := detail.First()
	if !ok {
		slog.Warn("exchange event points to an empty private data entry, skipping event", "org", orgID, "key", event.Key)
		return nil
	}

	var asset dtos.Asset
	if err := json.Unmarshal(raw, &asset); err != nil {
		return errors.Wrap(err, "could not decode exchanged asset")
	}
	if asset.SerialNumberManufacturer == "" {
		return nil
	}

	validation, err := s.assetService.ValidateAsset(ctx, orgID, raw)
	if err != nil {
		return err
	}
	result, ok := validation.First()
	valid := validation.OK() && ok && result.Result

	if err := s.mirror.UpsertAsset(ctx, orgID, asset, asset.MspID, nil, true); err != nil {
		return errors.Wrap(err, "could not store exchanged asset")
	}

	if !valid {
		slog.Warn("exchanged asset failed hash validation", "org", orgID, "serial", asset.SerialNumberCustomer, "from", asset.MspID)
		return s.mirror.UpdateRelationshipStatus(ctx, orgID, asset.SerialNumberCustomer, statemachine.StatusChildHashValidationFailure, "")
	}

	// updates of a parent arrive the same way, those have no edge pointing at them
	if err := s.mirror.UpdateRelationshipStatus(ctx, orgID, asset.SerialNumberCustomer, statemachine.StatusChildShared, ""); err != nil {
		return err
	}

	if asset.QualityStatus == dtos.QualityStatusNOK {
		return s.propagateNOK(ctx, orgID, asset.SerialNumberCustomer)
	}
	return nil
}

// propagateNOK marks every parent we own as NOK once one of its components turned NOK.
func (s *eventService) propagateNOK(ctx context.Context, orgID, serial string) error {
	withParents, err := s.mirror.GetAssetParent(ctx, orgID, serial)
	if err != nil {
		return err
	}
	for _, parent := range withParents.Parents {
		if parent.MspID != orgID {
			continue
		}
		slog.Info("component changed to NOK, changing parent as well", "org", orgID, "component", serial, "parent", parent.SerialNumberCustomer)
		parent.QualityStatus = dtos.QualityStatusNOK
		if _, err := s.assetService.UpdateAsset(ctx, orgID, []dtos.Asset{parent}, true); err != nil {
			slog.Error("could not change parent to NOK", "org", orgID, "parent", parent.SerialNumberCustomer, "err", err)
		}
	}
	return nil
}
