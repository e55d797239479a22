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

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/l3montree-dev/partchain/reconciler"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/l3montree-dev/partchain/utils"
	"github.com/pkg/errors"
)

type assetService struct {
	executor shared.LedgerExecutor
	mirror   shared.MirrorService
}

var _ shared.AssetService = (*assetService)(nil)

func NewAssetService(executor shared.LedgerExecutor, mirror shared.MirrorService) *assetService {
	return &assetService{
		executor: executor,
		mirror:   mirror,
	}
}

func (s *assetService) StoreAsset(ctx context.Context, orgID string, assets []dtos.Asset) (reconciler.Response[json.RawMessage], error) {
	assets, err := ValidateAssetList(assets)
	if err != nil {
		return reconciler.Response[json.RawMessage]{}, err
	}
	if len(assets) == 0 {
		return reconciler.NewResponse(http.StatusOK, []json.RawMessage{}, true), nil
	}

	if err := s.checkChildrenAvailability(ctx, orgID, assets); err != nil {
		return reconciler.Response[json.RawMessage]{}, err
	}

	res, err := execute[json.RawMessage](ctx, s.executor, dtos.TxCreateAsset, orgID, toPayloads(assets), dtos.ModeSubmit, collectAll)
	if err != nil {
		return res, err
	}
	if !res.OK() {
		slog.Error("could not store assets on the ledger", "org", orgID, "status", res.Status, "errors", res.Error)
		return res, nil
	}

	if err := s.mirror.StoreAssets(ctx, orgID, assets, orgID); err != nil {
		return res, errors.Wrap(err, "could not store assets in mirror")
	}
	return res, nil
}

// UpdateAsset updates the assets owned by the organization and shares the result with every partner
// which already received them. Assets of other organizations can only be flagged.
func (s *assetService) UpdateAsset(ctx context.Context, orgID string, assets []dtos.Asset, createTransactionRecord bool) (reconciler.Response[json.RawMessage], error) {
	assets, err := ValidateAssetList(assets)
	if err != nil {
		return reconciler.Response[json.RawMessage]{}, err
	}

	owned := []dtos.Asset{}
	foreign := []dtos.Asset{}
	for _, asset := range assets {
		detail, err := s.GetAssetDetail(ctx, orgID, asset.SerialNumberCustomer)
		if err != nil {
			return reconciler.Response[json.RawMessage]{}, err
		}
		current, ok := detail.First()
		if detail.OK() && ok && current.MspID == orgID {
			// children can not be removed
			asset.ComponentsSerialNumbers = utils.Union(asset.ComponentsSerialNumbers, current.ComponentsSerialNumbers)
			owned = append(owned, asset)
			continue
		}
		foreign = append(foreign, asset)
	}

	flagged, err := s.flagForeignAssets(ctx, orgID, foreign)
	if err != nil {
		return reconciler.Response[json.RawMessage]{}, err
	}

	var channelResults [][]dtos.LedgerResponse
	if len(flagged) > 0 {
		data, err := json.Marshal(flagged)
		if err != nil {
			return reconciler.Response[json.RawMessage]{}, errors.Wrap(err, "could not encode flagging result")
		}
		channelResults = append(channelResults, []dtos.LedgerResponse{{Status: http.StatusOK, Data: data}})
	}

	if len(owned) > 0 {
		if err := s.checkChildrenAvailability(ctx, orgID, owned); err != nil {
			return reconciler.Response[json.RawMessage]{}, err
		}

		results, err := s.executor.Execute(ctx, dtos.TxUpdateAsset, orgID, toPayloads(owned), dtos.ModeSubmit)
		if err != nil {
			return reconciler.Response[json.RawMessage]{}, err
		}
		channelResults = append(channelResults, results...)

		if updated := reconciler.Reconcile[json.RawMessage](results, collectAll); updated.OK() {
			for _, asset := range owned {
				// the update is on the ledger, failed exchanges only fail the response
				channelResults = append(channelResults, s.shareUpdate(ctx, orgID, asset.SerialNumberCustomer))
				if err := s.mirror.UpdateAsset(ctx, orgID, []dtos.Asset{asset}, createTransactionRecord); err != nil {
					return reconciler.Response[json.RawMessage]{}, errors.Wrap(err, "could not update asset in mirror")
				}
			}
		} else {
			slog.Error("could not update assets on the ledger", "org", orgID, "status", updated.Status, "errors", updated.Error)
		}
	}

	return reconciler.Reconcile[json.RawMessage](channelResults, collectAll), nil
}

// flagForeignAssets marks the edges to assets of other organizations so that the next request
// to their manufacturer carries the flag.
func (s *assetService) flagForeignAssets(ctx context.Context, orgID string, assets []dtos.Asset) ([]string, error) {
	for _, asset := range assets {
		if !strings.EqualFold(asset.QualityStatus, dtos.QualityStatusFlag) {
			return nil, shared.NewBadRequestError("Asset %s is not your asset, therefore you can only flag it!", asset.SerialNumberCustomer)
		}
	}

	messages := make([]string, 0, len(assets))
	for _, asset := range assets {
		if err := s.mirror.UpdateRelationshipStatus(ctx, orgID, asset.SerialNumberCustomer, statemachine.StatusUpdatePending, ""); err != nil {
			return nil, errors.Wrap(err, "could not flag asset")
		}
		messages = append(messages, fmt.Sprintf("Initiated flagging process for Asset %s to %s", asset.SerialNumberCustomer, asset.Manufacturer))
	}
	return messages, nil
}

// shareUpdate writes the current ledger state of an updated asset into the private data collection of every
// partner which knows the asset. Partners only see the children they supplied.
// Partners denying access are skipped, every other failed exchange is returned as a failed ledger answer.
func (s *assetService) shareUpdate(ctx context.Context, orgID, serial string) []dtos.LedgerResponse {
	failed := []dtos.LedgerResponse{}
	sharedEdges, err := s.mirror.GetRelationshipsByParentAndStatus(ctx, orgID, serial, []statemachine.RelationshipStatus{statemachine.StatusParentShared, statemachine.StatusChildShared})
	if err != nil {
		slog.Error("could not read shared relationships", "org", orgID, "serial", serial, "err", err)
		return failed
	}
	children, err := s.mirror.GetRelationshipsByParent(ctx, orgID, serial)
	if err != nil {
		slog.Error("could not read relationships", "org", orgID, "serial", serial, "err", err)
		return failed
	}
	partners := utils.Map(sharedEdges, func(r models.Relationship) string { return r.ChildMspID })

	withParents, err := s.mirror.GetAssetParent(ctx, orgID, serial)
	if err != nil && shared.ErrorStatusCode(err) != http.StatusNotFound {
		slog.Error("could not read parents", "org", orgID, "serial", serial, "err", err)
		return failed
	}
	partners = utils.Union(partners, utils.Map(withParents.Parents, func(a dtos.Asset) string { return a.MspID }))
	partners = utils.Without(partners, []string{orgID})

	investigations, err := s.mirror.GetInvestigationRelationships(ctx, orgID, serial)
	if err != nil {
		slog.Error("could not read investigations", "org", orgID, "serial", serial, "err", err)
		return failed
	}
	investigationOrgs := utils.Map(investigations, func(r models.InvestigationRelationship) string { return r.SharedWithOrg })

	detail, err := s.GetAssetDetail(ctx, orgID, serial)
	if err != nil {
		slog.Error("could not read updated asset", "org", orgID, "serial", serial, "err", err)
		return failed
	}
	current, ok := detail.First()
	if !detail.OK() || !ok {
		slog.Error("updated asset is not readable from the ledger", "org", orgID, "serial", serial, "status", detail.Status)
		return failed
	}
	current = current.WithoutLedgerInternals()
	current.ChildComponents = nil

	for _, partner := range utils.Without(partners, investigationOrgs) {
		asset := current
		asset.ComponentsSerialNumbers = utils.Map(utils.Filter(children, func(r models.Relationship) bool {
			return r.ChildMspID == partner
		}), func(r models.Relationship) string {
			return r.ChildSerialNumberCustomer
		})

		info, err := json.Marshal(asset)
		if err != nil {
			slog.Error("could not encode asset", "serial", serial, "err", err)
			continue
		}
		res, err := s.ExchangeAsset(ctx, orgID, partner, serial, string(info))
		switch {
		case err != nil:
			slog.Error("could not exchange updated asset", "org", orgID, "partner", partner, "serial", serial, "err", err)
			failed = append(failed, exchangeFailure(http.StatusInternalServerError, serial, partner))
		case res.Status == http.StatusForbidden:
			slog.Warn("partner does not grant access, updated asset not exchanged", "org", orgID, "partner", partner, "serial", serial)
		case !res.OK():
			monitoring.Alert("could not exchange updated asset", errors.Errorf("status %d: %v", res.Status, res.Error), "org", orgID, "partner", partner, "serial", serial)
			failed = append(failed, exchangeFailure(res.Status, serial, partner))
		}
	}

	if len(investigations) == 0 {
		return failed
	}
	info, err := json.Marshal(current)
	if err != nil {
		slog.Error("could not encode asset", "serial", serial, "err", err)
		return failed
	}
	payloads := utils.Map(investigations, func(r models.InvestigationRelationship) any {
		return dtos.InvestigationExchangePayload{
			InvestigationID: r.InvestigationID,
			AssetInfo:       string(info),
			TargetOrg:       r.SharedWithOrg,
		}
	})
	res, err := execute[json.RawMessage](ctx, s.executor, dtos.TxExchangeAssetForInvestigation, orgID, payloads, dtos.ModeSubmit, collectAll)
	if err != nil {
		slog.Error("could not exchange updated asset for investigation", "org", orgID, "serial", serial, "err", err)
		return append(failed, exchangeFailure(http.StatusInternalServerError, serial, "investigation"))
	}
	if !res.OK() && res.Status != http.StatusForbidden {
		slog.Error("could not exchange updated asset for investigation", "org", orgID, "serial", serial, "status", res.Status, "errors", res.Error)
		return append(failed, exchangeFailure(res.Status, serial, "investigation"))
	}
	slog.Info("exchanged updated asset for investigation", "org", orgID, "serial", serial, "status", res.Status)
	return failed
}

func exchangeFailure(status int, serial, partner string) dtos.LedgerResponse {
	return dtos.LedgerResponse{
		Status:  status,
		Message: fmt.Sprintf("could not exchange asset %s with %s", serial, partner),
	}
}

func (s *assetService) ExchangeAsset(ctx context.Context, orgID, targetOrg, serial, assetInfo string) (reconciler.Response[json.RawMessage], error) {
	payload := dtos.ExchangeAssetPayload{
		ParentMSP:            targetOrg,
		SerialNumberCustomer: serial,
		AssetInfo:            assetInfo,
	}
	return execute[json.RawMessage](ctx, s.executor, dtos.TxExchangeAssetInfo, orgID, []any{payload}, dtos.ModeSubmit, collectAll)
}

func (s *assetService) IsAssetCurrent(ctx context.Context, orgID string, asset dtos.Asset) (reconciler.Response[dtos.IsCurrentResult], error) {
	asset.ChildComponents = nil
	return execute[dtos.IsCurrentResult](ctx, s.executor, dtos.TxIsAssetCurrent, orgID, []any{asset.WithoutLedgerInternals()}, dtos.ModeSubmit, firstOnly)
}

// UpsertAsset stores unknown assets and updates the known ones which differ from the ledger.
func (s *assetService) UpsertAsset(ctx context.Context, orgID string, assets []dtos.Asset) (dtos.UpsertResult, error) {
	assets, err := ValidateAssetList(assets)
	if err != nil {
		return dtos.UpsertResult{}, err
	}

	toStore := []dtos.Asset{}
	toUpdate := []dtos.Asset{}
	unchanged := []json.RawMessage{}
	for _, asset := range assets {
		detail, err := s.GetAssetDetail(ctx, orgID, asset.SerialNumberCustomer)
		if err != nil {
			return dtos.UpsertResult{}, err
		}
		current, ok := detail.First()
		if !detail.OK() || !ok {
			toStore = append(toStore, asset)
			continue
		}

		asset.MspID = current.MspID
		asset.ComponentsSerialNumbers = utils.Union(asset.ComponentsSerialNumbers, current.ComponentsSerialNumbers)

		isCurrent, err := s.IsAssetCurrent(ctx, orgID, asset)
		if err != nil {
			return dtos.UpsertResult{}, err
		}
		if result, ok := isCurrent.First(); ok && result.IsCurrent {
			slog.Info("asset already on the ledger, nothing to update", "org", orgID, "serial", asset.SerialNumberCustomer)
			raw, err := json.Marshal(asset)
			if err != nil {
				return dtos.UpsertResult{}, errors.Wrap(err, "could not encode asset")
			}
			unchanged = append(unchanged, raw)
		} else {
			toUpdate = append(toUpdate, asset)
		}

		// the ledger knows the asset but the mirror might not
		_, err = s.mirror.GetAssetDetail(ctx, orgID, asset.SerialNumberCustomer, 0)
		if shared.ErrorStatusCode(err) == http.StatusNotFound {
			if err := s.mirror.StoreAssets(ctx, orgID, []dtos.Asset{asset}, current.MspID); err != nil {
				return dtos.UpsertResult{}, errors.Wrap(err, "could not store asset in mirror")
			}
		} else if err != nil {
			return dtos.UpsertResult{}, err
		}
	}

	// only the calls which ran decide the status
	var updated, stored reconciler.Response[json.RawMessage]
	codes := []int{}
	if len(toUpdate) > 0 {
		if updated, err = s.UpdateAsset(ctx, orgID, toUpdate, false); err != nil {
			return dtos.UpsertResult{}, err
		}
		codes = append(codes, updated.Status)
	}
	if len(toStore) > 0 {
		if stored, err = s.StoreAsset(ctx, orgID, toStore); err != nil {
			return dtos.UpsertResult{}, err
		}
		codes = append(codes, stored.Status)
	}
	status := reconciler.ResolveStatus(codes)

	data := make([]json.RawMessage, 0, len(updated.Data)+len(stored.Data)+len(unchanged))
	data = append(data, updated.Data...)
	data = append(data, stored.Data...)
	data = append(data, unchanged...)

	result := dtos.UpsertResult{
		Status:        status,
		Data:          data,
		ResultLength:  updated.ResultLength + stored.ResultLength + len(unchanged),
		AssetsStored:  stored.ResultLength,
		AssetsUpdated: updated.ResultLength,
	}
	if updated.Error != nil || stored.Error != nil {
		result.Error = append(append([]any{}, updated.Error...), stored.Error...)
	}
	return result, nil
}

func (s *assetService) RequestAsset(ctx context.Context, orgID string, payload dtos.RequestAssetPayload) (reconciler.Response[json.RawMessage], error) {
	return execute[json.RawMessage](ctx, s.executor, dtos.TxRequestAsset, orgID, []any{payload}, dtos.ModeSubmit, collectAll)
}

func (s *assetService) GetAssetDetail(ctx context.Context, orgID, serial string) (reconciler.Response[dtos.Asset], error) {
	return execute[dtos.Asset](ctx, s.executor, dtos.TxGetAssetDetail, orgID, []any{dtos.SerialPayload{SerialNumberCustomer: serial}}, dtos.ModeEvaluate, firstOnly)
}

func (s *assetService) GetPublicAssetDetail(ctx context.Context, orgID, serial string) (reconciler.Response[dtos.Asset], error) {
	return execute[dtos.Asset](ctx, s.executor, dtos.TxGetPublicAssetDetail, orgID, []any{dtos.SerialPayload{SerialNumberCustomer: serial}}, dtos.ModeEvaluate, firstOnly)
}

// GetAssetEventDetail reads the object an event points to. Depending on the event this is
// an asset request or an exchanged asset.
func (s *assetService) GetAssetEventDetail(ctx context.Context, orgID, serial string) (reconciler.Response[json.RawMessage], error) {
	return execute[json.RawMessage](ctx, s.executor, dtos.TxGetAssetEventDetail, orgID, []any{dtos.SerialPayload{SerialNumberCustomer: serial}}, dtos.ModeEvaluate, firstOnly)
}

func (s *assetService) ValidateAsset(ctx context.Context, orgID string, asset any) (reconciler.Response[dtos.ValidationResult], error) {
	return execute[dtos.ValidationResult](ctx, s.executor, dtos.TxValidateAsset, orgID, []any{asset}, dtos.ModeEvaluate, firstOnly)
}

// checkChildrenAvailability rejects assets claiming SINGLE children which already belong to another parent.
func (s *assetService) checkChildrenAvailability(ctx context.Context, orgID string, assets []dtos.Asset) error {
	for _, asset := range assets {
		unavailable := []string{}
		for _, child := range asset.ComponentsSerialNumbers {
			available, err := s.mirror.IsRelationshipAvailable(ctx, orgID, asset.SerialNumberCustomer, child)
			if err != nil {
				return err
			}
			if !available {
				unavailable = append(unavailable, child)
			}
		}
		if len(unavailable) > 0 {
			return shared.NewBadRequestError("These children of asset %s already have a different parent and are not of type BATCH: %s", asset.SerialNumberCustomer, strings.Join(unavailable, ","))
		}
	}
	return nil
}
