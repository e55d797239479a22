package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/mocks"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func ledgerAnswer(status int, data any) [][]dtos.LedgerResponse {
	raw, _ := json.Marshal(data)
	return [][]dtos.LedgerResponse{{{Status: status, Data: raw}}}
}

func forSerial(serial string) any {
	return mock.MatchedBy(func(payloads []any) bool {
		p, ok := payloads[0].(dtos.SerialPayload)
		return ok && p.SerialNumberCustomer == serial
	})
}

func ledgerAsset(serial, owner string, children ...string) map[string]any {
	if children == nil {
		children = []string{}
	}
	return map[string]any{
		"serialNumberCustomer":     serial,
		"serialNumberManufacturer": "m-" + serial,
		"serialNumberType":         dtos.SerialNumberTypeSingle,
		"manufacturer":             "Lion Corp",
		"productionDateGmt":        "2024-03-01T10:00:00.000Z",
		"qualityStatus":            dtos.QualityStatusOK,
		"componentsSerialNumbers":  children,
		"mspID":                    owner,
	}
}

func TestStoreAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject SINGLE children which already have another parent", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)
		mirror.On("IsRelationshipAvailable", mock.Anything, "Lion", "a1", "c1").Return(false, nil)
		mirror.On("IsRelationshipAvailable", mock.Anything, "Lion", "a1", "c2").Return(true, nil)

		_, err := NewAssetService(executor, mirror).StoreAsset(ctx, "Lion", []dtos.Asset{validAsset("a1", "c1", "c2")})
		assert.Equal(t, 400, shared.ErrorStatusCode(err))
		assert.Equal(t, "These children of asset a1 already have a different parent and are not of type BATCH: c1", err.Error())
	})

	t.Run("should mirror the assets after the ledger accepted them", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)
		mirror.On("IsRelationshipAvailable", mock.Anything, "Lion", "a1", "c1").Return(true, nil)
		executor.On("Execute", mock.Anything, dtos.TxCreateAsset, "Lion", mock.Anything, dtos.ModeSubmit).
			Return(ledgerAnswer(200, []any{ledgerAsset("a1", "Lion", "c1")}), nil)
		mirror.On("StoreAssets", mock.Anything, "Lion", mock.MatchedBy(func(assets []dtos.Asset) bool {
			return len(assets) == 1 && assets[0].SerialNumberCustomer == "a1"
		}), "Lion").Return(nil)

		res, err := NewAssetService(executor, mirror).StoreAsset(ctx, "Lion", []dtos.Asset{validAsset("a1", "c1")})
		assert.Nil(t, err)
		assert.True(t, res.OK())
		assert.Equal(t, 1, res.ResultLength)
	})

	t.Run("should not mirror assets the ledger rejected", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)
		executor.On("Execute", mock.Anything, dtos.TxCreateAsset, "Lion", mock.Anything, dtos.ModeSubmit).
			Return([][]dtos.LedgerResponse{{{Status: 500, Message: "endorsement failed"}}}, nil)

		res, err := NewAssetService(executor, mirror).StoreAsset(ctx, "Lion", []dtos.Asset{validAsset("a1")})
		assert.Nil(t, err)
		assert.Equal(t, 500, res.Status)
		assert.Equal(t, []any{"endorsement failed"}, res.Error)
	})
}

func TestUpdateAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("should only allow flagging assets of other organizations", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)
		executor.On("Execute", mock.Anything, dtos.TxGetAssetDetail, "Lion", forSerial("x1"), dtos.ModeEvaluate).
			Return(ledgerAnswer(200, ledgerAsset("x1", "Tiger")), nil)

		asset := validAsset("x1")
		asset.QualityStatus = dtos.QualityStatusNOK
		_, err := NewAssetService(executor, mirror).UpdateAsset(ctx, "Lion", []dtos.Asset{asset}, true)
		assert.Equal(t, 400, shared.ErrorStatusCode(err))
		assert.Equal(t, "Asset x1 is not your asset, therefore you can only flag it!", err.Error())
	})

	t.Run("should mark the edges of a flagged foreign asset", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)
		executor.On("Execute", mock.Anything, dtos.TxGetAssetDetail, "Lion", forSerial("x1"), dtos.ModeEvaluate).
			Return(ledgerAnswer(200, ledgerAsset("x1", "Tiger")), nil)
		mirror.On("UpdateRelationshipStatus", mock.Anything, "Lion", "x1", statemachine.StatusUpdatePending, "").Return(nil)

		asset := validAsset("x1")
		asset.QualityStatus = dtos.QualityStatusFlag
		res, err := NewAssetService(executor, mirror).UpdateAsset(ctx, "Lion", []dtos.Asset{asset}, true)
		assert.Nil(t, err)
		assert.True(t, res.OK())
		assert.Len(t, res.Data, 1)
		assert.JSONEq(t, `"Initiated flagging process for Asset x1 to Lion Corp"`, string(res.Data[0]))
	})

	t.Run("should share an updated asset with every partner but only with their own children", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)

		current := ledgerAsset("a1", "Lion", "c1")
		current["serialNumberCustomerHash"] = "hash"
		current["componentKey"] = "key"
		executor.On("Execute", mock.Anything, dtos.TxGetAssetDetail, "Lion", forSerial("a1"), dtos.ModeEvaluate).
			Return(ledgerAnswer(200, current), nil)
		mirror.On("IsRelationshipAvailable", mock.Anything, "Lion", "a1", mock.Anything).Return(true, nil)
		executor.On("Execute", mock.Anything, dtos.TxUpdateAsset, "Lion", mock.Anything, dtos.ModeSubmit).
			Return(ledgerAnswer(200, []any{current}), nil)

		mirror.On("GetRelationshipsByParentAndStatus", mock.Anything, "Lion", "a1", mock.Anything).Return([]models.Relationship{
			{ParentSerialNumberCustomer: "a1", ChildSerialNumberCustomer: "c1", ChildMspID: "Tiger", TransferStatus: statemachine.StatusChildShared},
		}, nil)
		mirror.On("GetRelationshipsByParent", mock.Anything, "Lion", "a1").Return([]models.Relationship{
			{ParentSerialNumberCustomer: "a1", ChildSerialNumberCustomer: "c1", ChildMspID: "Tiger"},
			{ParentSerialNumberCustomer: "a1", ChildSerialNumberCustomer: "c2", ChildMspID: "Bear"},
		}, nil)
		mirror.On("GetAssetParent", mock.Anything, "Lion", "a1").Return(dtos.AssetWithParents{}, shared.NewNotFoundError("asset a1 not found"))
		mirror.On("GetInvestigationRelationships", mock.Anything, "Lion", "a1").Return(nil, nil)

		var exchanged dtos.Asset
		executor.On("Execute", mock.Anything, dtos.TxExchangeAssetInfo, "Lion", mock.MatchedBy(func(payloads []any) bool {
			p, ok := payloads[0].(dtos.ExchangeAssetPayload)
			if !ok || p.ParentMSP != "Tiger" || p.SerialNumberCustomer != "a1" {
				return false
			}
			return json.Unmarshal([]byte(p.AssetInfo), &exchanged) == nil
		}), dtos.ModeSubmit).Return([][]dtos.LedgerResponse{{{Status: 403, Message: "access denied"}}}, nil)

		mirror.On("UpdateAsset", mock.Anything, "Lion", mock.MatchedBy(func(assets []dtos.Asset) bool {
			return len(assets) == 1 && assert.ObjectsAreEqual([]string{"c2", "c1"}, assets[0].ComponentsSerialNumbers)
		}), true).Return(nil)

		asset := validAsset("a1", "c2")
		asset.QualityStatus = dtos.QualityStatusNOK
		res, err := NewAssetService(executor, mirror).UpdateAsset(ctx, "Lion", []dtos.Asset{asset}, true)
		assert.Nil(t, err)
		assert.True(t, res.OK())

		assert.Equal(t, []string{"c1"}, exchanged.ComponentsSerialNumbers)
		assert.Empty(t, exchanged.SerialNumberCustomerHash)
		assert.Empty(t, exchanged.ComponentKey)
	})

	t.Run("should fail the update when a partner could not receive it", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)

		current := ledgerAsset("a1", "Lion", "c1")
		executor.On("Execute", mock.Anything, dtos.TxGetAssetDetail, "Lion", forSerial("a1"), dtos.ModeEvaluate).
			Return(ledgerAnswer(200, current), nil)
		mirror.On("IsRelationshipAvailable", mock.Anything, "Lion", "a1", mock.Anything).Return(true, nil)
		executor.On("Execute", mock.Anything, dtos.TxUpdateAsset, "Lion", mock.Anything, dtos.ModeSubmit).
			Return(ledgerAnswer(200, []any{current}), nil)

		mirror.On("GetRelationshipsByParentAndStatus", mock.Anything, "Lion", "a1", mock.Anything).Return([]models.Relationship{
			{ParentSerialNumberCustomer: "a1", ChildSerialNumberCustomer: "c1", ChildMspID: "Tiger", TransferStatus: statemachine.StatusChildShared},
		}, nil)
		mirror.On("GetRelationshipsByParent", mock.Anything, "Lion", "a1").Return([]models.Relationship{
			{ParentSerialNumberCustomer: "a1", ChildSerialNumberCustomer: "c1", ChildMspID: "Tiger"},
		}, nil)
		mirror.On("GetAssetParent", mock.Anything, "Lion", "a1").Return(dtos.AssetWithParents{}, shared.NewNotFoundError("asset a1 not found"))
		mirror.On("GetInvestigationRelationships", mock.Anything, "Lion", "a1").Return(nil, nil)
		executor.On("Execute", mock.Anything, dtos.TxExchangeAssetInfo, "Lion", mock.Anything, dtos.ModeSubmit).
			Return([][]dtos.LedgerResponse{{{Status: 500, Message: "endorsement failure"}}}, nil)
		mirror.On("UpdateAsset", mock.Anything, "Lion", mock.Anything, true).Return(nil)

		res, err := NewAssetService(executor, mirror).UpdateAsset(ctx, "Lion", []dtos.Asset{validAsset("a1")}, true)
		assert.Nil(t, err)
		assert.Equal(t, 500, res.Status)
		assert.Contains(t, res.Error, "could not exchange asset a1 with Tiger")
		// the ledger accepted the update, it is mirrored anyway
		mirror.AssertCalled(t, "UpdateAsset", mock.Anything, "Lion", mock.Anything, true)
	})

	t.Run("should neither share nor mirror a rejected update", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)
		executor.On("Execute", mock.Anything, dtos.TxGetAssetDetail, "Lion", forSerial("a1"), dtos.ModeEvaluate).
			Return(ledgerAnswer(200, ledgerAsset("a1", "Lion")), nil)
		executor.On("Execute", mock.Anything, dtos.TxUpdateAsset, "Lion", mock.Anything, dtos.ModeSubmit).
			Return([][]dtos.LedgerResponse{{{Status: 500, Message: "mvcc conflict"}}}, nil)

		res, err := NewAssetService(executor, mirror).UpdateAsset(ctx, "Lion", []dtos.Asset{validAsset("a1")}, true)
		assert.Nil(t, err)
		assert.Equal(t, 500, res.Status)
	})
}

func TestUpsertAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("should store unknown assets and skip current ones", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)

		executor.On("Execute", mock.Anything, dtos.TxGetAssetDetail, "Lion", forSerial("a1"), dtos.ModeEvaluate).
			Return([][]dtos.LedgerResponse{{{Status: 404, Message: "not found"}}}, nil)
		executor.On("Execute", mock.Anything, dtos.TxGetAssetDetail, "Lion", forSerial("b1"), dtos.ModeEvaluate).
			Return(ledgerAnswer(200, ledgerAsset("b1", "Lion")), nil)
		executor.On("Execute", mock.Anything, dtos.TxIsAssetCurrent, "Lion", mock.Anything, dtos.ModeSubmit).
			Return(ledgerAnswer(200, map[string]any{"isCurrent": true}), nil)
		mirror.On("GetAssetDetail", mock.Anything, "Lion", "b1", 0).Return(dtos.Asset{SerialNumberCustomer: "b1"}, nil)

		executor.On("Execute", mock.Anything, dtos.TxCreateAsset, "Lion", mock.Anything, dtos.ModeSubmit).
			Return(ledgerAnswer(200, []any{ledgerAsset("a1", "Lion")}), nil)
		mirror.On("StoreAssets", mock.Anything, "Lion", mock.Anything, "Lion").Return(nil)

		result, err := NewAssetService(executor, mirror).UpsertAsset(ctx, "Lion", []dtos.Asset{validAsset("a1"), validAsset("b1")})
		assert.Nil(t, err)
		assert.Equal(t, 200, result.Status)
		assert.Equal(t, 1, result.AssetsStored)
		assert.Equal(t, 0, result.AssetsUpdated)
		assert.Equal(t, 2, result.ResultLength)
		assert.Len(t, result.Data, 2)
	})

	t.Run("should report a failed store when nothing had to be updated", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)

		executor.On("Execute", mock.Anything, dtos.TxGetAssetDetail, "Lion", forSerial("a1"), dtos.ModeEvaluate).
			Return([][]dtos.LedgerResponse{{{Status: 404, Message: "not found"}}}, nil)
		executor.On("Execute", mock.Anything, dtos.TxCreateAsset, "Lion", mock.Anything, dtos.ModeSubmit).
			Return([][]dtos.LedgerResponse{{{Status: 500, Message: dtos.InvalidFunctionCallErrorMessage}}}, nil)

		result, err := NewAssetService(executor, mirror).UpsertAsset(ctx, "Lion", []dtos.Asset{validAsset("a1")})
		assert.Nil(t, err)
		assert.Equal(t, 500, result.Status)
		assert.Equal(t, 0, result.AssetsStored)
		assert.NotEmpty(t, result.Error)
		mirror.AssertNotCalled(t, "StoreAssets", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should mirror assets which are only known to the ledger", func(t *testing.T) {
		executor := mocks.NewLedgerExecutor(t)
		mirror := mocks.NewMirrorService(t)

		executor.On("Execute", mock.Anything, dtos.TxGetAssetDetail, "Lion", forSerial("b1"), dtos.ModeEvaluate).
			Return(ledgerAnswer(200, ledgerAsset("b1", "Lion", "c9")), nil)
		executor.On("Execute", mock.Anything, dtos.TxIsAssetCurrent, "Lion", mock.Anything, dtos.ModeSubmit).
			Return(ledgerAnswer(200, map[string]any{"isCurrent": true}), nil)
		mirror.On("GetAssetDetail", mock.Anything, "Lion", "b1", 0).Return(dtos.Asset{}, shared.NewNotFoundError("asset b1 not found"))
		mirror.On("StoreAssets", mock.Anything, "Lion", mock.MatchedBy(func(assets []dtos.Asset) bool {
			return assert.ObjectsAreEqual([]string{"c9"}, assets[0].ComponentsSerialNumbers)
		}), "Lion").Return(nil)

		result, err := NewAssetService(executor, mirror).UpsertAsset(ctx, "Lion", []dtos.Asset{validAsset("b1")})
		assert.Nil(t, err)
		assert.Equal(t, 200, result.Status)
		assert.Equal(t, 1, result.ResultLength)
	})
}
