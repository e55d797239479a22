package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/mocks"
	"github.com/l3montree-dev/partchain/reconciler"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func eventPayload(org, key string) []byte {
	b, _ := json.Marshal(dtos.LedgerEvent{Key: key, MspID: org})
	return b
}

func rawResponse(status int, data any) reconciler.Response[json.RawMessage] {
	if data == nil {
		return reconciler.NewResponse[json.RawMessage](status, nil, false)
	}
	raw, _ := json.Marshal(data)
	return reconciler.NewResponse(status, []json.RawMessage{raw}, false)
}

func validation(result bool) reconciler.Response[dtos.ValidationResult] {
	return reconciler.NewResponse(200, []dtos.ValidationResult{{Result: result}}, false)
}

func ownDetail(serial string) reconciler.Response[dtos.Asset] {
	asset := validAsset(serial)
	asset.MspID = "Lion"
	return reconciler.NewResponse(200, []dtos.Asset{asset}, false)
}

func assetRequest(parent string, children ...dtos.RequestedChild) dtos.RequestAssetPayload {
	asset := validAsset(parent)
	asset.MspID = "Tiger"
	return dtos.RequestAssetPayload{
		Asset:                     asset,
		ManufacturerMSPID:         "Lion",
		ChildSerialNumberCustomer: children,
	}
}

func newEventTest(t *testing.T) (*eventService, *mocks.AssetService, *mocks.MirrorService) {
	executor := mocks.NewLedgerExecutor(t)
	executor.On("Organizations").Return([]string{"Lion"}).Maybe()
	assetService := mocks.NewAssetService(t)
	mirror := mocks.NewMirrorService(t)
	return NewEventService(assetService, mirror, executor), assetService, mirror
}

func TestHandleRequestEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("should ignore events addressed to an organization without local identity", func(t *testing.T) {
		s, _, _ := newEventTest(t)
		err := s.HandleEvent(ctx, dtos.EventRequest, eventPayload("Tiger", "k1"))
		assert.Nil(t, err)
	})

	t.Run("should return an error for a broken payload", func(t *testing.T) {
		s, _, _ := newEventTest(t)
		err := s.HandleEvent(ctx, dtos.EventRequest, []byte("{"))
		assert.NotNil(t, err)
	})

	t.Run("should store the requesting parent and share the requested children", func(t *testing.T) {
		s, assetService, mirror := newEventTest(t)
		request := assetRequest("p1", dtos.RequestedChild{SerialNumberCustomer: "c1"})

		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(200, request), nil)
		assetService.On("ValidateAsset", mock.Anything, "Lion", mock.Anything).Return(validation(true), nil)
		mirror.On("UpsertAsset", mock.Anything, "Lion", mock.MatchedBy(func(a dtos.Asset) bool {
			return a.SerialNumberCustomer == "p1" && assert.ObjectsAreEqual([]string{"c1"}, a.ComponentsSerialNumbers)
		}), "Tiger", &dtos.RelationshipExtra{ChildMspID: "Lion", TransferStatus: statemachine.StatusParentShared}, true).Return(nil)
		assetService.On("GetAssetDetail", mock.Anything, "Lion", "c1").Return(ownDetail("c1"), nil)
		assetService.On("ExchangeAsset", mock.Anything, "Lion", "Tiger", "c1", mock.Anything).Return(rawResponse(200, nil), nil)
		mirror.On("UpdateRelationshipStatus", mock.Anything, "Lion", "c1", statemachine.StatusChildShared, "").Return(nil)

		err := s.HandleEvent(ctx, dtos.EventRequest, eventPayload("Lion", "k1"))
		assert.Nil(t, err)
	})

	t.Run("should never share the components of a requested child", func(t *testing.T) {
		s, assetService, mirror := newEventTest(t)
		request := assetRequest("p1", dtos.RequestedChild{SerialNumberCustomer: "c1"})
		child := validAsset("c1", "d1")
		child.MspID = "Lion"

		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(200, request), nil)
		assetService.On("ValidateAsset", mock.Anything, "Lion", mock.Anything).Return(validation(true), nil)
		mirror.On("UpsertAsset", mock.Anything, "Lion", mock.Anything, "Tiger", mock.Anything, true).Return(nil)
		assetService.On("GetAssetDetail", mock.Anything, "Lion", "c1").Return(reconciler.NewResponse(200, []dtos.Asset{child}, false), nil)
		assetService.On("ExchangeAsset", mock.Anything, "Lion", "Tiger", "c1", mock.MatchedBy(func(info string) bool {
			var sent dtos.Asset
			return json.Unmarshal([]byte(info), &sent) == nil && len(sent.ComponentsSerialNumbers) == 0
		})).Return(rawResponse(200, nil), nil)
		mirror.On("UpdateRelationshipStatus", mock.Anything, "Lion", "c1", statemachine.StatusChildShared, "").Return(nil)

		assert.Nil(t, s.HandleEvent(ctx, dtos.EventRequest, eventPayload("Lion", "k1")))
	})

	t.Run("should flag a child before sharing it if the parent asked for it", func(t *testing.T) {
		s, assetService, mirror := newEventTest(t)
		request := assetRequest("p1", dtos.RequestedChild{SerialNumberCustomer: "c1", Flagged: true})

		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(200, request), nil)
		assetService.On("ValidateAsset", mock.Anything, "Lion", mock.Anything).Return(validation(true), nil)
		mirror.On("UpsertAsset", mock.Anything, "Lion", mock.Anything, "Tiger", mock.Anything, true).Return(nil)
		assetService.On("GetAssetDetail", mock.Anything, "Lion", "c1").Return(ownDetail("c1"), nil)
		assetService.On("UpdateAsset", mock.Anything, "Lion", mock.MatchedBy(func(assets []dtos.Asset) bool {
			return len(assets) == 1 && assets[0].QualityStatus == dtos.QualityStatusFlag
		}), true).Return(rawResponse(200, nil), nil).Once()
		assetService.On("ExchangeAsset", mock.Anything, "Lion", "Tiger", "c1", mock.Anything).Return(rawResponse(200, nil), nil)
		mirror.On("UpdateRelationshipStatus", mock.Anything, "Lion", "c1", statemachine.StatusChildShared, "").Return(nil)

		assert.Nil(t, s.HandleEvent(ctx, dtos.EventRequest, eventPayload("Lion", "k1")))
		assetService.AssertNumberOfCalls(t, "GetAssetDetail", 2)
	})

	t.Run("should mark the edge as failed if the exchange was rejected", func(t *testing.T) {
		s, assetService, mirror := newEventTest(t)
		request := assetRequest("p1", dtos.RequestedChild{SerialNumberCustomer: "c1"})

		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(200, request), nil)
		assetService.On("ValidateAsset", mock.Anything, "Lion", mock.Anything).Return(validation(true), nil)
		mirror.On("UpsertAsset", mock.Anything, "Lion", mock.Anything, "Tiger", mock.Anything, true).Return(nil)
		assetService.On("GetAssetDetail", mock.Anything, "Lion", "c1").Return(ownDetail("c1"), nil)
		assetService.On("ExchangeAsset", mock.Anything, "Lion", "Tiger", "c1", mock.Anything).Return(rawResponse(500, nil), nil)
		mirror.On("UpdateRelationshipStatus", mock.Anything, "Lion", "c1", statemachine.StatusChildExchangeFailure, "").Return(nil)

		assert.Nil(t, s.HandleEvent(ctx, dtos.EventRequest, eventPayload("Lion", "k1")))
	})

	t.Run("should share nothing if the parent fails the hash validation", func(t *testing.T) {
		s, assetService, mirror := newEventTest(t)
		request := assetRequest("p1", dtos.RequestedChild{SerialNumberCustomer: "c1"})

		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(200, request), nil)
		assetService.On("ValidateAsset", mock.Anything, "Lion", mock.Anything).Return(validation(false), nil)
		mirror.On("UpsertAsset", mock.Anything, "Lion", mock.Anything, "Tiger", &dtos.RelationshipExtra{
			ChildMspID:     "Lion",
			TransferStatus: statemachine.StatusParentHashValidationFailure,
		}, true).Return(nil)

		assert.Nil(t, s.HandleEvent(ctx, dtos.EventRequest, eventPayload("Lion", "k1")))
		assetService.AssertNotCalled(t, "ExchangeAsset", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should skip requests which can not be read", func(t *testing.T) {
		s, assetService, _ := newEventTest(t)
		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(404, nil), nil)

		assert.Nil(t, s.HandleEvent(ctx, dtos.EventRequest, eventPayload("Lion", "k1")))
	})
}

func TestHandleExchangeEvent(t *testing.T) {
	ctx := context.Background()

	exchanged := func(quality string) dtos.Asset {
		asset := validAsset("c1")
		asset.MspID = "Tiger"
		asset.QualityStatus = quality
		return asset
	}

	t.Run("should skip the event if the asset is not in the private data collection", func(t *testing.T) {
		s, assetService, _ := newEventTest(t)
		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(404, nil), nil)

		assert.Nil(t, s.HandleEvent(ctx, dtos.EventExchange, eventPayload("Lion", "k1")))
	})

	t.Run("should hand a failed read of the private data collection back to the listener", func(t *testing.T) {
		s, assetService, _ := newEventTest(t)
		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(500, nil), nil)

		err := s.HandleEvent(ctx, dtos.EventExchange, eventPayload("Lion", "k1"))
		var ledgerErr shared.LedgerError
		assert.ErrorAs(t, err, &ledgerErr)
	})

	t.Run("should store a valid asset and mark the edge as childShared", func(t *testing.T) {
		s, assetService, mirror := newEventTest(t)
		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(200, exchanged(dtos.QualityStatusOK)), nil)
		assetService.On("ValidateAsset", mock.Anything, "Lion", mock.Anything).Return(validation(true), nil)
		mirror.On("UpsertAsset", mock.Anything, "Lion", mock.MatchedBy(func(a dtos.Asset) bool {
			return a.SerialNumberCustomer == "c1"
		}), "Tiger", (*dtos.RelationshipExtra)(nil), true).Return(nil)
		mirror.On("UpdateRelationshipStatus", mock.Anything, "Lion", "c1", statemachine.StatusChildShared, "").Return(nil)

		assert.Nil(t, s.HandleEvent(ctx, dtos.EventExchange, eventPayload("Lion", "k1")))
	})

	t.Run("should mark the edge if the exchanged asset fails the hash validation", func(t *testing.T) {
		s, assetService, mirror := newEventTest(t)
		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(200, exchanged(dtos.QualityStatusOK)), nil)
		assetService.On("ValidateAsset", mock.Anything, "Lion", mock.Anything).Return(validation(false), nil)
		mirror.On("UpsertAsset", mock.Anything, "Lion", mock.Anything, "Tiger", (*dtos.RelationshipExtra)(nil), true).Return(nil)
		mirror.On("UpdateRelationshipStatus", mock.Anything, "Lion", "c1", statemachine.StatusChildHashValidationFailure, "").Return(nil)

		assert.Nil(t, s.HandleEvent(ctx, dtos.EventExchange, eventPayload("Lion", "k1")))
	})

	t.Run("should propagate NOK to the parents owned by the organization", func(t *testing.T) {
		s, assetService, mirror := newEventTest(t)
		ownParent := validAsset("p1", "c1")
		ownParent.MspID = "Lion"
		foreignParent := validAsset("p2", "c1")
		foreignParent.MspID = "Bear"

		assetService.On("GetAssetEventDetail", mock.Anything, "Lion", "k1").Return(rawResponse(200, exchanged(dtos.QualityStatusNOK)), nil)
		assetService.On("ValidateAsset", mock.Anything, "Lion", mock.Anything).Return(validation(true), nil)
		mirror.On("UpsertAsset", mock.Anything, "Lion", mock.Anything, "Tiger", (*dtos.RelationshipExtra)(nil), true).Return(nil)
		mirror.On("UpdateRelationshipStatus", mock.Anything, "Lion", "c1", statemachine.StatusChildShared, "").Return(nil)
		mirror.On("GetAssetParent", mock.Anything, "Lion", "c1").Return(dtos.AssetWithParents{
			Asset:   exchanged(dtos.QualityStatusNOK),
			Parents: []dtos.Asset{ownParent, foreignParent},
		}, nil)
		assetService.On("UpdateAsset", mock.Anything, "Lion", mock.MatchedBy(func(assets []dtos.Asset) bool {
			return len(assets) == 1 && assets[0].SerialNumberCustomer == "p1" && assets[0].QualityStatus == dtos.QualityStatusNOK
		}), true).Return(rawResponse(200, nil), nil).Once()

		assert.Nil(t, s.HandleEvent(ctx, dtos.EventExchange, eventPayload("Lion", "k1")))
	})
}
