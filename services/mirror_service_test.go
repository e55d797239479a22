package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/database/repositories"
	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/integrationtestutil"
	"github.com/l3montree-dev/partchain/mocks"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() shared.ReconcilerConfig {
	config := shared.DefaultReconcilerConfig()
	config.ChildrenMaxRecursiveLimit = 3
	return config
}

func newTestMirror(t *testing.T) *mirrorService {
	t.Helper()
	return NewMirrorService(
		integrationtestutil.NewSQLiteRegistry(t),
		repositories.NewAssetRepository(),
		repositories.NewRelationshipRepository(),
		repositories.NewTransactionRepository(),
		repositories.NewInvestigationRelationshipRepository(),
		testConfig(),
	)
}

func TestMirrorStoreAndDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("should store assets with their edges and read them back", func(t *testing.T) {
		mirror := newTestMirror(t)

		err := mirror.StoreAssets(ctx, "Lion", []dtos.Asset{validAsset("a1", "b1", "b2")}, "Lion")
		assert.Nil(t, err)

		asset, err := mirror.GetAssetDetail(ctx, "Lion", "a1", 0)
		assert.Nil(t, err)
		assert.Equal(t, "Lion", asset.MspID)
		assert.Equal(t, []string{"b1", "b2"}, asset.ComponentsSerialNumbers)
		assert.Equal(t, "2024-03-01T10:00:00.000Z", asset.ProductionDateGmt)
		assert.Empty(t, asset.ChildComponents)

		edges, err := mirror.GetRelationshipsByParent(ctx, "Lion", "a1")
		assert.Nil(t, err)
		assert.Len(t, edges, 2)
		for _, edge := range edges {
			assert.Equal(t, "Lion", edge.ParentMspID)
			assert.Equal(t, "", edge.ChildMspID)
			assert.Equal(t, statemachine.StatusUnknown, edge.TransferStatus)
			assert.Equal(t, 0, edge.Retries)
			assert.NotNil(t, edge.LastRetry)
		}
	})

	t.Run("should store a large batch with all of its edges", func(t *testing.T) {
		mirror := newTestMirror(t)

		assets := make([]dtos.Asset, 0, 100)
		for i := range 100 {
			children := make([]string, 0, 40)
			for j := range 40 {
				children = append(children, fmt.Sprintf("c%d-%d", i, j))
			}
			assets = append(assets, validAsset(fmt.Sprintf("a%d", i), children...))
		}
		assert.Nil(t, mirror.StoreAssets(ctx, "Lion", assets, "Lion"))
		// storing the same batch again is a no-op
		assert.Nil(t, mirror.StoreAssets(ctx, "Lion", assets, "Lion"))

		edges, err := mirror.GetRelationshipsByStatus(ctx, "Lion", []statemachine.RelationshipStatus{statemachine.StatusUnknown}, 0, false)
		assert.Nil(t, err)
		assert.Len(t, edges, 4000)
		asset, err := mirror.GetAssetDetail(ctx, "Lion", "a99", 0)
		assert.Nil(t, err)
		assert.Len(t, asset.ComponentsSerialNumbers, 40)
	})

	t.Run("should return not found for unknown assets", func(t *testing.T) {
		mirror := newTestMirror(t)
		_, err := mirror.GetAssetDetail(ctx, "Lion", "unknown", 0)
		assert.Equal(t, 404, shared.ErrorStatusCode(err))
	})

	t.Run("should nest child components up to the requested depth", func(t *testing.T) {
		mirror := newTestMirror(t)
		err := mirror.StoreAssets(ctx, "Lion", []dtos.Asset{
			validAsset("a1", "b1"),
			validAsset("b1", "c1"),
			validAsset("c1", "d1"),
			validAsset("d1"),
		}, "Lion")
		assert.Nil(t, err)

		asset, err := mirror.GetAssetDetail(ctx, "Lion", "a1", 2)
		assert.Nil(t, err)
		assert.Len(t, asset.ChildComponents, 1)
		b1 := asset.ChildComponents[0]
		assert.Equal(t, "b1", b1.SerialNumberCustomer)
		assert.Len(t, b1.ChildComponents, 1)
		c1 := b1.ChildComponents[0]
		assert.Equal(t, "c1", c1.SerialNumberCustomer)
		assert.Equal(t, []string{"d1"}, c1.ComponentsSerialNumbers)
		assert.Empty(t, c1.ChildComponents)
	})

	t.Run("should cap the depth at the configured limit", func(t *testing.T) {
		mirror := newTestMirror(t)
		mirror.config.ChildrenMaxRecursiveLimit = 1
		err := mirror.StoreAssets(ctx, "Lion", []dtos.Asset{
			validAsset("a1", "b1"),
			validAsset("b1", "c1"),
			validAsset("c1"),
		}, "Lion")
		assert.Nil(t, err)

		asset, err := mirror.GetAssetDetail(ctx, "Lion", "a1", 5)
		assert.Nil(t, err)
		assert.Len(t, asset.ChildComponents, 1)
		assert.Empty(t, asset.ChildComponents[0].ChildComponents)
	})

	t.Run("should return the direct parents of an asset", func(t *testing.T) {
		mirror := newTestMirror(t)
		batch := validAsset("c1")
		batch.SerialNumberType = dtos.SerialNumberTypeBatch
		err := mirror.StoreAssets(ctx, "Lion", []dtos.Asset{validAsset("top", "a1"), validAsset("a1", "c1"), validAsset("a2", "c1"), batch}, "Lion")
		assert.Nil(t, err)

		asset, err := mirror.GetAssetParent(ctx, "Lion", "c1")
		assert.Nil(t, err)
		assert.Equal(t, "c1", asset.SerialNumberCustomer)
		assert.Len(t, asset.Parents, 2)
		assert.Equal(t, "a1", asset.Parents[0].SerialNumberCustomer)
		assert.Equal(t, "a2", asset.Parents[1].SerialNumberCustomer)
	})
}

func TestMirrorUpsertAndUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("should store unknown assets with the given edge defaults", func(t *testing.T) {
		mirror := newTestMirror(t)
		err := mirror.UpsertAsset(ctx, "Lion", validAsset("a1", "b1"), "Tiger", &dtos.RelationshipExtra{
			ChildMspID:     "Lion",
			TransferStatus: statemachine.StatusParentShared,
		}, true)
		assert.Nil(t, err)

		asset, err := mirror.GetAssetDetail(ctx, "Lion", "a1", 0)
		assert.Nil(t, err)
		assert.Equal(t, "Tiger", asset.MspID)

		edges, err := mirror.GetRelationshipsByParent(ctx, "Lion", "a1")
		assert.Nil(t, err)
		assert.Len(t, edges, 1)
		assert.Equal(t, "Tiger", edges[0].ParentMspID)
		assert.Equal(t, "Lion", edges[0].ChildMspID)
		assert.Equal(t, statemachine.StatusParentShared, edges[0].TransferStatus)
	})

	t.Run("should record every changed property and keep the owner", func(t *testing.T) {
		mirror := newTestMirror(t)
		assert.Nil(t, mirror.StoreAssets(ctx, "Lion", []dtos.Asset{validAsset("a1")}, "Lion"))

		updated := validAsset("a1")
		updated.QualityStatus = dtos.QualityStatusNOK
		updated.ManufacturerPlant = "Plant 2"
		// same instant, different representation
		updated.ProductionDateGmt = "2024-03-01T12:00:00+02:00"
		updated.MspID = "Tiger"
		assert.Nil(t, mirror.UpsertAsset(ctx, "Lion", updated, "Tiger", nil, true))

		asset, err := mirror.GetAssetDetail(ctx, "Lion", "a1", 0)
		assert.Nil(t, err)
		assert.Equal(t, "Lion", asset.MspID)
		assert.Equal(t, dtos.QualityStatusNOK, asset.QualityStatus)
		assert.Equal(t, "Plant 2", asset.ManufacturerPlant)

		transactions, err := mirror.ListTransactions(ctx, "Lion", "a1")
		assert.Nil(t, err)
		assert.Len(t, transactions, 2)
		byProperty := map[string]models.Transaction{}
		for _, tx := range transactions {
			byProperty[tx.PropertyName] = tx
			assert.Equal(t, models.TransactionStatusStored, tx.Status)
			assert.Equal(t, "Lion", tx.UserID)
		}
		assert.Equal(t, "OK", byProperty["qualityStatus"].PropertyOldValue)
		assert.Equal(t, "NOK", byProperty["qualityStatus"].PropertyNewValue)
		assert.Equal(t, "", byProperty["manufacturerPlant"].PropertyOldValue)
		assert.Equal(t, "Plant 2", byProperty["manufacturerPlant"].PropertyNewValue)
	})

	t.Run("should not record transactions if not requested", func(t *testing.T) {
		mirror := newTestMirror(t)
		assert.Nil(t, mirror.StoreAssets(ctx, "Lion", []dtos.Asset{validAsset("a1")}, "Lion"))

		updated := validAsset("a1")
		updated.Status = "scrapped"
		assert.Nil(t, mirror.UpdateAsset(ctx, "Lion", []dtos.Asset{updated}, false))

		transactions, err := mirror.ListTransactions(ctx, "Lion", "a1")
		assert.Nil(t, err)
		assert.Empty(t, transactions)
		asset, err := mirror.GetAssetDetail(ctx, "Lion", "a1", 0)
		assert.Nil(t, err)
		assert.Equal(t, "scrapped", asset.Status)
	})

	t.Run("should add new children and never delete edges", func(t *testing.T) {
		mirror := newTestMirror(t)
		assert.Nil(t, mirror.StoreAssets(ctx, "Lion", []dtos.Asset{validAsset("a1", "b1")}, "Lion"))
		assert.Nil(t, mirror.UpdateRelationshipStatus(ctx, "Lion", "b1", statemachine.StatusChildShared, "Tiger"))

		assert.Nil(t, mirror.UpdateAsset(ctx, "Lion", []dtos.Asset{validAsset("a1", "b2")}, true))

		edges, err := mirror.GetRelationshipsByParent(ctx, "Lion", "a1")
		assert.Nil(t, err)
		assert.Len(t, edges, 2)
		assert.Equal(t, "b1", edges[0].ChildSerialNumberCustomer)
		assert.Equal(t, statemachine.StatusChildShared, edges[0].TransferStatus)
		assert.Equal(t, "b2", edges[1].ChildSerialNumberCustomer)
		assert.Equal(t, statemachine.StatusUnknown, edges[1].TransferStatus)
	})

	t.Run("should only move the edges of a child the state machine allows to move", func(t *testing.T) {
		mirror := newTestMirror(t)
		assert.Nil(t, mirror.StoreAssets(ctx, "Lion", []dtos.Asset{validAsset("a1", "b1")}, "Lion"))
		assert.Nil(t, mirror.UpdateRelationshipStatus(ctx, "Lion", "b1", statemachine.StatusChildShared, "Tiger"))
		assert.Nil(t, mirror.StoreAssets(ctx, "Lion", []dtos.Asset{validAsset("a2", "b1")}, "Lion"))

		assert.Nil(t, mirror.UpdateRelationshipStatus(ctx, "Lion", "b1", statemachine.StatusChildInPublicLedger, "Tiger"))

		edges, err := mirror.GetRelationshipsByParent(ctx, "Lion", "a1")
		assert.Nil(t, err)
		assert.Equal(t, statemachine.StatusChildShared, edges[0].TransferStatus)
		edges, err = mirror.GetRelationshipsByParent(ctx, "Lion", "a2")
		assert.Nil(t, err)
		assert.Equal(t, statemachine.StatusChildInPublicLedger, edges[0].TransferStatus)
	})

	t.Run("should skip assets which are not in the mirror", func(t *testing.T) {
		mirror := newTestMirror(t)
		assert.Nil(t, mirror.UpdateAsset(ctx, "Lion", []dtos.Asset{validAsset("ghost", "b1")}, true))

		edges, err := mirror.GetRelationshipsByParent(ctx, "Lion", "ghost")
		assert.Nil(t, err)
		assert.Empty(t, edges)
	})

	t.Run("should reject an invalid production date on update", func(t *testing.T) {
		mirror := newTestMirror(t)
		assert.Nil(t, mirror.StoreAssets(ctx, "Lion", []dtos.Asset{validAsset("a1")}, "Lion"))

		updated := validAsset("a1")
		updated.ProductionDateGmt = "yesterday"
		err := mirror.UpdateAsset(ctx, "Lion", []dtos.Asset{updated}, true)
		assert.Equal(t, 400, shared.ErrorStatusCode(err))
	})
}

func TestIsRelationshipAvailable(t *testing.T) {
	ctx := context.Background()

	mirror := newTestMirror(t)
	batch := validAsset("batch")
	batch.SerialNumberType = dtos.SerialNumberTypeBatch
	assert.Nil(t, mirror.StoreAssets(ctx, "Lion", []dtos.Asset{
		validAsset("p1", "single", "batch", "unstored"),
		validAsset("single"),
		batch,
	}, "Lion"))

	cases := []struct {
		name      string
		parent    string
		child     string
		available bool
	}{
		{"should allow a child without any parent", "p2", "fresh", true},
		{"should allow the existing parent again", "p1", "single", true},
		{"should reject a second parent of a SINGLE asset", "p2", "single", false},
		{"should allow many parents of a BATCH asset", "p2", "batch", true},
		{"should allow a child which is not stored in the mirror", "p2", "unstored", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			available, err := mirror.IsRelationshipAvailable(ctx, "Lion", c.parent, c.child)
			assert.Nil(t, err)
			assert.Equal(t, c.available, available)
		})
	}
}

func TestGetRelationshipsByStatusTiered(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tiers := []shared.RetryTier{
		{Name: "new", LimitPercentage: 0.3},
		{Name: "medium", LimitPercentage: 0.5},
		{Name: "old", LimitPercentage: 0.2},
	}
	tierNamed := func(name string) any {
		return mock.MatchedBy(func(tier shared.RetryTier) bool { return tier.Name == name })
	}

	t.Run("should hand unused quota on to the next tier", func(t *testing.T) {
		relationshipRepository := mocks.NewRelationshipRepository(t)
		mirror := NewMirrorService(integrationtestutil.NewSQLiteRegistry(t), nil, relationshipRepository, nil, nil, shared.ReconcilerConfig{NotInFabricTiers: tiers})
		mirror.now = func() time.Time { return now }

		relationshipRepository.On("FindByStatusInRetryWindow", mock.Anything, statemachine.StatusNotInFabric, tierNamed("new"), now, 3).
			Return([]models.Relationship{{ChildSerialNumberCustomer: "n1"}}, nil)
		relationshipRepository.On("FindByStatusInRetryWindow", mock.Anything, statemachine.StatusNotInFabric, tierNamed("medium"), now, 7).
			Return([]models.Relationship{{ChildSerialNumberCustomer: "m1"}, {ChildSerialNumberCustomer: "m2"}}, nil)
		relationshipRepository.On("FindByStatusInRetryWindow", mock.Anything, statemachine.StatusNotInFabric, tierNamed("old"), now, 7).
			Return([]models.Relationship{}, nil)

		edges, err := mirror.GetRelationshipsByStatusTiered(ctx, "Lion", statemachine.StatusNotInFabric, 10)
		assert.Nil(t, err)
		assert.Len(t, edges, 3)
		assert.Equal(t, "n1", edges[0].ChildSerialNumberCustomer)
		assert.Equal(t, "m2", edges[2].ChildSerialNumberCustomer)
	})

	t.Run("should pick edges by retry window from the mirror", func(t *testing.T) {
		mirror := newTestMirror(t)
		mirror.now = func() time.Time { return now }
		assert.Nil(t, mirror.StoreAssets(ctx, "Lion", []dtos.Asset{validAsset("a1", "b1", "b2")}, "Lion"))
		assert.Nil(t, mirror.UpdateRelationshipStatus(ctx, "Lion", "b1", statemachine.StatusNotInFabric, ""))

		edges, err := mirror.GetRelationshipsByStatusTiered(ctx, "Lion", statemachine.StatusNotInFabric, 10)
		assert.Nil(t, err)
		assert.Len(t, edges, 1)
		assert.Equal(t, "b1", edges[0].ChildSerialNumberCustomer)
	})
}
