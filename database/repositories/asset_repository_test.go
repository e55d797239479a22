package repositories

import (
	"testing"
	"time"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/integrationtestutil"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func asset(serial string) models.Asset {
	return models.Asset{
		SerialNumberCustomer: serial,
		SerialNumberType:     "SINGLE",
		Manufacturer:         "Lion Corp",
		ProductionDateGmt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		QualityStatus:        "OK",
		MspID:                "Lion",
	}
}

func TestAssetRepository(t *testing.T) {
	t.Run("should return gorm.ErrRecordNotFound for unknown assets", func(t *testing.T) {
		db := integrationtestutil.NewSQLiteDB(t, "lion")
		_, err := NewAssetRepository().Read(db, "missing")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("should update single fields", func(t *testing.T) {
		db := integrationtestutil.NewSQLiteDB(t, "lion")
		repository := NewAssetRepository()

		a := asset("a1")
		assert.Nil(t, repository.Create(db, &a))
		assert.Nil(t, repository.UpdateFields(db, "a1", map[string]any{"quality_status": "NOK"}))

		stored, err := repository.Read(db, "a1")
		assert.Nil(t, err)
		assert.Equal(t, "NOK", stored.QualityStatus)
		assert.Equal(t, "Lion Corp", stored.Manufacturer)
	})

	t.Run("should walk the child tree up to the given depth", func(t *testing.T) {
		db := integrationtestutil.NewSQLiteDB(t, "lion")
		relationships := NewRelationshipRepository()

		assert.Nil(t, relationships.CreateIfNotExists(db, []models.Relationship{
			edge("root", "c1", statemachine.StatusUnknown),
			edge("root", "c2", statemachine.StatusUnknown),
			edge("c1", "g1", statemachine.StatusUnknown),
			edge("g1", "gg1", statemachine.StatusUnknown),
		}))

		repository := NewAssetRepository()

		edges, err := repository.GetChildTree(db, "root", 1)
		assert.Nil(t, err)
		assert.Equal(t, []models.TreeEdge{
			{Parent: "root", Child: "c1", Depth: 1},
			{Parent: "root", Child: "c2", Depth: 1},
		}, edges)

		edges, err = repository.GetChildTree(db, "root", 2)
		assert.Nil(t, err)
		assert.Len(t, edges, 3)
		assert.Equal(t, models.TreeEdge{Parent: "c1", Child: "g1", Depth: 2}, edges[2])

		edges, err = repository.GetChildTree(db, "root", 0)
		assert.Nil(t, err)
		assert.Empty(t, edges)
	})

	t.Run("should return the parents of an asset", func(t *testing.T) {
		db := integrationtestutil.NewSQLiteDB(t, "lion")
		repository := NewAssetRepository()

		for _, serial := range []string{"p1", "p2", "c1"} {
			a := asset(serial)
			assert.Nil(t, repository.Create(db, &a))
		}
		assert.Nil(t, NewRelationshipRepository().CreateIfNotExists(db, []models.Relationship{
			edge("p1", "c1", statemachine.StatusUnknown),
			edge("p2", "c1", statemachine.StatusUnknown),
		}))

		parents, err := repository.GetParents(db, "c1")
		assert.Nil(t, err)
		assert.Len(t, parents, 2)
		assert.Equal(t, "p1", parents[0].SerialNumberCustomer)
		assert.Equal(t, "p2", parents[1].SerialNumberCustomer)

		many, err := repository.ReadMany(db, []string{"p2", "c1", "missing"})
		assert.Nil(t, err)
		assert.Len(t, many, 2)
	})
}
