package transformer_test

import (
	"testing"
	"time"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/transformer"
	"github.com/stretchr/testify/assert"
)

func TestAssetDTOToModel(t *testing.T) {
	t.Run("should normalize the production date to utc", func(t *testing.T) {
		m, err := transformer.AssetDTOToModel(dtos.Asset{
			SerialNumberCustomer: "a1",
			ProductionDateGmt:    "2024-03-01T12:00:00+02:00",
			QualityDocuments:     map[string]any{"doc": "x"},
		}, "Lion")
		assert.Nil(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), m.ProductionDateGmt)
		assert.Equal(t, "Lion", m.MspID)
		assert.Equal(t, "x", m.QualityDocuments["doc"])
	})

	t.Run("should accept plain dates", func(t *testing.T) {
		m, err := transformer.AssetDTOToModel(dtos.Asset{ProductionDateGmt: "2024-03-01"}, "Lion")
		assert.Nil(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), m.ProductionDateGmt)
	})

	t.Run("should return a bad request error for invalid dates", func(t *testing.T) {
		_, err := transformer.AssetDTOToModel(dtos.Asset{ProductionDateGmt: "yesterday"}, "Lion")
		assert.Equal(t, 400, shared.ErrorStatusCode(err))
	})
}

func TestAssetModelToDTO(t *testing.T) {
	t.Run("should never return nil components", func(t *testing.T) {
		dto := transformer.AssetModelToDTO(models.Asset{
			SerialNumberCustomer: "a1",
			ProductionDateGmt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		}, nil)
		assert.Equal(t, []string{}, dto.ComponentsSerialNumbers)
		assert.Equal(t, "2024-03-01T10:00:00.000Z", dto.ProductionDateGmt)
	})
}
