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

package transformer

import (
	"time"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/utils"
	"gorm.io/datatypes"
)

// ProductionDateLayout is the normalized representation of production dates on the ledger.
const ProductionDateLayout = "2006-01-02T15:04:05.000Z"

func AssetModelsToDTOs(assets []models.Asset) []dtos.Asset {
	return utils.Map(assets, func(asset models.Asset) dtos.Asset {
		return AssetModelToDTO(asset, nil)
	})
}

func AssetModelToDTO(asset models.Asset, componentsSerialNumbers []string) dtos.Asset {
	if componentsSerialNumbers == nil {
		componentsSerialNumbers = []string{}
	}
	return dtos.Asset{
		SerialNumberManufacturer:          asset.SerialNumberManufacturer,
		SerialNumberCustomer:              asset.SerialNumberCustomer,
		SerialNumberType:                  asset.SerialNumberType,
		Manufacturer:                      asset.Manufacturer,
		ManufacturerPlant:                 asset.ManufacturerPlant,
		ManufacturerLine:                  asset.ManufacturerLine,
		PartNameManufacturer:              asset.PartNameManufacturer,
		PartNumberCustomer:                asset.PartNumberCustomer,
		PartNumberManufacturer:            asset.PartNumberManufacturer,
		ProductionCountryCodeManufacturer: asset.ProductionCountryCodeManufacturer,
		ProductionDateGmt:                 asset.ProductionDateGmt.UTC().Format(ProductionDateLayout),
		QualityStatus:                     asset.QualityStatus,
		Status:                            asset.Status,
		QualityDocuments:                  asset.QualityDocuments,
		CustomFields:                      asset.CustomFields,
		ComponentsSerialNumbers:           componentsSerialNumbers,
		MspID:                             asset.MspID,
	}
}

// AssetDTOToModel converts a ledger asset into its mirror row owned by mspID.
func AssetDTOToModel(asset dtos.Asset, mspID string) (models.Asset, error) {
	productionDate, err := ParseProductionDate(asset.ProductionDateGmt)
	if err != nil {
		return models.Asset{}, err
	}

	return models.Asset{
		SerialNumberCustomer:              asset.SerialNumberCustomer,
		SerialNumberManufacturer:          asset.SerialNumberManufacturer,
		SerialNumberType:                  asset.SerialNumberType,
		Manufacturer:                      asset.Manufacturer,
		ManufacturerPlant:                 asset.ManufacturerPlant,
		ManufacturerLine:                  asset.ManufacturerLine,
		PartNameManufacturer:              asset.PartNameManufacturer,
		PartNumberCustomer:                asset.PartNumberCustomer,
		PartNumberManufacturer:            asset.PartNumberManufacturer,
		ProductionCountryCodeManufacturer: asset.ProductionCountryCodeManufacturer,
		ProductionDateGmt:                 productionDate,
		QualityDocuments:                  datatypes.JSONMap(asset.QualityDocuments),
		QualityStatus:                     asset.QualityStatus,
		Status:                            asset.Status,
		CustomFields:                      datatypes.JSONMap(asset.CustomFields),
		MspID:                             mspID,
	}, nil
}

// ParseProductionDate accepts RFC3339 timestamps with and without fractional seconds and plain dates.
func ParseProductionDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, shared.NewBadRequestError("%s is the wrong productionDateGmt format. It needs to be a valid Date (e.g. ISO format)", value)
}
