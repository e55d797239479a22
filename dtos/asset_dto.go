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

package dtos

import (
	"encoding/json"

	"github.com/l3montree-dev/partchain/statemachine"
)

const (
	SerialNumberTypeBatch  = "BATCH"
	SerialNumberTypeSingle = "SINGLE"

	QualityStatusOK   = "OK"
	QualityStatusNOK  = "NOK"
	QualityStatusFlag = "FLAG"
)

// Asset is the exchange format of a part as it is written to and read from the ledger.
type Asset struct {
	SerialNumberManufacturer          string         `json:"serialNumberManufacturer" validate:"required"`
	SerialNumberCustomer              string         `json:"serialNumberCustomer" validate:"required"`
	SerialNumberType                  string         `json:"serialNumberType" validate:"oneof=BATCH SINGLE"`
	Manufacturer                      string         `json:"manufacturer" validate:"required"`
	ManufacturerPlant                 string         `json:"manufacturerPlant"`
	ManufacturerLine                  string         `json:"manufacturerLine"`
	PartNameManufacturer              string         `json:"partNameManufacturer"`
	PartNumberCustomer                string         `json:"partNumberCustomer"`
	PartNumberManufacturer            string         `json:"partNumberManufacturer"`
	ProductionCountryCodeManufacturer string         `json:"productionCountryCodeManufacturer" validate:"iso3166_1_alpha2"`
	ProductionDateGmt                 string         `json:"productionDateGmt" validate:"required"`
	QualityStatus                     string         `json:"qualityStatus" validate:"oneof=OK NOK FLAG"`
	Status                            string         `json:"status"`
	QualityDocuments                  map[string]any `json:"qualityDocuments"`
	CustomFields                      map[string]any `json:"customFields"`
	ComponentsSerialNumbers           []string       `json:"componentsSerialNumbers"`
	MspID                             string         `json:"mspID,omitempty"`

	ChildComponents          []Asset `json:"childComponents,omitempty"`
	SerialNumberCustomerHash string  `json:"serialNumberCustomerHash,omitempty"`
	ComponentKey             string  `json:"componentKey,omitempty"`
}

func (a Asset) IsBatch() bool {
	return a.SerialNumberType == SerialNumberTypeBatch
}

// WithoutChildren returns a copy which carries no component information.
// Partners only receive the children they are allowed to see.
func (a Asset) WithoutChildren() Asset {
	a.ComponentsSerialNumbers = []string{}
	a.ChildComponents = nil
	return a
}

// WithoutLedgerInternals strips fields which only have a meaning inside the ledger of the owner.
func (a Asset) WithoutLedgerInternals() Asset {
	a.SerialNumberCustomerHash = ""
	a.ComponentKey = ""
	return a
}

// AssetWithParents is an asset as stored in the mirror together with its direct parents.
type AssetWithParents struct {
	Asset
	Parents []Asset `json:"parents"`
}

// RelationshipExtra overrides the defaults of edges created while upserting an asset.
type RelationshipExtra struct {
	ChildMspID     string
	TransferStatus statemachine.RelationshipStatus
}

type UpsertResult struct {
	Status        int               `json:"status"`
	Data          []json.RawMessage `json:"data"`
	Error         []any             `json:"error,omitempty"`
	ResultLength  int               `json:"resultLength"`
	AssetsStored  int               `json:"assetsStored"`
	AssetsUpdated int               `json:"assetsUpdated"`
}
