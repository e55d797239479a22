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

// SerialPayload addresses a single asset.
type SerialPayload struct {
	SerialNumberCustomer string `json:"serialNumberCustomer"`
}

type RequestedChild struct {
	SerialNumberCustomer string `json:"serialNumberCustomer"`
	Flagged              bool   `json:"flagged"`
}

// RequestAssetPayload asks the manufacturer of the named children to share them with the parent owner.
// getAssetEventDetail answers with the same shape on the receiving side.
type RequestAssetPayload struct {
	Asset
	ManufacturerMSPID         string           `json:"manufacturerMSPID"`
	ChildSerialNumberCustomer []RequestedChild `json:"childSerialNumberCustomer"`
}

// ExchangeAssetPayload writes an asset into the private data collection of the parent organization.
type ExchangeAssetPayload struct {
	ParentMSP            string `json:"parentMSP"`
	SerialNumberCustomer string `json:"serialNumberCustomer"`
	AssetInfo            string `json:"assetInfo"`
}

type InvestigationExchangePayload struct {
	InvestigationID string `json:"investigationID"`
	AssetInfo       string `json:"assetInfo"`
	TargetOrg       string `json:"targetOrg"`
}

type OrgDetailsPayload struct {
	OrgMSP string `json:"orgMSP"`
}

type EnrollPayload struct {
	EnrollOrg string `json:"enrollOrg"`
}

func (p RequestAssetPayload) ManufacturerOrg() string { return p.ManufacturerMSPID }

func (p ExchangeAssetPayload) ParentOrg() string { return p.ParentMSP }

func (p InvestigationExchangePayload) TargetOrgID() string { return p.TargetOrg }

type IsCurrentResult struct {
	IsCurrent bool `json:"isCurrent"`
}

type ValidationResult struct {
	Result bool `json:"result"`
}
