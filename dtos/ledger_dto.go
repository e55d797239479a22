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

import "encoding/json"

// LedgerResponse is the envelope every chaincode function answers with.
type LedgerResponse struct {
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

type Mode int

const (
	ModeSubmit Mode = iota
	ModeEvaluate
)

func (m Mode) String() string {
	if m == ModeSubmit {
		return "submit"
	}
	return "eval"
}

// Endorsement names the organization whose peers have to endorse a submitted transaction.
type Endorsement int

const (
	EndorseCaller Endorsement = iota
	EndorsePayloadManufacturer
	EndorsePayloadParentOrg
	EndorsePayloadTargetOrg
)

// TransactionKind is a chaincode function together with its endorsement strategy.
// The set of kinds is closed, new values can only be declared in this package.
type TransactionKind struct {
	name        string
	endorsement Endorsement
}

func (k TransactionKind) Name() string {
	return k.name
}

func (k TransactionKind) Endorsement() Endorsement {
	return k.endorsement
}

func (k TransactionKind) String() string {
	return k.name
}

var (
	TxCreateAsset                    = TransactionKind{"createAsset", EndorseCaller}
	TxUpdateAsset                    = TransactionKind{"updateAsset", EndorseCaller}
	TxIsAssetCurrent                 = TransactionKind{"isAssetCurrent", EndorseCaller}
	TxUpdateRequest                  = TransactionKind{"updateRequest", EndorseCaller}
	TxEnrollOrg                      = TransactionKind{"enrollOrg", EndorseCaller}
	TxCreateRequest                  = TransactionKind{"createRequest", EndorseCaller}
	TxCreateInvestigation            = TransactionKind{"createInvestigation", EndorseCaller}
	TxUpdateOrgInvestigationStatus   = TransactionKind{"updateOrgInvestigationStatus", EndorseCaller}
	TxAddSerialNumberCustomer        = TransactionKind{"addSerialNumberCustomer", EndorseCaller}
	TxDecryptDataForInvestigation    = TransactionKind{"decryptDataForInvestigation", EndorseCaller}
	TxRequestAssetForInvestigation   = TransactionKind{"requestAssetForInvestigation", EndorseCaller}
	TxRequestAsset                   = TransactionKind{"requestAsset", EndorsePayloadManufacturer}
	TxExchangeAssetInfo              = TransactionKind{"exchangeAssetInfo", EndorsePayloadParentOrg}
	TxAddOrganisationToInvestigation = TransactionKind{"addOrganisationToInvestigation", EndorsePayloadTargetOrg}
	TxShareInvestigationKey          = TransactionKind{"shareInvestigationKey", EndorsePayloadTargetOrg}
	TxExchangeAssetForInvestigation  = TransactionKind{"exchangeAssetForInvestigation", EndorsePayloadTargetOrg}

	// evaluate only
	TxGetAssetDetail       = TransactionKind{"getAssetDetail", EndorseCaller}
	TxGetPublicAssetDetail = TransactionKind{"getPublicAssetDetail", EndorseCaller}
	TxGetAssetEventDetail  = TransactionKind{"getAssetEventDetail", EndorseCaller}
	TxValidateAsset        = TransactionKind{"validateAsset", EndorseCaller}
	TxGetOrgDetails        = TransactionKind{"getOrgDetails", EndorseCaller}
)

// chaincode event names
const (
	EventRequest                    = "RequestEvent"
	EventExchange                   = "ExchangeEvent"
	EventRequestInvestigation       = "RequestInvestigationEvent"
	EventExchangeInvestigation      = "ExchangeInvestigationEvent"
	DefaultChannelName              = "partchain-channel"
	InvalidFunctionCallErrorMessage = "invalid function call"
)

// LedgerEvent is the payload of a chaincode event.
type LedgerEvent struct {
	Key             string `json:"key"`
	MspID           string `json:"mspID"`
	InvestigationID string `json:"investigationID,omitempty"`
	TargetOrg       string `json:"targetOrg,omitempty"`
}
