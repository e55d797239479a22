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

package models

import "time"

type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusStored  TransactionStatus = "STORED"
)

// Transaction records a single changed property of an asset.
type Transaction struct {
	TransactionID        uint              `json:"transactionId" gorm:"primaryKey;autoIncrement"`
	SerialNumberCustomer string            `json:"serialNumberCustomer" gorm:"type:text;index:serial_number_customer_transaction_index"`
	TimestampCreated     time.Time         `json:"timestampCreated" gorm:"autoCreateTime"`
	TimestampChanged     time.Time         `json:"timestampChanged"`
	PropertyName         string            `json:"propertyName" gorm:"type:text;index:property_name_index"`
	PropertyOldValue     string            `json:"propertyOldValue" gorm:"type:text;"`
	PropertyNewValue     string            `json:"propertyNewValue" gorm:"type:text;"`
	Status               TransactionStatus `json:"status" gorm:"type:text;default:'PENDING';index:status_index"`
	UserID               string            `json:"userId" gorm:"type:text;index:user_id_index"`
}

func (m Transaction) TableName() string {
	return "transactions"
}

type InvestigationRelationship struct {
	InvestigationID      string `json:"investigationId" gorm:"primaryKey;type:text;"`
	SerialNumberCustomer string `json:"serialNumberCustomer" gorm:"primaryKey;type:text;"`
	SharedWithOrg        string `json:"sharedWithOrg" gorm:"primaryKey;type:text;"`
}

func (m InvestigationRelationship) TableName() string {
	return "investigation_relationships"
}
