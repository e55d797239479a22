package models

import (
	"time"

	"github.com/l3montree-dev/partchain/statemachine"
)

// Relationship is a directed parent/child edge between two assets.
// Edges are never deleted by the reconciliation process.
type Relationship struct {
	ParentSerialNumberCustomer string                          `json:"parentSerialNumberCustomer" gorm:"primaryKey;type:text;index:parent_serial_number_customer_index"`
	ChildSerialNumberCustomer  string                          `json:"childSerialNumberCustomer" gorm:"primaryKey;type:text;index:child_serial_number_customer_index"`
	ParentMspID                string                          `json:"parentMspid" gorm:"column:parent_mspid;type:text;"`
	ChildMspID                 string                          `json:"childMspid" gorm:"column:child_mspid;type:text;"`
	TransferStatus             statemachine.RelationshipStatus `json:"transferStatus" gorm:"not null;default:0;index:transfer_status_index"`
	Retries                    int                             `json:"retries" gorm:"not null;default:0"`
	LastRetry                  *time.Time                      `json:"lastRetry"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m Relationship) TableName() string {
	return "relationships"
}

// TreeEdge is a single row of the recursive component tree of an asset.
type TreeEdge struct {
	Parent string
	Child  string
	Depth  int
}
