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

package shared

import (
	"context"
	"encoding/json"
	"time"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/reconciler"
	"github.com/l3montree-dev/partchain/statemachine"
)

type LeaderElector interface {
	IsLeader() bool
}

type ConfigRepository interface {
	Save(tx DB, config *models.Config) error
	GetDB(tx DB) DB
}

type ConfigService interface {
	// retrieves the value for the given key and marshals it into v
	GetJSONConfig(key string, v any) error
	SetJSONConfig(key string, v any) error
}

// DatabaseRegistry hands out the isolated database of an organization.
type DatabaseRegistry interface {
	ForOrg(ctx context.Context, orgID string) (DB, error)
	// Admin returns the database used for process wide state like leader election.
	Admin() DB
	Close() error
}

// LedgerExecutor runs a chaincode function on every channel the organization is connected to.
// The result holds one list per channel with one entry per payload.
type LedgerExecutor interface {
	Execute(ctx context.Context, kind dtos.TransactionKind, orgID string, payloads []any, mode dtos.Mode) ([][]dtos.LedgerResponse, error)
	Organizations() []string
}

type AssetRepository interface {
	Read(tx DB, serial string) (models.Asset, error)
	Create(tx DB, asset *models.Asset) error
	CreateBatch(tx DB, assets []models.Asset) error
	UpdateFields(tx DB, serial string, fields map[string]any) error
	GetChildTree(tx DB, serial string, depth int) ([]models.TreeEdge, error)
	ReadMany(tx DB, serials []string) ([]models.Asset, error)
	GetParents(tx DB, serial string) ([]models.Asset, error)
	GetDB(tx DB) DB
}

type RelationshipRepository interface {
	// CreateIfNotExists never overwrites an existing edge.
	CreateIfNotExists(tx DB, relationships []models.Relationship) error
	FindByChild(tx DB, child string) ([]models.Relationship, error)
	FindByParent(tx DB, parent string) ([]models.Relationship, error)
	FindByParentAndStatuses(tx DB, parent string, statuses []statemachine.RelationshipStatus) ([]models.Relationship, error)
	FindByStatuses(tx DB, statuses []statemachine.RelationshipStatus, limit int, random bool) ([]models.Relationship, error)
	FindByStatusAndChildOrgs(tx DB, status statemachine.RelationshipStatus, childOrgs []string) ([]models.Relationship, error)
	FindByStatusInRetryWindow(tx DB, status statemachine.RelationshipStatus, tier RetryTier, now time.Time, limit int) ([]models.Relationship, error)
	// Transition only touches edges currently in one of the from statuses and returns how many moved.
	Transition(tx DB, transition RelationshipTransition, now time.Time) (int64, error)
	GetDB(tx DB) DB
}

// RelationshipTransition moves the edges of a child. An empty Parent matches every parent
// of the child, an empty ChildOrg keeps the stored child organization.
type RelationshipTransition struct {
	Parent   string
	Child    string
	From     []statemachine.RelationshipStatus
	To       statemachine.RelationshipStatus
	ChildOrg string
}

type TransactionRepository interface {
	CreateBatch(tx DB, transactions []models.Transaction) error
	FindBySerial(tx DB, serial string) ([]models.Transaction, error)
}

type InvestigationRelationshipRepository interface {
	FindBySerial(tx DB, serial string) ([]models.InvestigationRelationship, error)
	Save(tx DB, relationship *models.InvestigationRelationship) error
}

// MirrorService is the relational mirror of the ledger state of a single organization.
type MirrorService interface {
	GetAssetDetail(ctx context.Context, orgID, serial string, depth int) (dtos.Asset, error)
	GetAssetParent(ctx context.Context, orgID, serial string) (dtos.AssetWithParents, error)
	UpsertAsset(ctx context.Context, orgID string, asset dtos.Asset, assetOrg string, extra *dtos.RelationshipExtra, createTransactionRecord bool) error
	StoreAssets(ctx context.Context, orgID string, assets []dtos.Asset, assetOrg string) error
	UpdateAsset(ctx context.Context, orgID string, assets []dtos.Asset, createTransactionRecord bool) error
	IsRelationshipAvailable(ctx context.Context, orgID, parent, child string) (bool, error)

	GetRelationshipsByStatus(ctx context.Context, orgID string, statuses []statemachine.RelationshipStatus, limit int, random bool) ([]models.Relationship, error)
	GetRelationshipsByStatusTiered(ctx context.Context, orgID string, status statemachine.RelationshipStatus, limit int) ([]models.Relationship, error)
	GetRelationshipsByParent(ctx context.Context, orgID, parent string) ([]models.Relationship, error)
	GetRelationshipsByParentAndStatus(ctx context.Context, orgID, parent string, statuses []statemachine.RelationshipStatus) ([]models.Relationship, error)
	GetRelationshipsByStatusAndChildOrgs(ctx context.Context, orgID string, status statemachine.RelationshipStatus, childOrgs []string) ([]models.Relationship, error)
	// UpdateRelationshipStatus moves every edge of the child the state machine allows to move.
	UpdateRelationshipStatus(ctx context.Context, orgID, child string, status statemachine.RelationshipStatus, childOrg string) error
	TransitionRelationships(ctx context.Context, orgID string, transition RelationshipTransition) (int64, error)

	GetInvestigationRelationships(ctx context.Context, orgID, serial string) ([]models.InvestigationRelationship, error)
	ListTransactions(ctx context.Context, orgID, serial string) ([]models.Transaction, error)
}

// AssetService stores, updates and exchanges assets between organizations.
type AssetService interface {
	StoreAsset(ctx context.Context, orgID string, assets []dtos.Asset) (reconciler.Response[json.RawMessage], error)
	UpdateAsset(ctx context.Context, orgID string, assets []dtos.Asset, createTransactionRecord bool) (reconciler.Response[json.RawMessage], error)
	UpsertAsset(ctx context.Context, orgID string, assets []dtos.Asset) (dtos.UpsertResult, error)
	ExchangeAsset(ctx context.Context, orgID, targetOrg, serial, assetInfo string) (reconciler.Response[json.RawMessage], error)
	IsAssetCurrent(ctx context.Context, orgID string, asset dtos.Asset) (reconciler.Response[dtos.IsCurrentResult], error)
	RequestAsset(ctx context.Context, orgID string, payload dtos.RequestAssetPayload) (reconciler.Response[json.RawMessage], error)
	GetAssetDetail(ctx context.Context, orgID, serial string) (reconciler.Response[dtos.Asset], error)
	GetPublicAssetDetail(ctx context.Context, orgID, serial string) (reconciler.Response[dtos.Asset], error)
	GetAssetEventDetail(ctx context.Context, orgID, serial string) (reconciler.Response[json.RawMessage], error)
	// ValidateAsset checks an asset as it was read from the ledger against its public hash.
	ValidateAsset(ctx context.Context, orgID string, asset any) (reconciler.Response[dtos.ValidationResult], error)
}

type AccessControlService interface {
	GetAccessControlList(ctx context.Context, orgID string) (reconciler.Response[dtos.OrgDetails], error)
	ActivePartners(ctx context.Context, orgID string) ([]string, error)
	EnrollOrg(ctx context.Context, orgID string) (reconciler.Response[json.RawMessage], error)
	EnrollAllOrgs(ctx context.Context) error
}

// EventService handles chaincode events emitted by the ledger.
type EventService interface {
	HandleEvent(ctx context.Context, eventName string, payload []byte) error
}

type DaemonRunner interface {
	Start()
	Stop() context.Context
	Trigger(ctx context.Context, status statemachine.RelationshipStatus) error
}
