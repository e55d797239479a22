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

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/l3montree-dev/partchain/transformer"
	"github.com/l3montree-dev/partchain/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type mirrorService struct {
	registry                shared.DatabaseRegistry
	assetRepository         shared.AssetRepository
	relationshipRepository  shared.RelationshipRepository
	transactionRepository   shared.TransactionRepository
	investigationRepository shared.InvestigationRelationshipRepository
	config                  shared.ReconcilerConfig

	now func() time.Time
}

var _ shared.MirrorService = (*mirrorService)(nil)

func NewMirrorService(
	registry shared.DatabaseRegistry,
	assetRepository shared.AssetRepository,
	relationshipRepository shared.RelationshipRepository,
	transactionRepository shared.TransactionRepository,
	investigationRepository shared.InvestigationRelationshipRepository,
	config shared.ReconcilerConfig,
) *mirrorService {
	return &mirrorService{
		registry:                registry,
		assetRepository:         assetRepository,
		relationshipRepository:  relationshipRepository,
		transactionRepository:   transactionRepository,
		investigationRepository: investigationRepository,
		config:                  config,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *mirrorService) GetAssetDetail(ctx context.Context, orgID, serial string, depth int) (dtos.Asset, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return dtos.Asset{}, err
	}

	asset, err := s.readAsset(db, serial)
	if err != nil {
		return dtos.Asset{}, err
	}

	if depth < 0 {
		depth = 0
	}
	if depth > s.config.ChildrenMaxRecursiveLimit {
		depth = s.config.ChildrenMaxRecursiveLimit
	}

	// one level more than requested, the deepest children still list their components
	edges, err := s.assetRepository.GetChildTree(db, serial, depth+1)
	if err != nil {
		return dtos.Asset{}, errors.Wrap(err, "could not read component tree")
	}
	childrenOf := make(map[string][]string)
	for _, edge := range edges {
		childrenOf[edge.Parent] = append(childrenOf[edge.Parent], edge.Child)
	}

	result := transformer.AssetModelToDTO(asset, childrenOf[serial])
	if depth == 0 {
		return result, nil
	}

	serials := utils.CompactUnique(utils.Map(utils.Filter(edges, func(e models.TreeEdge) bool {
		return e.Depth <= depth
	}), func(e models.TreeEdge) string {
		return e.Child
	}))
	children, err := s.assetRepository.ReadMany(db, serials)
	if err != nil {
		return dtos.Asset{}, errors.Wrap(err, "could not read child components")
	}
	bySerial := make(map[string]models.Asset, len(children))
	for _, child := range children {
		bySerial[child.SerialNumberCustomer] = child
	}

	result.ChildComponents = buildComponentTree(serial, 1, depth, childrenOf, bySerial)
	return result, nil
}

// children which are only known as an edge are left out, the mirror has nothing to show for them
func buildComponentTree(parent string, level, depth int, childrenOf map[string][]string, assets map[string]models.Asset) []dtos.Asset {
	result := []dtos.Asset{}
	for _, serial := range childrenOf[parent] {
		asset, ok := assets[serial]
		if !ok {
			continue
		}
		child := transformer.AssetModelToDTO(asset, childrenOf[serial])
		if level < depth {
			child.ChildComponents = buildComponentTree(serial, level+1, depth, childrenOf, assets)
		}
		result = append(result, child)
	}
	return result
}

func (s *mirrorService) GetAssetParent(ctx context.Context, orgID, serial string) (dtos.AssetWithParents, error) {
	asset, err := s.GetAssetDetail(ctx, orgID, serial, 0)
	if err != nil {
		return dtos.AssetWithParents{}, err
	}

	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return dtos.AssetWithParents{}, err
	}
	parents, err := s.assetRepository.GetParents(db, serial)
	if err != nil {
		return dtos.AssetWithParents{}, errors.Wrap(err, "could not read parents")
	}

	return dtos.AssetWithParents{
		Asset:   asset,
		Parents: transformer.AssetModelsToDTOs(parents),
	}, nil
}

func (s *mirrorService) UpsertAsset(ctx context.Context, orgID string, asset dtos.Asset, assetOrg string, extra *dtos.RelationshipExtra, createTransactionRecord bool) error {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		_, err := s.assetRepository.Read(tx, asset.SerialNumberCustomer)
		if err == nil {
			return s.updateAsset(tx, asset, extra, createTransactionRecord)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "could not read asset")
		}
		return s.storeAsset(tx, asset, assetOrg, extra)
	})
}

// StoreAssets writes a whole batch with one insert for the assets and one for their edges.
// Assets already in the mirror keep their stored properties but still get their new edges.
func (s *mirrorService) StoreAssets(ctx context.Context, orgID string, assets []dtos.Asset, assetOrg string) error {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.assetRepository.ReadMany(tx, utils.Map(assets, func(a dtos.Asset) string {
			return a.SerialNumberCustomer
		}))
		if err != nil {
			return errors.Wrap(err, "could not read assets")
		}
		known := utils.Map(existing, func(a models.Asset) string { return a.SerialNumberCustomer })

		toCreate := make([]models.Asset, 0, len(assets))
		relationships := []models.Relationship{}
		for _, asset := range assets {
			if utils.Contains(known, asset.SerialNumberCustomer) {
				slog.Debug("asset already stored in mirror", "serial", asset.SerialNumberCustomer)
			} else {
				model, err := transformer.AssetDTOToModel(asset, assetOrg)
				if err != nil {
					return err
				}
				toCreate = append(toCreate, model)
				known = append(known, asset.SerialNumberCustomer)
			}
			relationships = append(relationships, s.newRelationships(asset.SerialNumberCustomer, assetOrg, asset.ComponentsSerialNumbers, nil)...)
		}

		if err := s.assetRepository.CreateBatch(tx, toCreate); err != nil {
			return errors.Wrap(err, "could not store assets")
		}
		if err := s.relationshipRepository.CreateIfNotExists(tx, relationships); err != nil {
			return errors.Wrap(err, "could not store relationships")
		}
		return nil
	})
}

func (s *mirrorService) storeAsset(tx shared.DB, asset dtos.Asset, assetOrg string, extra *dtos.RelationshipExtra) error {
	model, err := transformer.AssetDTOToModel(asset, assetOrg)
	if err != nil {
		return err
	}
	if err := s.assetRepository.Create(tx, &model); err != nil {
		return errors.Wrap(err, "could not store asset")
	}
	return s.addRelationships(tx, asset.SerialNumberCustomer, assetOrg, asset.ComponentsSerialNumbers, extra)
}

func (s *mirrorService) addRelationships(tx shared.DB, parent, parentOrg string, children []string, extra *dtos.RelationshipExtra) error {
	relationships := s.newRelationships(parent, parentOrg, children, extra)
	if len(relationships) == 0 {
		return nil
	}
	if err := s.relationshipRepository.CreateIfNotExists(tx, relationships); err != nil {
		return errors.Wrap(err, "could not store relationships")
	}
	return nil
}

func (s *mirrorService) newRelationships(parent, parentOrg string, children []string, extra *dtos.RelationshipExtra) []models.Relationship {
	children = utils.CompactUnique(children)
	now := s.now()
	childOrg := ""
	status := statemachine.StatusUnknown
	if extra != nil {
		childOrg = extra.ChildMspID
		status = extra.TransferStatus
	}

	return utils.Map(children, func(child string) models.Relationship {
		return models.Relationship{
			ParentSerialNumberCustomer: parent,
			ChildSerialNumberCustomer:  child,
			ParentMspID:                parentOrg,
			ChildMspID:                 childOrg,
			TransferStatus:             status,
			LastRetry:                  &now,
		}
	})
}

func (s *mirrorService) UpdateAsset(ctx context.Context, orgID string, assets []dtos.Asset, createTransactionRecord bool) error {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, asset := range assets {
			if err := s.updateAsset(tx, asset, nil, createTransactionRecord); err != nil {
				return err
			}
		}
		return nil
	})
}

// updateAsset writes the changed properties of an already mirrored asset and adds edges for new components.
// Existing edges are kept even if the component list shrank.
func (s *mirrorService) updateAsset(tx shared.DB, asset dtos.Asset, extra *dtos.RelationshipExtra, createTransactionRecord bool) error {
	current, err := s.assetRepository.Read(tx, asset.SerialNumberCustomer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("could not update asset, it is not stored in the mirror", "serial", asset.SerialNumberCustomer)
			return nil
		}
		return errors.Wrap(err, "could not read asset")
	}

	updated, err := transformer.AssetDTOToModel(asset, current.MspID)
	if err != nil {
		return err
	}

	changes := diffAsset(current, updated)
	if len(changes) > 0 {
		fields := make(map[string]any, len(changes))
		for _, change := range changes {
			fields[change.field.column] = change.field.value(updated)
		}
		if err := s.assetRepository.UpdateFields(tx, asset.SerialNumberCustomer, fields); err != nil {
			return errors.Wrap(err, "could not update asset")
		}

		if createTransactionRecord {
			now := s.now()
			transactions := utils.Map(changes, func(change assetChange) models.Transaction {
				return models.Transaction{
					SerialNumberCustomer: asset.SerialNumberCustomer,
					TimestampCreated:     now,
					TimestampChanged:     now,
					PropertyName:         change.field.property,
					PropertyOldValue:     change.oldValue,
					PropertyNewValue:     change.newValue,
					Status:               models.TransactionStatusStored,
					UserID:               current.MspID,
				}
			})
			if err := s.transactionRepository.CreateBatch(tx, transactions); err != nil {
				return errors.Wrap(err, "could not store transaction records")
			}
		}
	}

	existing, err := s.relationshipRepository.FindByParent(tx, asset.SerialNumberCustomer)
	if err != nil {
		return errors.Wrap(err, "could not read relationships")
	}
	known := utils.Map(existing, func(r models.Relationship) string {
		return r.ChildSerialNumberCustomer
	})
	return s.addRelationships(tx, asset.SerialNumberCustomer, current.MspID, utils.Without(asset.ComponentsSerialNumbers, known), extra)
}

type assetField struct {
	column   string
	property string
	value    func(models.Asset) any
}

type assetChange struct {
	field    assetField
	oldValue string
	newValue string
}

// mspid is left out, the owner of an asset never changes
var assetFields = []assetField{
	{"serial_number_manufacturer", "serialNumberManufacturer", func(a models.Asset) any { return a.SerialNumberManufacturer }},
	{"serial_number_type", "serialNumberType", func(a models.Asset) any { return a.SerialNumberType }},
	{"manufacturer", "manufacturer", func(a models.Asset) any { return a.Manufacturer }},
	{"manufacturer_plant", "manufacturerPlant", func(a models.Asset) any { return a.ManufacturerPlant }},
	{"manufacturer_line", "manufacturerLine", func(a models.Asset) any { return a.ManufacturerLine }},
	{"part_name_manufacturer", "partNameManufacturer", func(a models.Asset) any { return a.PartNameManufacturer }},
	{"part_number_customer", "partNumberCustomer", func(a models.Asset) any { return a.PartNumberCustomer }},
	{"part_number_manufacturer", "partNumberManufacturer", func(a models.Asset) any { return a.PartNumberManufacturer }},
	{"production_country_code_manufacturer", "productionCountryCodeManufacturer", func(a models.Asset) any { return a.ProductionCountryCodeManufacturer }},
	{"production_date_gmt", "productionDateGmt", func(a models.Asset) any { return a.ProductionDateGmt.UTC() }},
	{"quality_documents", "qualityDocuments", func(a models.Asset) any { return a.QualityDocuments }},
	{"quality_status", "qualityStatus", func(a models.Asset) any { return a.QualityStatus }},
	{"status", "status", func(a models.Asset) any { return a.Status }},
	{"custom_fields", "customFields", func(a models.Asset) any { return a.CustomFields }},
}

func diffAsset(current, updated models.Asset) []assetChange {
	changes := []assetChange{}
	for _, field := range assetFields {
		oldValue := stringifyProperty(field.value(current))
		newValue := stringifyProperty(field.value(updated))
		if oldValue != newValue {
			changes = append(changes, assetChange{field: field, oldValue: oldValue, newValue: newValue})
		}
	}
	return changes
}

// stringifyProperty renders a property the way it is written into the transaction record.
// Equal timestamps in different zones render identically.
func stringifyProperty(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.UTC().Format(transformer.ProductionDateLayout)
	case nil:
		return ""
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	if string(b) == "null" {
		return "{}"
	}
	return string(b)
}

// IsRelationshipAvailable reports whether child may be attached to parent.
// A SINGLE asset can only ever have one parent, BATCH assets may have many.
func (s *mirrorService) IsRelationshipAvailable(ctx context.Context, orgID, parent, child string) (bool, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return false, err
	}

	edges, err := s.relationshipRepository.FindByChild(db, child)
	if err != nil {
		return false, errors.Wrap(err, "could not read relationships")
	}
	if len(edges) == 0 {
		return true, nil
	}

	asset, err := s.assetRepository.Read(db, child)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, errors.Wrap(err, "could not read asset")
	}
	if !strings.EqualFold(asset.SerialNumberType, dtos.SerialNumberTypeSingle) {
		return true, nil
	}

	return utils.All(edges, func(r models.Relationship) bool {
		return r.ParentSerialNumberCustomer == parent
	}), nil
}

func (s *mirrorService) readAsset(db shared.DB, serial string) (models.Asset, error) {
	asset, err := s.assetRepository.Read(db, serial)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Asset{}, shared.NewNotFoundError("asset %s not found", serial)
		}
		return models.Asset{}, errors.Wrap(err, "could not read asset")
	}
	return asset, nil
}

func (s *mirrorService) GetRelationshipsByStatus(ctx context.Context, orgID string, statuses []statemachine.RelationshipStatus, limit int, random bool) ([]models.Relationship, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.relationshipRepository.FindByStatuses(db, statuses, limit, random)
}

// GetRelationshipsByStatusTiered splits limit over the configured retry tiers.
// Quota a tier does not use is handed on to the next one.
func (s *mirrorService) GetRelationshipsByStatusTiered(ctx context.Context, orgID string, status statemachine.RelationshipStatus, limit int) ([]models.Relationship, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := []models.Relationship{}
	spillover := 0
	for _, tier := range s.config.NotInFabricTiers {
		quota := tier.Quota(limit) + spillover
		found, err := s.relationshipRepository.FindByStatusInRetryWindow(db, status, tier, now, quota)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read relationships of retry tier %s", tier.Name)
		}
		spillover = max(quota-len(found), 0)
		result = append(result, found...)
	}
	return result, nil
}

func (s *mirrorService) GetRelationshipsByParent(ctx context.Context, orgID, parent string) ([]models.Relationship, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.relationshipRepository.FindByParent(db, parent)
}

func (s *mirrorService) GetRelationshipsByParentAndStatus(ctx context.Context, orgID, parent string, statuses []statemachine.RelationshipStatus) ([]models.Relationship, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.relationshipRepository.FindByParentAndStatuses(db, parent, statuses)
}

func (s *mirrorService) GetRelationshipsByStatusAndChildOrgs(ctx context.Context, orgID string, status statemachine.RelationshipStatus, childOrgs []string) ([]models.Relationship, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.relationshipRepository.FindByStatusAndChildOrgs(db, status, childOrgs)
}

func (s *mirrorService) UpdateRelationshipStatus(ctx context.Context, orgID, child string, status statemachine.RelationshipStatus, childOrg string) error {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return err
	}
	_, err = s.relationshipRepository.Transition(db, shared.RelationshipTransition{
		Child:    child,
		From:     statemachine.Sources(status),
		To:       status,
		ChildOrg: childOrg,
	}, s.now())
	return err
}

func (s *mirrorService) TransitionRelationships(ctx context.Context, orgID string, transition shared.RelationshipTransition) (int64, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return 0, err
	}
	return s.relationshipRepository.Transition(db, transition, s.now())
}

func (s *mirrorService) GetInvestigationRelationships(ctx context.Context, orgID, serial string) ([]models.InvestigationRelationship, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.investigationRepository.FindBySerial(db, serial)
}

func (s *mirrorService) ListTransactions(ctx context.Context, orgID, serial string) ([]models.Transaction, error) {
	db, err := s.registry.ForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.transactionRepository.FindBySerial(db, serial)
}
