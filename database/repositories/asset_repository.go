// Copyright (C) 2023 Tim Bastin, l3montree GmbH
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
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package repositories

import (
	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/shared"
)

type assetRepository struct {
	*GormRepository[string, models.Asset]
}

func NewAssetRepository() *assetRepository {
	return &assetRepository{
		GormRepository: newGormRepository[string, models.Asset](nil),
	}
}

func (repository *assetRepository) Read(tx shared.DB, serial string) (models.Asset, error) {
	var asset models.Asset
	db, err := repository.resolve(tx)
	if err != nil {
		return asset, err
	}
	err = db.Where("serial_number_customer = ?", serial).First(&asset).Error
	return asset, err
}

func (repository *assetRepository) ReadMany(tx shared.DB, serials []string) ([]models.Asset, error) {
	var assets []models.Asset
	if len(serials) == 0 {
		return assets, nil
	}
	db, err := repository.resolve(tx)
	if err != nil {
		return nil, err
	}
	err = db.Where("serial_number_customer IN ?", serials).Order("serial_number_customer").Find(&assets).Error
	return assets, err
}

func (repository *assetRepository) UpdateFields(tx shared.DB, serial string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	db, err := repository.resolve(tx)
	if err != nil {
		return err
	}
	return db.Model(&models.Asset{}).Where("serial_number_customer = ?", serial).Updates(fields).Error
}

// GetParents returns every asset which has the given serial as a direct child.
func (repository *assetRepository) GetParents(tx shared.DB, serial string) ([]models.Asset, error) {
	var parents []models.Asset
	db, err := repository.resolve(tx)
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Asset{}).
		Joins("JOIN relationships ON relationships.parent_serial_number_customer = assets.serial_number_customer").
		Where("relationships.child_serial_number_customer = ?", serial).
		Order("assets.serial_number_customer").
		Find(&parents).Error
	return parents, err
}

// GetChildTree walks the relationships below serial up to the given depth.
// A depth below one returns no edges.
func (repository *assetRepository) GetChildTree(tx shared.DB, serial string, depth int) ([]models.TreeEdge, error) {
	var edges []models.TreeEdge
	if depth < 1 {
		return edges, nil
	}
	db, err := repository.resolve(tx)
	if err != nil {
		return nil, err
	}

	err = db.Raw(`WITH RECURSIVE tree(parent, child, depth) AS (
		SELECT parent_serial_number_customer, child_serial_number_customer, 1
		FROM relationships
		WHERE parent_serial_number_customer = ?
		UNION
		SELECT r.parent_serial_number_customer, r.child_serial_number_customer, t.depth + 1
		FROM relationships r
		JOIN tree t ON r.parent_serial_number_customer = t.child
		WHERE t.depth < ?
	)
	SELECT parent, child, depth FROM tree ORDER BY depth, parent, child`, serial, depth).Scan(&edges).Error
	return edges, err
}
