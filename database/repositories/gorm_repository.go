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
	"errors"
	"strings"

	"github.com/l3montree-dev/partchain/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errNoDatabase = errors.New("no database handle provided")

// GormRepository is the shared base of all repositories.
// Repositories of organization tables are created without a database and always receive
// the organization database as tx.
type GormRepository[ID comparable, T utils.Tabler] struct {
	db *gorm.DB
}

func newGormRepository[ID comparable, T utils.Tabler](db *gorm.DB) *GormRepository[ID, T] {
	return &GormRepository[ID, T]{
		db: db,
	}
}

func (g *GormRepository[ID, T]) Save(tx *gorm.DB, t *T) error {
	db, err := g.resolve(tx)
	if err != nil {
		return err
	}
	return db.Save(t).Error
}

func (g *GormRepository[ID, T]) Create(tx *gorm.DB, t *T) error {
	db, err := g.resolve(tx)
	if err != nil {
		return err
	}
	return db.Create(t).Error
}

// CreateBatch inserts all rows and silently skips rows which already exist.
// Batches exceeding the parameter limit of the driver are split in half until they fit.
func (g *GormRepository[ID, T]) CreateBatch(tx *gorm.DB, ts []T) error {
	if len(ts) == 0 {
		return nil
	}
	db, err := g.resolve(tx)
	if err != nil {
		return err
	}

	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(ts).Error
	if err != nil && tooManyParameters(err) && len(ts) > 1 {
		half := len(ts) / 2
		if err := g.CreateBatch(tx, ts[:half]); err != nil {
			return err
		}
		return g.CreateBatch(tx, ts[half:])
	}
	return err
}

// postgres and sqlite word the limit differently
func tooManyParameters(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "extended protocol limited to 65535 parameters") || strings.Contains(msg, "too many SQL variables")
}

func (g *GormRepository[ID, T]) GetDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return g.db
}

func (g *GormRepository[ID, T]) resolve(tx *gorm.DB) (*gorm.DB, error) {
	db := g.GetDB(tx)
	if db == nil {
		return nil, errNoDatabase
	}
	return db, nil
}
