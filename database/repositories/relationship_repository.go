package repositories

import (
	"time"

	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"gorm.io/gorm"
)

type relationshipRepository struct {
	*GormRepository[string, models.Relationship]
}

func NewRelationshipRepository() *relationshipRepository {
	return &relationshipRepository{
		GormRepository: newGormRepository[string, models.Relationship](nil),
	}
}

func (r *relationshipRepository) CreateIfNotExists(tx shared.DB, relationships []models.Relationship) error {
	return r.CreateBatch(tx, relationships)
}

func (r *relationshipRepository) FindByChild(tx shared.DB, child string) ([]models.Relationship, error) {
	return r.find(tx, func(db *gorm.DB) *gorm.DB {
		return db.Where("child_serial_number_customer = ?", child).Order("parent_serial_number_customer")
	})
}

func (r *relationshipRepository) FindByParent(tx shared.DB, parent string) ([]models.Relationship, error) {
	return r.find(tx, func(db *gorm.DB) *gorm.DB {
		return db.Where("parent_serial_number_customer = ?", parent).Order("child_serial_number_customer")
	})
}

func (r *relationshipRepository) FindByParentAndStatuses(tx shared.DB, parent string, statuses []statemachine.RelationshipStatus) ([]models.Relationship, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	return r.find(tx, func(db *gorm.DB) *gorm.DB {
		return db.Where("parent_serial_number_customer = ? AND transfer_status IN ?", parent, statuses)
	})
}

func (r *relationshipRepository) FindByStatuses(tx shared.DB, statuses []statemachine.RelationshipStatus, limit int, random bool) ([]models.Relationship, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	return r.find(tx, func(db *gorm.DB) *gorm.DB {
		db = db.Where("transfer_status IN ?", statuses)
		if random {
			db = db.Order("RANDOM()")
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	})
}

func (r *relationshipRepository) FindByStatusAndChildOrgs(tx shared.DB, status statemachine.RelationshipStatus, childOrgs []string) ([]models.Relationship, error) {
	if len(childOrgs) == 0 {
		return nil, nil
	}
	return r.find(tx, func(db *gorm.DB) *gorm.DB {
		return db.Where("transfer_status = ? AND child_mspid IN ?", status, childOrgs)
	})
}

// FindByStatusInRetryWindow returns the relationships of one retry tier whose last retry
// is older than the retry period of the tier. Oldest updates come first.
func (r *relationshipRepository) FindByStatusInRetryWindow(tx shared.DB, status statemachine.RelationshipStatus, tier shared.RetryTier, now time.Time, limit int) ([]models.Relationship, error) {
	if limit <= 0 {
		return nil, nil
	}
	cutoff := now.UTC().Add(-tier.RetryPeriod)
	return r.find(tx, func(db *gorm.DB) *gorm.DB {
		db = db.Where("transfer_status = ? AND retries >= ?", status, tier.MinRetries)
		if tier.MaxRetries > 0 {
			db = db.Where("retries < ?", tier.MaxRetries)
		}
		return db.Where("last_retry IS NULL OR last_retry <= ?", cutoff).
			Order("updated_at").
			Limit(limit)
	})
}

// Transition moves the matching edges to the target status and counts the attempt.
// Edges in any other status are left untouched, so a terminal edge never re-enters the cycle.
func (r *relationshipRepository) Transition(tx shared.DB, transition shared.RelationshipTransition, now time.Time) (int64, error) {
	if len(transition.From) == 0 {
		return 0, nil
	}
	db, err := r.resolve(tx)
	if err != nil {
		return 0, err
	}
	fields := map[string]any{
		"transfer_status": transition.To,
		"retries":         gorm.Expr("retries + 1"),
		"last_retry":      now.UTC(),
		"updated_at":      now.UTC(),
	}
	if transition.ChildOrg != "" {
		fields["child_mspid"] = transition.ChildOrg
	}

	db = db.Model(&models.Relationship{}).Where("child_serial_number_customer = ? AND transfer_status IN ?", transition.Child, transition.From)
	if transition.Parent != "" {
		db = db.Where("parent_serial_number_customer = ?", transition.Parent)
	}
	res := db.Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *relationshipRepository) find(tx shared.DB, scope func(db *gorm.DB) *gorm.DB) ([]models.Relationship, error) {
	var relationships []models.Relationship
	db, err := r.resolve(tx)
	if err != nil {
		return nil, err
	}
	err = scope(db.Model(&models.Relationship{})).Find(&relationships).Error
	return relationships, err
}
