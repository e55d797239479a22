package repositories

import (
	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/shared"
)

type investigationRelationshipRepository struct {
	*GormRepository[string, models.InvestigationRelationship]
}

func NewInvestigationRelationshipRepository() *investigationRelationshipRepository {
	return &investigationRelationshipRepository{
		GormRepository: newGormRepository[string, models.InvestigationRelationship](nil),
	}
}

func (r *investigationRelationshipRepository) FindBySerial(tx shared.DB, serial string) ([]models.InvestigationRelationship, error) {
	var relationships []models.InvestigationRelationship
	db, err := r.resolve(tx)
	if err != nil {
		return nil, err
	}
	err = db.Where("serial_number_customer = ?", serial).Find(&relationships).Error
	return relationships, err
}
