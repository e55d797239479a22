package repositories

import (
	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/shared"
)

type configRepository struct {
	*GormRepository[string, models.Config]
}

// NewConfigRepository works on the admin database since the stored keys are process wide.
func NewConfigRepository(registry shared.DatabaseRegistry) *configRepository {
	return &configRepository{
		GormRepository: newGormRepository[string, models.Config](registry.Admin()),
	}
}
