package repositories

import (
	"github.com/l3montree-dev/partchain/database/models"
	"github.com/l3montree-dev/partchain/shared"
)

type transactionRepository struct {
	*GormRepository[uint, models.Transaction]
}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{
		GormRepository: newGormRepository[uint, models.Transaction](nil),
	}
}

func (r *transactionRepository) FindBySerial(tx shared.DB, serial string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	db, err := r.resolve(tx)
	if err != nil {
		return nil, err
	}
	err = db.Where("serial_number_customer = ?", serial).Order("transaction_id").Find(&transactions).Error
	return transactions, err
}
