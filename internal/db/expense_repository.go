package db

import (
	"github.com/terraincognita07/sitelog/internal/models"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	database *gorm.DB
}

func NewExpenseRepository(database *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{database: database}
}

func (repo *ExpenseRepository) FindByID(expenseID uint) (models.Expense, bool, error) {
	expense := models.Expense{}
	result := repo.database.Where("id = ?", expenseID).Limit(1).Find(&expense)
	if result.Error != nil {
		return models.Expense{}, false, result.Error
	}
	return expense, result.RowsAffected > 0, nil
}

func (repo *ExpenseRepository) ListByProjects(projectIDs []uint) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0)
	if len(projectIDs) == 0 {
		return expenses, nil
	}
	if err := repo.database.
		Where("project_id IN ?", projectIDs).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (repo *ExpenseRepository) Create(expense *models.Expense) error {
	return repo.database.Create(expense).Error
}

func (repo *ExpenseRepository) Save(expense *models.Expense) error {
	return repo.database.Save(expense).Error
}

func (repo *ExpenseRepository) Delete(expenseID uint) error {
	return repo.database.Delete(&models.Expense{}, expenseID).Error
}
