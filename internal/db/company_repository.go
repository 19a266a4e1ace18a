package db

import (
	"github.com/terraincognita07/sitelog/internal/models"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	database *gorm.DB
}

func NewCompanyRepository(database *gorm.DB) *CompanyRepository {
	return &CompanyRepository{database: database}
}

func (repo *CompanyRepository) FindByID(companyID uint) (models.Company, bool, error) {
	company := models.Company{}
	result := repo.database.Where("id = ?", companyID).Limit(1).Find(&company)
	if result.Error != nil {
		return models.Company{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Company{}, false, nil
	}
	return company, true, nil
}

func (repo *CompanyRepository) FindInProjectByName(projectID uint, name string) (models.Company, bool, error) {
	company := models.Company{}
	result := repo.database.
		Where("project_id = ? AND name = ?", projectID, name).
		Order("id ASC").
		Limit(1).
		Find(&company)
	if result.Error != nil {
		return models.Company{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Company{}, false, nil
	}
	return company, true, nil
}

func (repo *CompanyRepository) ListByProject(projectID uint) ([]models.Company, error) {
	companies := make([]models.Company, 0)
	if err := repo.database.
		Where("project_id = ?", projectID).
		Order("name ASC, id ASC").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (repo *CompanyRepository) ListVisible(userID uint, projectIDs []uint) ([]models.Company, error) {
	query := repo.database.Where("(project_id IS NULL AND user_id = ?)", userID)
	if len(projectIDs) > 0 {
		query = query.Or("project_id IN ?", projectIDs)
	}

	companies := make([]models.Company, 0)
	if err := query.Order("name ASC, id ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (repo *CompanyRepository) Create(company *models.Company) error {
	return repo.database.Create(company).Error
}

func (repo *CompanyRepository) UpdateDetails(companyID uint, name string, hourlyRateDefault *float64) error {
	return repo.database.Model(&models.Company{}).Where("id = ?", companyID).Updates(map[string]any{
		"name":                name,
		"hourly_rate_default": hourlyRateDefault,
	}).Error
}

// DeleteUnlinking clears person and expense references to the company before
// removing it.
func (repo *CompanyRepository) DeleteUnlinking(companyID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Person{}).
			Where("company_id = ?", companyID).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Expense{}).
			Where("company_id = ?", companyID).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Company{}, companyID).Error
	})
}
