package db

import (
	"github.com/terraincognita07/sitelog/internal/models"
	"gorm.io/gorm"
)

type PersonalListRepository struct {
	database *gorm.DB
}

func NewPersonalListRepository(database *gorm.DB) *PersonalListRepository {
	return &PersonalListRepository{database: database}
}

func (repo *PersonalListRepository) ListPeopleByUser(userID uint) ([]models.PersonalPerson, error) {
	people := make([]models.PersonalPerson, 0)
	if err := repo.database.
		Preload("DefaultCompany").
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (repo *PersonalListRepository) ListCompaniesByUser(userID uint) ([]models.PersonalCompany, error) {
	companies := make([]models.PersonalCompany, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// ListPeopleByUserAndIDs only returns rows owned by userID, so callers can
// detect foreign ids by comparing lengths.
func (repo *PersonalListRepository) ListPeopleByUserAndIDs(userID uint, ids []uint) ([]models.PersonalPerson, error) {
	people := make([]models.PersonalPerson, 0, len(ids))
	if err := repo.database.
		Preload("DefaultCompany").
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("id ASC").
		Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (repo *PersonalListRepository) ListCompaniesByUserAndIDs(userID uint, ids []uint) ([]models.PersonalCompany, error) {
	companies := make([]models.PersonalCompany, 0, len(ids))
	if err := repo.database.
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("id ASC").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (repo *PersonalListRepository) FindPerson(personID uint) (models.PersonalPerson, bool, error) {
	person := models.PersonalPerson{}
	result := repo.database.Where("id = ?", personID).Limit(1).Find(&person)
	if result.Error != nil {
		return models.PersonalPerson{}, false, result.Error
	}
	return person, result.RowsAffected > 0, nil
}

func (repo *PersonalListRepository) FindCompany(companyID uint) (models.PersonalCompany, bool, error) {
	company := models.PersonalCompany{}
	result := repo.database.Where("id = ?", companyID).Limit(1).Find(&company)
	if result.Error != nil {
		return models.PersonalCompany{}, false, result.Error
	}
	return company, result.RowsAffected > 0, nil
}

func (repo *PersonalListRepository) CountPeopleByDefaultCompany(companyID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.PersonalPerson{}).
		Where("default_company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *PersonalListRepository) CreatePerson(person *models.PersonalPerson) error {
	return repo.database.Create(person).Error
}

func (repo *PersonalListRepository) CreateCompany(company *models.PersonalCompany) error {
	return repo.database.Create(company).Error
}

func (repo *PersonalListRepository) UpdatePerson(personID uint, updates map[string]any) error {
	return repo.database.Model(&models.PersonalPerson{}).Where("id = ?", personID).Updates(updates).Error
}

func (repo *PersonalListRepository) UpdateCompany(companyID uint, updates map[string]any) error {
	return repo.database.Model(&models.PersonalCompany{}).Where("id = ?", companyID).Updates(updates).Error
}

func (repo *PersonalListRepository) DeletePerson(personID uint) error {
	return repo.database.Delete(&models.PersonalPerson{}, personID).Error
}

func (repo *PersonalListRepository) DeleteCompany(companyID uint) error {
	return repo.database.Delete(&models.PersonalCompany{}, companyID).Error
}
