package db

import (
	"github.com/terraincognita07/sitelog/internal/models"
	"gorm.io/gorm"
)

type PersonRepository struct {
	database *gorm.DB
}

func NewPersonRepository(database *gorm.DB) *PersonRepository {
	return &PersonRepository{database: database}
}

func (repo *PersonRepository) FindByID(personID uint) (models.Person, bool, error) {
	person := models.Person{}
	result := repo.database.Where("id = ?", personID).Limit(1).Find(&person)
	if result.Error != nil {
		return models.Person{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Person{}, false, nil
	}
	return person, true, nil
}

func (repo *PersonRepository) ListByProject(projectID uint) ([]models.Person, error) {
	people := make([]models.Person, 0)
	if err := repo.database.
		Preload("Company").
		Where("project_id = ?", projectID).
		Order("name ASC, id ASC").
		Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

// ListVisible returns legacy rows owned by userID together with rows scoped to
// any of projectIDs.
func (repo *PersonRepository) ListVisible(userID uint, projectIDs []uint) ([]models.Person, error) {
	query := repo.database.Preload("Company").Where("(project_id IS NULL AND user_id = ?)", userID)
	if len(projectIDs) > 0 {
		query = query.Or("project_id IN ?", projectIDs)
	}

	people := make([]models.Person, 0)
	if err := query.Order("name ASC, id ASC").Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (repo *PersonRepository) ExistsInProjectByName(projectID uint, name string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Person{}).
		Where("project_id = ? AND name = ?", projectID, name).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *PersonRepository) CountByCompany(companyID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Person{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *PersonRepository) Create(person *models.Person) error {
	return repo.database.Create(person).Error
}

func (repo *PersonRepository) UpdateDetails(personID uint, name string, hourlyRate *float64, companyID *uint) error {
	return repo.database.Model(&models.Person{}).Where("id = ?", personID).Updates(map[string]any{
		"name":        name,
		"hourly_rate": hourlyRate,
		"company_id":  companyID,
	}).Error
}

func (repo *PersonRepository) Delete(personID uint) error {
	return repo.database.Delete(&models.Person{}, personID).Error
}

// DeleteUnlinking clears time entry references to the person before removing
// it, so no dependent row is deleted.
func (repo *PersonRepository) DeleteUnlinking(personID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TimeEntry{}).
			Where("person_id = ?", personID).
			Update("person_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Timer{}).
			Where("person_id = ?", personID).
			Update("person_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Person{}, personID).Error
	})
}
