package db

import (
	"github.com/terraincognita07/sitelog/internal/models"
	"gorm.io/gorm"
)

type TimeEntryRepository struct {
	database *gorm.DB
}

func NewTimeEntryRepository(database *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{database: database}
}

func (repo *TimeEntryRepository) FindByID(entryID uint) (models.TimeEntry, bool, error) {
	entry := models.TimeEntry{}
	result := repo.database.Where("id = ?", entryID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.TimeEntry{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

// ListVisible returns entries created by userID or belonging to one of
// projectIDs, newest first.
func (repo *TimeEntryRepository) ListVisible(userID uint, projectIDs []uint) ([]models.TimeEntry, error) {
	query := repo.database.Where("owner_user_id = ?", userID)
	if len(projectIDs) > 0 {
		query = query.Or("project_id IN ?", projectIDs)
	}

	entries := make([]models.TimeEntry, 0)
	if err := query.Order("date DESC, start_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *TimeEntryRepository) Create(entry *models.TimeEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *TimeEntryRepository) Save(entry *models.TimeEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *TimeEntryRepository) Delete(entryID uint) error {
	return repo.database.Delete(&models.TimeEntry{}, entryID).Error
}

func (repo *TimeEntryRepository) FindRunningTimer(userID uint) (models.Timer, bool, error) {
	timer := models.Timer{}
	result := repo.database.Where("owner_user_id = ?", userID).Limit(1).Find(&timer)
	if result.Error != nil {
		return models.Timer{}, false, result.Error
	}
	return timer, result.RowsAffected > 0, nil
}

func (repo *TimeEntryRepository) CreateTimer(timer *models.Timer) error {
	return repo.database.Create(timer).Error
}

// CompleteTimer turns a running timer into a time entry atomically.
func (repo *TimeEntryRepository) CompleteTimer(timerID uint, entry *models.TimeEntry) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Timer{}, timerID).Error
	})
}
