package db

import (
	"github.com/terraincognita07/sitelog/internal/models"
	"gorm.io/gorm"
)

type JournalRepository struct {
	database *gorm.DB
}

func NewJournalRepository(database *gorm.DB) *JournalRepository {
	return &JournalRepository{database: database}
}

func (repo *JournalRepository) FindByID(entryID uint) (models.JournalEntry, bool, error) {
	entry := models.JournalEntry{}
	result := repo.database.Preload("Photos").Where("id = ?", entryID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.JournalEntry{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *JournalRepository) ListByProjects(projectIDs []uint) ([]models.JournalEntry, error) {
	entries := make([]models.JournalEntry, 0)
	if len(projectIDs) == 0 {
		return entries, nil
	}
	if err := repo.database.
		Preload("Photos", func(query *gorm.DB) *gorm.DB { return query.Order("id ASC") }).
		Where("project_id IN ?", projectIDs).
		Order("date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Create inserts the entry together with its Photos.
func (repo *JournalRepository) Create(entry *models.JournalEntry) error {
	return repo.database.Create(entry).Error
}

// Update saves the entry's own columns. When photoURLs is non-empty the
// existing photos are replaced; otherwise they are kept.
func (repo *JournalRepository) Update(entry *models.JournalEntry, photoURLs []string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(entry).Select("project_id", "date", "title", "notes", "tags", "weather", "updated_at").Updates(entry).Error; err != nil {
			return err
		}
		if len(photoURLs) == 0 {
			return nil
		}
		if err := tx.Where("journal_entry_id = ?", entry.ID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		photos := make([]models.Photo, 0, len(photoURLs))
		for _, url := range photoURLs {
			photos = append(photos, models.Photo{JournalEntryID: entry.ID, URL: url})
		}
		return tx.Create(&photos).Error
	})
}

func (repo *JournalRepository) Delete(entryID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("journal_entry_id = ?", entryID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.JournalEntry{}, entryID).Error
	})
}
