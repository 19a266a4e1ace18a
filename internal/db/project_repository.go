package db

import (
	"github.com/terraincognita07/sitelog/internal/models"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	database *gorm.DB
}

func NewProjectRepository(database *gorm.DB) *ProjectRepository {
	return &ProjectRepository{database: database}
}

func (repo *ProjectRepository) FindByID(projectID uint) (models.Project, bool, error) {
	project := models.Project{}
	result := repo.database.Where("id = ?", projectID).Limit(1).Find(&project)
	if result.Error != nil {
		return models.Project{}, false, result.Error
	}
	return project, result.RowsAffected > 0, nil
}

// FindOwnerID reports the legacy owner column of a project. found is false
// when the project does not exist.
func (repo *ProjectRepository) FindOwnerID(projectID uint) (*uint, bool, error) {
	var project models.Project
	result := repo.database.
		Select("id", "owner_user_id").
		Where("id = ?", projectID).
		Limit(1).
		Find(&project)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return project.OwnerUserID, true, nil
}

func (repo *ProjectRepository) ListOwnedBy(userID uint) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	if err := repo.database.
		Where("owner_user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (repo *ProjectRepository) ListMemberOf(userID uint) ([]models.MemberProject, error) {
	rows := make([]models.MemberProject, 0)
	if err := repo.database.
		Table("projects").
		Select("projects.*, project_members.role AS member_role").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Order("projects.name ASC, projects.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *ProjectRepository) Create(project *models.Project) error {
	return repo.database.Create(project).Error
}

func (repo *ProjectRepository) Save(project *models.Project) error {
	return repo.database.Save(project).Error
}

// DeleteCascade removes the project and every row scoped to it inside one
// transaction. Photos go first, then timers and time entries, then journal
// entries; the remaining project-scoped rows follow so foreign keys hold.
// Rows outside the project that point at its people or companies are
// unlinked rather than deleted.
func (repo *ProjectRepository) DeleteCascade(projectID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		journalIDs := tx.Model(&models.JournalEntry{}).Select("id").Where("project_id = ?", projectID)
		if err := tx.Where("journal_entry_id IN (?)", journalIDs).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Timer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.TimeEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.JournalEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		personIDs := tx.Model(&models.Person{}).Select("id").Where("project_id = ?", projectID)
		if err := tx.Model(&models.TimeEntry{}).
			Where("person_id IN (?)", personIDs).
			Update("person_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Timer{}).
			Where("person_id IN (?)", personIDs).
			Update("person_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Person{}).Error; err != nil {
			return err
		}
		companyIDs := tx.Model(&models.Company{}).Select("id").Where("project_id = ?", projectID)
		if err := tx.Model(&models.Person{}).
			Where("company_id IN (?)", companyIDs).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Expense{}).
			Where("company_id IN (?)", companyIDs).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Company{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, projectID).Error
	})
}
