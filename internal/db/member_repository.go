package db

import (
	"github.com/terraincognita07/sitelog/internal/models"
	"gorm.io/gorm"
)

type MemberRepository struct {
	database *gorm.DB
}

func NewMemberRepository(database *gorm.DB) *MemberRepository {
	return &MemberRepository{database: database}
}

func (repo *MemberRepository) FindByProjectAndUser(projectID uint, userID uint) (models.ProjectMember, bool, error) {
	member := models.ProjectMember{}
	result := repo.database.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Limit(1).
		Find(&member)
	if result.Error != nil {
		return models.ProjectMember{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ProjectMember{}, false, nil
	}
	return member, true, nil
}

func (repo *MemberRepository) ListByProject(projectID uint) ([]models.MemberDetail, error) {
	rows := make([]models.MemberDetail, 0)
	if err := repo.database.
		Table("project_members").
		Select("project_members.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = project_members.user_id").
		Where("project_members.project_id = ?", projectID).
		Order("users.name ASC, project_members.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *MemberRepository) Create(member *models.ProjectMember) error {
	return repo.database.Create(member).Error
}

func (repo *MemberRepository) Delete(projectID uint, userID uint) (int64, error) {
	result := repo.database.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	return result.RowsAffected, result.Error
}
