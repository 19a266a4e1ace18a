package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/sitelog/internal/models"
)

type MemberRepository interface {
	FindByProjectAndUser(projectID uint, userID uint) (models.ProjectMember, bool, error)
	ListByProject(projectID uint) ([]models.MemberDetail, error)
	Create(member *models.ProjectMember) error
	Delete(projectID uint, userID uint) (int64, error)
}

type MemberUserLookup interface {
	FindByNormalizedEmail(email string) (models.User, bool, error)
}

type MemberService struct {
	permissions *PermissionEvaluator
	members     MemberRepository
	users       MemberUserLookup
	now         func() time.Time
}

func NewMemberService(permissions *PermissionEvaluator, members MemberRepository, users MemberUserLookup) *MemberService {
	return &MemberService{permissions: permissions, members: members, users: users, now: time.Now}
}

// InviteMember grants role on the project to the user registered under
// email. The membership is joined immediately.
func (service *MemberService) InviteMember(userID uint, projectID uint, email string, role string) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	normalizedEmail := NormalizeAuthEmail(email)
	role = strings.ToUpper(strings.TrimSpace(role))
	if projectID == 0 || normalizedEmail == "" || !models.IsValidProjectRole(role) {
		return ErrInvalidInput
	}
	if !service.permissions.Evaluate(userID, projectID).CanManageMembers {
		return ErrManageMembersDenied
	}

	target, found, err := service.users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		return storeFailure("invite member", err)
	}
	if !found {
		return ErrUserNotFound
	}

	_, exists, err := service.members.FindByProjectAndUser(projectID, target.ID)
	if err != nil {
		return storeFailure("invite member", err)
	}
	if exists {
		return ErrAlreadyMember
	}

	joinedAt := service.now()
	member := models.ProjectMember{
		ProjectID:       projectID,
		UserID:          target.ID,
		Role:            role,
		InvitedByUserID: &userID,
		JoinedAt:        &joinedAt,
	}
	if err := service.members.Create(&member); err != nil {
		return storeFailure("invite member", err)
	}
	return nil
}

// RemoveMember deletes a membership row. The legacy owner has no row and
// cannot be removed this way.
func (service *MemberService) RemoveMember(userID uint, projectID uint, memberUserID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if projectID == 0 || memberUserID == 0 {
		return ErrMissingData
	}
	if !service.permissions.Evaluate(userID, projectID).CanManageMembers {
		return ErrManageMembersDenied
	}

	removed, err := service.members.Delete(projectID, memberUserID)
	if err != nil {
		return storeFailure("remove member", err)
	}
	if removed == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (service *MemberService) ListMembers(userID uint, projectID uint) ([]models.MemberDetail, error) {
	if !service.permissions.Evaluate(userID, projectID).CanView {
		return []models.MemberDetail{}, nil
	}
	members, err := service.members.ListByProject(projectID)
	if err != nil {
		return nil, storeFailure("load members", err)
	}
	return members, nil
}
