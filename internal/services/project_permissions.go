package services

import (
	"log"

	"github.com/terraincognita07/sitelog/internal/models"
)

type ProjectPermissions struct {
	CanView            bool   `json:"canView"`
	CanEdit            bool   `json:"canEdit"`
	CanManageMembers   bool   `json:"canManageMembers"`
	CanManagePeople    bool   `json:"canManagePeople"`
	CanManageCompanies bool   `json:"canManageCompanies"`
	Role               string `json:"-"`
}

// HasRole is false when the user neither owns nor belongs to the project.
func (permissions ProjectPermissions) HasRole() bool {
	return permissions.Role != ""
}

// PermissionsForRole maps a project role onto capabilities. Unknown roles
// grant nothing.
func PermissionsForRole(role string) ProjectPermissions {
	switch role {
	case models.ProjectRoleOwner:
		return ProjectPermissions{
			CanView:            true,
			CanEdit:            true,
			CanManageMembers:   true,
			CanManagePeople:    true,
			CanManageCompanies: true,
			Role:               role,
		}
	case models.ProjectRoleEditor:
		return ProjectPermissions{
			CanView:            true,
			CanEdit:            true,
			CanManagePeople:    true,
			CanManageCompanies: true,
			Role:               role,
		}
	case models.ProjectRoleViewer:
		return ProjectPermissions{CanView: true, Role: role}
	default:
		return ProjectPermissions{}
	}
}

type ProjectOwnerLookup interface {
	FindOwnerID(projectID uint) (*uint, bool, error)
}

type MembershipLookup interface {
	FindByProjectAndUser(projectID uint, userID uint) (models.ProjectMember, bool, error)
}

type DecisionObserver interface {
	ObserveDecision(role string)
}

type PermissionEvaluator struct {
	projects ProjectOwnerLookup
	members  MembershipLookup
	observer DecisionObserver
}

func NewPermissionEvaluator(projects ProjectOwnerLookup, members MembershipLookup, observer DecisionObserver) *PermissionEvaluator {
	return &PermissionEvaluator{projects: projects, members: members, observer: observer}
}

// Evaluate never fails: missing identity, a missing project and store errors
// all resolve to no access.
func (evaluator *PermissionEvaluator) Evaluate(userID uint, projectID uint) ProjectPermissions {
	permissions := evaluator.evaluate(userID, projectID)
	if evaluator.observer != nil {
		evaluator.observer.ObserveDecision(permissions.Role)
	}
	return permissions
}

func (evaluator *PermissionEvaluator) evaluate(userID uint, projectID uint) ProjectPermissions {
	if userID == 0 || projectID == 0 {
		return ProjectPermissions{}
	}

	ownerID, found, err := evaluator.projects.FindOwnerID(projectID)
	if err != nil {
		log.Printf("permissions: load owner of project %d: %v", projectID, err)
		return ProjectPermissions{}
	}
	if !found {
		return ProjectPermissions{}
	}
	if ownerID != nil && *ownerID == userID {
		return PermissionsForRole(models.ProjectRoleOwner)
	}

	member, found, err := evaluator.members.FindByProjectAndUser(projectID, userID)
	if err != nil {
		log.Printf("permissions: load membership of user %d in project %d: %v", userID, projectID, err)
		return ProjectPermissions{}
	}
	if !found {
		return ProjectPermissions{}
	}
	return PermissionsForRole(member.Role)
}

// IsOwner reports whether userID holds the legacy owner column of the project.
func (evaluator *PermissionEvaluator) IsOwner(userID uint, projectID uint) (bool, error) {
	ownerID, found, err := evaluator.projects.FindOwnerID(projectID)
	if err != nil {
		return false, err
	}
	return found && ownerID != nil && *ownerID == userID && userID != 0, nil
}
