package services

import (
	"slices"
	"strings"

	"github.com/terraincognita07/sitelog/internal/models"
)

type AccessibleProject struct {
	models.Project
	Role    string `json:"role"`
	IsOwner bool   `json:"isOwner"`
}

type AccessibleProjectLister interface {
	ListOwnedBy(userID uint) ([]models.Project, error)
	ListMemberOf(userID uint) ([]models.MemberProject, error)
}

type AccessResolver struct {
	projects AccessibleProjectLister
}

func NewAccessResolver(projects AccessibleProjectLister) *AccessResolver {
	return &AccessResolver{projects: projects}
}

// ListAccessible merges owned projects with memberships, one entry per
// project. Ownership wins over a stale membership row for the same project.
func (resolver *AccessResolver) ListAccessible(userID uint) ([]AccessibleProject, error) {
	if userID == 0 {
		return []AccessibleProject{}, nil
	}

	owned, err := resolver.projects.ListOwnedBy(userID)
	if err != nil {
		return nil, storeFailure("load projects", err)
	}
	memberships, err := resolver.projects.ListMemberOf(userID)
	if err != nil {
		return nil, storeFailure("load projects", err)
	}

	byID := make(map[uint]AccessibleProject, len(owned)+len(memberships))
	for _, project := range owned {
		byID[project.ID] = AccessibleProject{Project: project, Role: models.ProjectRoleOwner, IsOwner: true}
	}
	for _, membership := range memberships {
		if _, exists := byID[membership.ID]; exists {
			continue
		}
		byID[membership.ID] = AccessibleProject{Project: membership.Project, Role: membership.MemberRole}
	}

	projects := make([]AccessibleProject, 0, len(byID))
	for _, project := range byID {
		projects = append(projects, project)
	}
	slices.SortFunc(projects, func(left, right AccessibleProject) int {
		if byName := strings.Compare(left.Name, right.Name); byName != 0 {
			return byName
		}
		return int(left.ID) - int(right.ID)
	})
	return projects, nil
}

func (resolver *AccessResolver) AccessibleProjectIDs(userID uint) ([]uint, error) {
	projects, err := resolver.ListAccessible(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(projects))
	for _, project := range projects {
		ids = append(ids, project.ID)
	}
	return ids, nil
}
