package models

import "time"

const (
	ProjectRoleOwner  = "OWNER"
	ProjectRoleEditor = "EDITOR"
	ProjectRoleViewer = "VIEWER"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Address     *string   `json:"address"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Active      bool      `gorm:"not null" json:"active"`
	OwnerUserID *uint     `gorm:"index" json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (project Project) HasCoordinates() bool {
	return project.Latitude != nil && project.Longitude != nil
}

// ProjectMember grants a role on a project the user does not own outright.
// JoinedAt is nil while an invitation is pending.
type ProjectMember struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ProjectID       uint       `gorm:"not null;uniqueIndex:uidx_project_member" json:"projectId"`
	UserID          uint       `gorm:"not null;uniqueIndex:uidx_project_member" json:"userId"`
	Role            string     `gorm:"not null" json:"role"`
	InvitedByUserID *uint      `json:"invitedByUserId"`
	JoinedAt        *time.Time `json:"joinedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func IsValidProjectRole(role string) bool {
	switch role {
	case ProjectRoleOwner, ProjectRoleEditor, ProjectRoleViewer:
		return true
	default:
		return false
	}
}

// MemberProject is a project row joined with one user's membership role.
type MemberProject struct {
	Project
	MemberRole string `gorm:"column:member_role" json:"memberRole"`
}

// MemberDetail is a membership row joined with the member's user record.
type MemberDetail struct {
	ProjectMember
	UserName  string `gorm:"column:user_name" json:"userName"`
	UserEmail string `gorm:"column:user_email" json:"userEmail"`
}
