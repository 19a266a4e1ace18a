package models

import "time"

// Person rows come in two shapes: project-scoped (ProjectID set) and the
// pre-migration legacy shape that only carries the owning UserID.
type Person struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	Name                   string     `gorm:"not null" json:"name"`
	HourlyRate             *float64   `json:"hourlyRate"`
	CompanyID              *uint      `gorm:"index" json:"companyId"`
	Company                *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	ProjectID              *uint      `gorm:"index" json:"projectId"`
	UserID                 *uint      `gorm:"index" json:"userId,omitempty"`
	AddedByUserID          *uint      `json:"addedByUserId"`
	AddedAt                *time.Time `json:"addedAt"`
	SourcePersonalPersonID *uint      `json:"sourcePersonalPersonId"`
	CreatedAt              time.Time  `json:"createdAt"`
}

func (person Person) IsProjectScoped() bool {
	return person.ProjectID != nil
}

func (person Person) BelongsToProject(projectID uint) bool {
	return person.ProjectID != nil && *person.ProjectID == projectID
}

type Company struct {
	ID                      uint       `gorm:"primaryKey" json:"id"`
	Name                    string     `gorm:"not null" json:"name"`
	HourlyRateDefault       *float64   `json:"hourlyRateDefault"`
	ProjectID               *uint      `gorm:"index" json:"projectId"`
	UserID                  *uint      `gorm:"index" json:"userId,omitempty"`
	AddedByUserID           *uint      `json:"addedByUserId"`
	AddedAt                 *time.Time `json:"addedAt"`
	SourcePersonalCompanyID *uint      `json:"sourcePersonalCompanyId"`
	CreatedAt               time.Time  `json:"createdAt"`
}

func (company Company) IsProjectScoped() bool {
	return company.ProjectID != nil
}

func (company Company) BelongsToProject(projectID uint) bool {
	return company.ProjectID != nil && *company.ProjectID == projectID
}

type PersonalCompany struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"userId"`
	Name              string    `gorm:"not null" json:"name"`
	HourlyRateDefault *float64  `json:"hourlyRateDefault"`
	Address           *string   `json:"address"`
	Notes             *string   `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
}

type PersonalPerson struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"not null;index" json:"userId"`
	Name             string           `gorm:"not null" json:"name"`
	HourlyRate       *float64         `json:"hourlyRate"`
	DefaultCompanyID *uint            `json:"defaultCompanyId"`
	DefaultCompany   *PersonalCompany `gorm:"foreignKey:DefaultCompanyID" json:"defaultCompany,omitempty"`
	Notes            *string          `json:"notes"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func (Person) TableName() string { return "people" }

func (PersonalPerson) TableName() string { return "personal_people" }
