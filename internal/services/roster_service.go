package services

import (
	"time"

	"github.com/terraincognita07/sitelog/internal/models"
)

type RosterPersonRepository interface {
	FindByID(personID uint) (models.Person, bool, error)
	Create(person *models.Person) error
	UpdateDetails(personID uint, name string, hourlyRate *float64, companyID *uint) error
	DeleteUnlinking(personID uint) error
	CountByCompany(companyID uint) (int64, error)
}

type RosterCompanyRepository interface {
	FindByID(companyID uint) (models.Company, bool, error)
	Create(company *models.Company) error
	UpdateDetails(companyID uint, name string, hourlyRateDefault *float64) error
	DeleteUnlinking(companyID uint) error
}

// RosterService mutates the people and companies scoped to a project.
type RosterService struct {
	permissions *PermissionEvaluator
	people      RosterPersonRepository
	companies   RosterCompanyRepository
	now         func() time.Time
}

func NewRosterService(permissions *PermissionEvaluator, people RosterPersonRepository, companies RosterCompanyRepository) *RosterService {
	return &RosterService{permissions: permissions, people: people, companies: companies, now: time.Now}
}

func (service *RosterService) AddPerson(userID uint, projectID uint, input PersonInput) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	input, err := input.normalize()
	if err != nil || projectID == 0 {
		return ErrInvalidInput
	}
	if !service.permissions.Evaluate(userID, projectID).CanManagePeople {
		return ErrManagePeopleDenied
	}
	if err := service.checkCompanyInProject(projectID, input.CompanyID, "add person"); err != nil {
		return err
	}

	addedAt := service.now()
	person := models.Person{
		Name:          input.Name,
		HourlyRate:    input.HourlyRate,
		CompanyID:     input.CompanyID,
		ProjectID:     &projectID,
		AddedByUserID: &userID,
		AddedAt:       &addedAt,
	}
	if err := service.people.Create(&person); err != nil {
		return storeFailure("add person", err)
	}
	return nil
}

func (service *RosterService) UpdatePerson(userID uint, projectID uint, personID uint, input PersonInput) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	input, err := input.normalize()
	if err != nil || projectID == 0 || personID == 0 {
		return ErrInvalidInput
	}
	if !service.permissions.Evaluate(userID, projectID).CanManagePeople {
		return ErrManagePeopleDenied
	}
	if err := service.checkPersonInProject(projectID, personID, "update person"); err != nil {
		return err
	}
	if err := service.checkCompanyInProject(projectID, input.CompanyID, "update person"); err != nil {
		return err
	}

	if err := service.people.UpdateDetails(personID, input.Name, input.HourlyRate, input.CompanyID); err != nil {
		return storeFailure("update person", err)
	}
	return nil
}

// RemovePerson deletes a project person. Time entries that point at it are
// kept and lose the link.
func (service *RosterService) RemovePerson(userID uint, projectID uint, personID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if projectID == 0 || personID == 0 {
		return ErrMissingData
	}
	if !service.permissions.Evaluate(userID, projectID).CanManagePeople {
		return ErrManagePeopleDenied
	}
	if err := service.checkPersonInProject(projectID, personID, "remove person"); err != nil {
		return err
	}

	if err := service.people.DeleteUnlinking(personID); err != nil {
		return storeFailure("remove person", err)
	}
	return nil
}

func (service *RosterService) AddCompany(userID uint, projectID uint, input CompanyInput) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	input, err := input.normalize()
	if err != nil || projectID == 0 {
		return ErrInvalidInput
	}
	if !service.permissions.Evaluate(userID, projectID).CanManageCompanies {
		return ErrManageCompaniesDenied
	}

	addedAt := service.now()
	company := models.Company{
		Name:              input.Name,
		HourlyRateDefault: input.HourlyRateDefault,
		ProjectID:         &projectID,
		AddedByUserID:     &userID,
		AddedAt:           &addedAt,
	}
	if err := service.companies.Create(&company); err != nil {
		return storeFailure("add company", err)
	}
	return nil
}

func (service *RosterService) UpdateCompany(userID uint, projectID uint, companyID uint, input CompanyInput) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	input, err := input.normalize()
	if err != nil || projectID == 0 || companyID == 0 {
		return ErrInvalidInput
	}
	if !service.permissions.Evaluate(userID, projectID).CanManageCompanies {
		return ErrManageCompaniesDenied
	}
	if err := service.checkCompanyOwnedByProject(projectID, companyID, "update company"); err != nil {
		return err
	}

	if err := service.companies.UpdateDetails(companyID, input.Name, input.HourlyRateDefault); err != nil {
		return storeFailure("update company", err)
	}
	return nil
}

// RemoveCompany refuses while any person still references the company.
// Expenses linked to it keep their free-text company and lose the link.
func (service *RosterService) RemoveCompany(userID uint, projectID uint, companyID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if projectID == 0 || companyID == 0 {
		return ErrMissingData
	}
	if !service.permissions.Evaluate(userID, projectID).CanManageCompanies {
		return ErrManageCompaniesDenied
	}
	if err := service.checkCompanyOwnedByProject(projectID, companyID, "remove company"); err != nil {
		return err
	}

	dependents, err := service.people.CountByCompany(companyID)
	if err != nil {
		return storeFailure("remove company", err)
	}
	if dependents > 0 {
		return &BlockedByDependentsError{Verb: "remove", Entity: "company", Count: dependents}
	}

	if err := service.companies.DeleteUnlinking(companyID); err != nil {
		return storeFailure("remove company", err)
	}
	return nil
}

func (service *RosterService) checkPersonInProject(projectID uint, personID uint, action string) error {
	person, found, err := service.people.FindByID(personID)
	if err != nil {
		return storeFailure(action, err)
	}
	if !found || !person.BelongsToProject(projectID) {
		return ErrPersonNotInProject
	}
	return nil
}

func (service *RosterService) checkCompanyOwnedByProject(projectID uint, companyID uint, action string) error {
	company, found, err := service.companies.FindByID(companyID)
	if err != nil {
		return storeFailure(action, err)
	}
	if !found || !company.BelongsToProject(projectID) {
		return ErrCompanyNotInProject
	}
	return nil
}

// checkCompanyInProject validates an optional company reference.
func (service *RosterService) checkCompanyInProject(projectID uint, companyID *uint, action string) error {
	if companyID == nil {
		return nil
	}
	company, found, err := service.companies.FindByID(*companyID)
	if err != nil {
		return storeFailure(action, err)
	}
	if !found || !company.BelongsToProject(projectID) {
		return ErrInvalidCompany
	}
	return nil
}
