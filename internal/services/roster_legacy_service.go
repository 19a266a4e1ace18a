package services

import (
	"github.com/terraincognita07/sitelog/internal/models"
)

type VisiblePeopleRepository interface {
	FindByID(personID uint) (models.Person, bool, error)
	ListVisible(userID uint, projectIDs []uint) ([]models.Person, error)
	DeleteUnlinking(personID uint) error
}

type VisibleCompanyRepository interface {
	FindByID(companyID uint) (models.Company, bool, error)
	ListVisible(userID uint, projectIDs []uint) ([]models.Company, error)
	DeleteUnlinking(companyID uint) error
}

// LegacyRosterService serves the flat people and company lists, mixing
// pre-migration rows owned by the user with rows of accessible projects.
type LegacyRosterService struct {
	access    *AccessResolver
	people    VisiblePeopleRepository
	companies VisibleCompanyRepository
}

func NewLegacyRosterService(access *AccessResolver, people VisiblePeopleRepository, companies VisibleCompanyRepository) *LegacyRosterService {
	return &LegacyRosterService{access: access, people: people, companies: companies}
}

func (service *LegacyRosterService) ListVisiblePeople(userID uint) ([]models.Person, error) {
	if userID == 0 {
		return []models.Person{}, nil
	}
	projectIDs, err := service.access.AccessibleProjectIDs(userID)
	if err != nil {
		return nil, err
	}
	people, err := service.people.ListVisible(userID, projectIDs)
	if err != nil {
		return nil, storeFailure("load people", err)
	}
	return people, nil
}

func (service *LegacyRosterService) ListVisibleCompanies(userID uint) ([]models.Company, error) {
	if userID == 0 {
		return []models.Company{}, nil
	}
	projectIDs, err := service.access.AccessibleProjectIDs(userID)
	if err != nil {
		return nil, err
	}
	companies, err := service.companies.ListVisible(userID, projectIDs)
	if err != nil {
		return nil, storeFailure("load companies", err)
	}
	return companies, nil
}

// DeleteLegacyPerson only touches pre-migration rows of the caller. Time
// entries keep existing without the person link.
func (service *LegacyRosterService) DeleteLegacyPerson(userID uint, personID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	person, found, err := service.people.FindByID(personID)
	if err != nil {
		return storeFailure("delete person", err)
	}
	if !found || person.IsProjectScoped() || person.UserID == nil || *person.UserID != userID {
		return ErrPersonalPersonDenied
	}

	if err := service.people.DeleteUnlinking(personID); err != nil {
		return storeFailure("delete person", err)
	}
	return nil
}

// DeleteLegacyCompany detaches people and expenses before deleting.
func (service *LegacyRosterService) DeleteLegacyCompany(userID uint, companyID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	company, found, err := service.companies.FindByID(companyID)
	if err != nil {
		return storeFailure("delete company", err)
	}
	if !found || company.IsProjectScoped() || company.UserID == nil || *company.UserID != userID {
		return ErrPersonalCompanyDenied
	}

	if err := service.companies.DeleteUnlinking(companyID); err != nil {
		return storeFailure("delete company", err)
	}
	return nil
}
