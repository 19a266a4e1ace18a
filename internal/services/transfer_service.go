package services

import (
	"slices"
	"time"

	"github.com/terraincognita07/sitelog/internal/models"
)

const (
	TransferPeople    = "people"
	TransferCompanies = "companies"
)

type TransferSourceRepository interface {
	ListPeopleByUserAndIDs(userID uint, ids []uint) ([]models.PersonalPerson, error)
	ListCompaniesByUserAndIDs(userID uint, ids []uint) ([]models.PersonalCompany, error)
}

type TransferPersonTarget interface {
	ExistsInProjectByName(projectID uint, name string) (bool, error)
	Create(person *models.Person) error
}

type TransferCompanyTarget interface {
	FindInProjectByName(projectID uint, name string) (models.Company, bool, error)
	Create(company *models.Company) error
}

// TransferService copies personal masterlist entries into a project.
type TransferService struct {
	permissions *PermissionEvaluator
	personal    TransferSourceRepository
	people      TransferPersonTarget
	companies   TransferCompanyTarget
	now         func() time.Time
}

func NewTransferService(permissions *PermissionEvaluator, personal TransferSourceRepository, people TransferPersonTarget, companies TransferCompanyTarget) *TransferService {
	return &TransferService{
		permissions: permissions,
		personal:    personal,
		people:      people,
		companies:   companies,
		now:         time.Now,
	}
}

// Transfer promotes the caller's personal items into projectID. Items whose
// exact name already exists in the project are skipped.
func (service *TransferService) Transfer(userID uint, projectID uint, itemType string, itemIDs []uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	ids := uniqueIDs(itemIDs)
	if projectID == 0 || len(ids) == 0 || len(ids) != len(itemIDs) {
		return ErrInvalidInput
	}

	permissions := service.permissions.Evaluate(userID, projectID)
	switch itemType {
	case TransferPeople:
		if !permissions.CanManagePeople {
			return ErrManagePeopleDenied
		}
		return service.transferPeople(userID, projectID, ids)
	case TransferCompanies:
		if !permissions.CanManageCompanies {
			return ErrManageCompaniesDenied
		}
		return service.transferCompanies(userID, projectID, ids)
	default:
		return ErrInvalidInput
	}
}

func (service *TransferService) transferPeople(userID uint, projectID uint, ids []uint) error {
	sources, err := service.personal.ListPeopleByUserAndIDs(userID, ids)
	if err != nil {
		return storeFailure("transfer items", err)
	}
	if len(sources) != len(ids) {
		return ErrPeopleNotFound
	}

	for _, source := range sources {
		exists, err := service.people.ExistsInProjectByName(projectID, source.Name)
		if err != nil {
			return storeFailure("transfer items", err)
		}
		if exists {
			continue
		}

		var companyID *uint
		if source.DefaultCompany != nil {
			company, found, err := service.companies.FindInProjectByName(projectID, source.DefaultCompany.Name)
			if err != nil {
				return storeFailure("transfer items", err)
			}
			if found {
				companyID = &company.ID
			}
		}

		addedAt := service.now()
		sourceID := source.ID
		person := models.Person{
			Name:                   source.Name,
			HourlyRate:             source.HourlyRate,
			CompanyID:              companyID,
			ProjectID:              &projectID,
			AddedByUserID:          &userID,
			AddedAt:                &addedAt,
			SourcePersonalPersonID: &sourceID,
		}
		if err := service.people.Create(&person); err != nil {
			return storeFailure("transfer items", err)
		}
	}
	return nil
}

func (service *TransferService) transferCompanies(userID uint, projectID uint, ids []uint) error {
	sources, err := service.personal.ListCompaniesByUserAndIDs(userID, ids)
	if err != nil {
		return storeFailure("transfer items", err)
	}
	if len(sources) != len(ids) {
		return ErrCompaniesNotFound
	}

	for _, source := range sources {
		_, exists, err := service.companies.FindInProjectByName(projectID, source.Name)
		if err != nil {
			return storeFailure("transfer items", err)
		}
		if exists {
			continue
		}

		addedAt := service.now()
		sourceID := source.ID
		company := models.Company{
			Name:                    source.Name,
			HourlyRateDefault:       source.HourlyRateDefault,
			ProjectID:               &projectID,
			AddedByUserID:           &userID,
			AddedAt:                 &addedAt,
			SourcePersonalCompanyID: &sourceID,
		}
		if err := service.companies.Create(&company); err != nil {
			return storeFailure("transfer items", err)
		}
	}
	return nil
}

// uniqueIDs drops zero ids and duplicates, keeping first-seen order.
func uniqueIDs(ids []uint) []uint {
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || slices.Contains(unique, id) {
			continue
		}
		unique = append(unique, id)
	}
	return unique
}
