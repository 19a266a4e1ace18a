package services

import (
	"github.com/terraincognita07/sitelog/internal/models"
)

type PersonalPersonInput struct {
	Name             string
	HourlyRate       *float64
	DefaultCompanyID *uint
	Notes            *string
}

type PersonalCompanyInput struct {
	Name              string
	HourlyRateDefault *float64
	Address           *string
	Notes             *string
}

type PersonalListRepository interface {
	ListPeopleByUser(userID uint) ([]models.PersonalPerson, error)
	ListCompaniesByUser(userID uint) ([]models.PersonalCompany, error)
	FindPerson(personID uint) (models.PersonalPerson, bool, error)
	FindCompany(companyID uint) (models.PersonalCompany, bool, error)
	CountPeopleByDefaultCompany(companyID uint) (int64, error)
	CreatePerson(person *models.PersonalPerson) error
	CreateCompany(company *models.PersonalCompany) error
	UpdatePerson(personID uint, updates map[string]any) error
	UpdateCompany(companyID uint, updates map[string]any) error
	DeletePerson(personID uint) error
	DeleteCompany(companyID uint) error
}

// PersonalListService manages a user's private masterlist. Rows of other
// users are reported as missing.
type PersonalListService struct {
	lists PersonalListRepository
}

func NewPersonalListService(lists PersonalListRepository) *PersonalListService {
	return &PersonalListService{lists: lists}
}

func (service *PersonalListService) ListPeople(userID uint) ([]models.PersonalPerson, error) {
	if userID == 0 {
		return []models.PersonalPerson{}, nil
	}
	people, err := service.lists.ListPeopleByUser(userID)
	if err != nil {
		return nil, storeFailure("load personal people", err)
	}
	return people, nil
}

func (service *PersonalListService) ListCompanies(userID uint) ([]models.PersonalCompany, error) {
	if userID == 0 {
		return []models.PersonalCompany{}, nil
	}
	companies, err := service.lists.ListCompaniesByUser(userID)
	if err != nil {
		return nil, storeFailure("load personal companies", err)
	}
	return companies, nil
}

func (service *PersonalListService) CreatePerson(userID uint, input PersonalPersonInput) (models.PersonalPerson, error) {
	if userID == 0 {
		return models.PersonalPerson{}, ErrNotAuthenticated
	}
	input, err := service.normalizePerson(userID, input, "create person")
	if err != nil {
		return models.PersonalPerson{}, err
	}

	person := models.PersonalPerson{
		UserID:           userID,
		Name:             input.Name,
		HourlyRate:       input.HourlyRate,
		DefaultCompanyID: input.DefaultCompanyID,
		Notes:            input.Notes,
	}
	if err := service.lists.CreatePerson(&person); err != nil {
		return models.PersonalPerson{}, storeFailure("create person", err)
	}
	return person, nil
}

func (service *PersonalListService) UpdatePerson(userID uint, personID uint, input PersonalPersonInput) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if err := service.checkPersonOwner(userID, personID, "update person"); err != nil {
		return err
	}
	input, err := service.normalizePerson(userID, input, "update person")
	if err != nil {
		return err
	}

	if err := service.lists.UpdatePerson(personID, map[string]any{
		"name":               input.Name,
		"hourly_rate":        input.HourlyRate,
		"default_company_id": input.DefaultCompanyID,
		"notes":              input.Notes,
	}); err != nil {
		return storeFailure("update person", err)
	}
	return nil
}

func (service *PersonalListService) DeletePerson(userID uint, personID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if err := service.checkPersonOwner(userID, personID, "delete person"); err != nil {
		return err
	}
	if err := service.lists.DeletePerson(personID); err != nil {
		return storeFailure("delete person", err)
	}
	return nil
}

func (service *PersonalListService) CreateCompany(userID uint, input PersonalCompanyInput) (models.PersonalCompany, error) {
	if userID == 0 {
		return models.PersonalCompany{}, ErrNotAuthenticated
	}
	input, err := normalizePersonalCompany(input)
	if err != nil {
		return models.PersonalCompany{}, err
	}

	company := models.PersonalCompany{
		UserID:            userID,
		Name:              input.Name,
		HourlyRateDefault: input.HourlyRateDefault,
		Address:           input.Address,
		Notes:             input.Notes,
	}
	if err := service.lists.CreateCompany(&company); err != nil {
		return models.PersonalCompany{}, storeFailure("create company", err)
	}
	return company, nil
}

func (service *PersonalListService) UpdateCompany(userID uint, companyID uint, input PersonalCompanyInput) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if err := service.checkCompanyOwner(userID, companyID, "update company"); err != nil {
		return err
	}
	input, err := normalizePersonalCompany(input)
	if err != nil {
		return err
	}

	if err := service.lists.UpdateCompany(companyID, map[string]any{
		"name":                input.Name,
		"hourly_rate_default": input.HourlyRateDefault,
		"address":             input.Address,
		"notes":               input.Notes,
	}); err != nil {
		return storeFailure("update company", err)
	}
	return nil
}

// DeleteCompany refuses while personal people still default to the company.
func (service *PersonalListService) DeleteCompany(userID uint, companyID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if err := service.checkCompanyOwner(userID, companyID, "delete company"); err != nil {
		return err
	}

	dependents, err := service.lists.CountPeopleByDefaultCompany(companyID)
	if err != nil {
		return storeFailure("delete company", err)
	}
	if dependents > 0 {
		return &BlockedByDependentsError{Verb: "delete", Entity: "company", Count: dependents}
	}

	if err := service.lists.DeleteCompany(companyID); err != nil {
		return storeFailure("delete company", err)
	}
	return nil
}

func (service *PersonalListService) normalizePerson(userID uint, input PersonalPersonInput, action string) (PersonalPersonInput, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return PersonalPersonInput{}, err
	}
	if input.HourlyRate != nil && *input.HourlyRate < 0 {
		return PersonalPersonInput{}, ErrInvalidInput
	}
	if input.DefaultCompanyID != nil && *input.DefaultCompanyID == 0 {
		input.DefaultCompanyID = nil
	}
	if input.DefaultCompanyID != nil {
		if err := service.checkCompanyOwner(userID, *input.DefaultCompanyID, action); err != nil {
			return PersonalPersonInput{}, err
		}
	}
	input.Name = name
	input.Notes = optionalText(input.Notes)
	return input, nil
}

func normalizePersonalCompany(input PersonalCompanyInput) (PersonalCompanyInput, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return PersonalCompanyInput{}, err
	}
	if !validRate(input.HourlyRateDefault) {
		return PersonalCompanyInput{}, ErrInvalidInput
	}
	input.Name = name
	input.Address = optionalText(input.Address)
	input.Notes = optionalText(input.Notes)
	return input, nil
}

func (service *PersonalListService) checkPersonOwner(userID uint, personID uint, action string) error {
	person, found, err := service.lists.FindPerson(personID)
	if err != nil {
		return storeFailure(action, err)
	}
	if !found || person.UserID != userID {
		return ErrPersonalPersonDenied
	}
	return nil
}

func (service *PersonalListService) checkCompanyOwner(userID uint, companyID uint, action string) error {
	company, found, err := service.lists.FindCompany(companyID)
	if err != nil {
		return storeFailure(action, err)
	}
	if !found || company.UserID != userID {
		return ErrPersonalCompanyDenied
	}
	return nil
}
