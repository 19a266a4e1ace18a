package services

import (
	"github.com/terraincognita07/sitelog/internal/models"
)

type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProjectPerson struct {
	models.Person
	AddedBy *UserSummary `json:"addedBy"`
}

type ProjectCompany struct {
	models.Company
	AddedBy *UserSummary `json:"addedBy"`
}

type ProjectPeopleLister interface {
	ListByProject(projectID uint) ([]models.Person, error)
}

type ProjectCompanyLister interface {
	ListByProject(projectID uint) ([]models.Company, error)
}

type UserDirectory interface {
	ListByIDs(ids []uint) ([]models.User, error)
}

type EntityReader struct {
	permissions *PermissionEvaluator
	people      ProjectPeopleLister
	companies   ProjectCompanyLister
	users       UserDirectory
}

func NewEntityReader(permissions *PermissionEvaluator, people ProjectPeopleLister, companies ProjectCompanyLister, users UserDirectory) *EntityReader {
	return &EntityReader{permissions: permissions, people: people, companies: companies, users: users}
}

// GetProjectPeople returns the project's people by name. Callers without
// view access get an empty slice.
func (reader *EntityReader) GetProjectPeople(userID uint, projectID uint) ([]ProjectPerson, error) {
	if !reader.permissions.Evaluate(userID, projectID).CanView {
		return []ProjectPerson{}, nil
	}

	people, err := reader.people.ListByProject(projectID)
	if err != nil {
		return nil, storeFailure("load people", err)
	}
	adderIDs := make([]*uint, 0, len(people))
	for _, person := range people {
		adderIDs = append(adderIDs, person.AddedByUserID)
	}
	adders, err := reader.userSummaries(adderIDs)
	if err != nil {
		return nil, storeFailure("load people", err)
	}

	annotated := make([]ProjectPerson, 0, len(people))
	for _, person := range people {
		annotated = append(annotated, ProjectPerson{Person: person, AddedBy: lookupSummary(adders, person.AddedByUserID)})
	}
	return annotated, nil
}

func (reader *EntityReader) GetProjectCompanies(userID uint, projectID uint) ([]ProjectCompany, error) {
	if !reader.permissions.Evaluate(userID, projectID).CanView {
		return []ProjectCompany{}, nil
	}

	companies, err := reader.companies.ListByProject(projectID)
	if err != nil {
		return nil, storeFailure("load companies", err)
	}
	adderIDs := make([]*uint, 0, len(companies))
	for _, company := range companies {
		adderIDs = append(adderIDs, company.AddedByUserID)
	}
	adders, err := reader.userSummaries(adderIDs)
	if err != nil {
		return nil, storeFailure("load companies", err)
	}

	annotated := make([]ProjectCompany, 0, len(companies))
	for _, company := range companies {
		annotated = append(annotated, ProjectCompany{Company: company, AddedBy: lookupSummary(adders, company.AddedByUserID)})
	}
	return annotated, nil
}

func (reader *EntityReader) userSummaries(ids []*uint) (map[uint]UserSummary, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		unique = append(unique, *id)
	}

	summaries := make(map[uint]UserSummary, len(unique))
	if len(unique) == 0 {
		return summaries, nil
	}
	users, err := reader.users.ListByIDs(unique)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		summaries[user.ID] = UserSummary{ID: user.ID, Name: user.Name}
	}
	return summaries, nil
}

func lookupSummary(summaries map[uint]UserSummary, id *uint) *UserSummary {
	if id == nil {
		return nil
	}
	summary, ok := summaries[*id]
	if !ok {
		return nil
	}
	return &summary
}
