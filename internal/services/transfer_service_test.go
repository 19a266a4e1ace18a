package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/sitelog/internal/models"
)

func seedPersonalCompany(t *testing.T, env *testEnv, userID uint, name string) models.PersonalCompany {
	t.Helper()

	company := models.PersonalCompany{UserID: userID, Name: name, HourlyRateDefault: floatPtr(55)}
	if err := env.repos.PersonalList.CreateCompany(&company); err != nil {
		t.Fatalf("create personal company: %v", err)
	}
	return company
}

func seedPersonalPerson(t *testing.T, env *testEnv, userID uint, name string, companyID *uint) models.PersonalPerson {
	t.Helper()

	person := models.PersonalPerson{UserID: userID, Name: name, HourlyRate: floatPtr(30), DefaultCompanyID: companyID}
	if err := env.repos.PersonalList.CreatePerson(&person); err != nil {
		t.Fatalf("create personal person: %v", err)
	}
	return person
}

func TestTransferPeopleSkipsExistingNamesAndLinksCompanies(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	project := env.project(t, "Yard", owner.ID)
	projectAcme := env.company(t, project.ID, "Acme")
	env.person(t, project.ID, "Alice", nil)

	personalAcme := seedPersonalCompany(t, env, owner.ID, "Acme")
	alice := seedPersonalPerson(t, env, owner.ID, "Alice", nil)
	bruno := seedPersonalPerson(t, env, owner.ID, "Bruno", &personalAcme.ID)

	if err := env.transferService().Transfer(owner.ID, project.ID, TransferPeople, []uint{alice.ID, bruno.ID}); err != nil {
		t.Fatalf("Transfer() unexpected error: %v", err)
	}

	people, err := env.repos.People.ListByProject(project.ID)
	if err != nil {
		t.Fatalf("list people: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("expected Alice to be skipped and Bruno added, got %#v", people)
	}
	transferred := people[1]
	if transferred.Name != "Bruno" {
		t.Fatalf("expected Bruno, got %q", transferred.Name)
	}
	if transferred.CompanyID == nil || *transferred.CompanyID != projectAcme.ID {
		t.Fatalf("expected Bruno to link to project Acme, got %#v", transferred.CompanyID)
	}
	if transferred.SourcePersonalPersonID == nil || *transferred.SourcePersonalPersonID != bruno.ID {
		t.Fatalf("expected provenance to point at personal row, got %#v", transferred.SourcePersonalPersonID)
	}
	if transferred.AddedByUserID == nil || *transferred.AddedByUserID != owner.ID || transferred.AddedAt == nil {
		t.Fatalf("expected adder stamp, got %#v", transferred)
	}
	if transferred.HourlyRate == nil || *transferred.HourlyRate != 30 {
		t.Fatalf("expected hourly rate to be copied, got %#v", transferred.HourlyRate)
	}

	if got := env.countRows(t, "personal_people", "user_id = ?", owner.ID); got != 2 {
		t.Fatalf("expected personal rows to be kept, got %d", got)
	}
}

func TestTransferPeopleDoesNotCreateMissingCompany(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	project := env.project(t, "Yard", owner.ID)
	personalAcme := seedPersonalCompany(t, env, owner.ID, "Acme")
	bruno := seedPersonalPerson(t, env, owner.ID, "Bruno", &personalAcme.ID)

	if err := env.transferService().Transfer(owner.ID, project.ID, TransferPeople, []uint{bruno.ID}); err != nil {
		t.Fatalf("Transfer() unexpected error: %v", err)
	}

	people, err := env.repos.People.ListByProject(project.ID)
	if err != nil {
		t.Fatalf("list people: %v", err)
	}
	if len(people) != 1 || people[0].CompanyID != nil {
		t.Fatalf("expected unlinked person, got %#v", people)
	}
	if got := env.countRows(t, "companies", "project_id = ?", project.ID); got != 0 {
		t.Fatalf("expected no company to be created, got %d", got)
	}
}

func TestTransferRejectsForeignOrMissingItems(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	other := env.user(t, "Other", "other@example.com")
	project := env.project(t, "Yard", owner.ID)
	mine := seedPersonalPerson(t, env, owner.ID, "Mine", nil)
	theirs := seedPersonalPerson(t, env, other.ID, "Theirs", nil)
	theirCompany := seedPersonalCompany(t, env, other.ID, "Elsewhere")
	transfers := env.transferService()

	err := transfers.Transfer(owner.ID, project.ID, TransferPeople, []uint{mine.ID, theirs.ID})
	if !errors.Is(err, ErrPeopleNotFound) {
		t.Fatalf("expected ErrPeopleNotFound, got %v", err)
	}
	if ResultFromError(err).Error != "Some selected people were not found" {
		t.Fatalf("unexpected message %q", ResultFromError(err).Error)
	}
	if got := env.countRows(t, "people", "project_id = ?", project.ID); got != 0 {
		t.Fatalf("expected nothing to be transferred, got %d", got)
	}

	err = transfers.Transfer(owner.ID, project.ID, TransferCompanies, []uint{theirCompany.ID})
	if !errors.Is(err, ErrCompaniesNotFound) {
		t.Fatalf("expected ErrCompaniesNotFound, got %v", err)
	}
}

func TestTransferValidatesRequest(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	viewer := env.user(t, "Viewer", "viewer@example.com")
	project := env.project(t, "Yard", owner.ID)
	env.member(t, project.ID, viewer.ID, models.ProjectRoleViewer)
	mine := seedPersonalPerson(t, env, viewer.ID, "Mine", nil)
	transfers := env.transferService()

	cases := []struct {
		name     string
		itemType string
		ids      []uint
		expected error
	}{
		{"empty", TransferPeople, nil, ErrInvalidInput},
		{"duplicate ids", TransferPeople, []uint{mine.ID, mine.ID}, ErrInvalidInput},
		{"unknown type", "tools", []uint{mine.ID}, ErrInvalidInput},
		{"viewer people", TransferPeople, []uint{mine.ID}, ErrManagePeopleDenied},
		{"viewer companies", TransferCompanies, []uint{1}, ErrManageCompaniesDenied},
	}
	for _, testCase := range cases {
		if err := transfers.Transfer(viewer.ID, project.ID, testCase.itemType, testCase.ids); !errors.Is(err, testCase.expected) {
			t.Fatalf("%s: expected %v, got %v", testCase.name, testCase.expected, err)
		}
	}
}

func TestTransferCompaniesSkipsExistingNames(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	project := env.project(t, "Yard", owner.ID)
	env.company(t, project.ID, "Acme")
	acme := seedPersonalCompany(t, env, owner.ID, "Acme")
	beta := seedPersonalCompany(t, env, owner.ID, "Beta Build")

	if err := env.transferService().Transfer(owner.ID, project.ID, TransferCompanies, []uint{acme.ID, beta.ID}); err != nil {
		t.Fatalf("Transfer() unexpected error: %v", err)
	}

	companies, err := env.repos.Companies.ListByProject(project.ID)
	if err != nil {
		t.Fatalf("list companies: %v", err)
	}
	if len(companies) != 2 || companies[1].Name != "Beta Build" {
		t.Fatalf("unexpected companies: %#v", companies)
	}
	if companies[1].SourcePersonalCompanyID == nil || *companies[1].SourcePersonalCompanyID != beta.ID {
		t.Fatalf("expected company provenance, got %#v", companies[1].SourcePersonalCompanyID)
	}
	if companies[1].HourlyRateDefault == nil || *companies[1].HourlyRateDefault != 55 {
		t.Fatalf("expected default rate to be copied, got %#v", companies[1].HourlyRateDefault)
	}
}
