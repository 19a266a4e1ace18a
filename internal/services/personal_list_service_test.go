package services

import (
	"errors"
	"testing"
)

func TestPersonalListIsPrivateToOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "Alice", "alice@example.com")
	mallory := env.user(t, "Mallory", "mallory@example.com")
	lists := NewPersonalListService(env.repos.PersonalList)

	company, err := lists.CreateCompany(alice.ID, PersonalCompanyInput{Name: "Acme", Address: stringPtr("  ")})
	if err != nil {
		t.Fatalf("CreateCompany() unexpected error: %v", err)
	}
	if company.Address != nil {
		t.Fatalf("expected blank address to be dropped, got %q", *company.Address)
	}
	person, err := lists.CreatePerson(alice.ID, PersonalPersonInput{Name: "Bruno", DefaultCompanyID: &company.ID})
	if err != nil {
		t.Fatalf("CreatePerson() unexpected error: %v", err)
	}

	if err := lists.UpdatePerson(mallory.ID, person.ID, PersonalPersonInput{Name: "Stolen"}); !errors.Is(err, ErrPersonalPersonDenied) {
		t.Fatalf("expected ErrPersonalPersonDenied, got %v", err)
	}
	if ResultFromError(lists.DeleteCompany(mallory.ID, company.ID)).Error != "Company not found or access denied" {
		t.Fatal("expected foreign company delete to be reported missing")
	}
	if _, err := lists.CreatePerson(mallory.ID, PersonalPersonInput{Name: "Eve", DefaultCompanyID: &company.ID}); !errors.Is(err, ErrPersonalCompanyDenied) {
		t.Fatalf("expected foreign default company to be rejected, got %v", err)
	}

	people, err := lists.ListPeople(mallory.ID)
	if err != nil || len(people) != 0 {
		t.Fatalf("expected Mallory's list to be empty, got %#v err=%v", people, err)
	}
}

func TestPersonalCompanyDeleteBlockedByPeople(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "Alice", "alice@example.com")
	lists := NewPersonalListService(env.repos.PersonalList)

	company, err := lists.CreateCompany(alice.ID, PersonalCompanyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("CreateCompany() unexpected error: %v", err)
	}
	person, err := lists.CreatePerson(alice.ID, PersonalPersonInput{Name: "Bruno", DefaultCompanyID: &company.ID})
	if err != nil {
		t.Fatalf("CreatePerson() unexpected error: %v", err)
	}

	err = lists.DeleteCompany(alice.ID, company.ID)
	if got := ResultFromError(err).Error; got != "Cannot delete company. 1 people are associated with it." {
		t.Fatalf("unexpected message %q", got)
	}

	if err := lists.UpdatePerson(alice.ID, person.ID, PersonalPersonInput{Name: "Bruno"}); err != nil {
		t.Fatalf("UpdatePerson() unexpected error: %v", err)
	}
	if err := lists.DeleteCompany(alice.ID, company.ID); err != nil {
		t.Fatalf("DeleteCompany() unexpected error: %v", err)
	}
}

func TestPersonalListValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "Alice", "alice@example.com")
	lists := NewPersonalListService(env.repos.PersonalList)

	if _, err := lists.CreatePerson(0, PersonalPersonInput{Name: "Bruno"}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := lists.CreatePerson(alice.ID, PersonalPersonInput{Name: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected blank name to be invalid, got %v", err)
	}
	if _, err := lists.CreatePerson(alice.ID, PersonalPersonInput{Name: "Bruno", HourlyRate: floatPtr(-1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected negative rate to be invalid, got %v", err)
	}
	if _, err := lists.CreateCompany(alice.ID, PersonalCompanyInput{Name: "Acme", HourlyRateDefault: floatPtr(0)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected zero default rate to be invalid, got %v", err)
	}
}
