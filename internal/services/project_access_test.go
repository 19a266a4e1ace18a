package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/sitelog/internal/models"
)

type stubProjectLister struct {
	owned       []models.Project
	memberships []models.MemberProject
	err         error
}

func (stub *stubProjectLister) ListOwnedBy(uint) ([]models.Project, error) {
	return stub.owned, stub.err
}

func (stub *stubProjectLister) ListMemberOf(uint) ([]models.MemberProject, error) {
	return stub.memberships, nil
}

func TestListAccessibleOwnershipWinsOverMembership(t *testing.T) {
	t.Parallel()

	resolver := NewAccessResolver(&stubProjectLister{
		owned: []models.Project{{ID: 4, Name: "Quarry"}},
		memberships: []models.MemberProject{
			{Project: models.Project{ID: 4, Name: "Quarry"}, MemberRole: models.ProjectRoleViewer},
			{Project: models.Project{ID: 2, Name: "Bridge"}, MemberRole: models.ProjectRoleEditor},
		},
	})

	projects, err := resolver.ListAccessible(1)
	if err != nil {
		t.Fatalf("ListAccessible() unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ID != 2 || projects[0].Role != models.ProjectRoleEditor || projects[0].IsOwner {
		t.Fatalf("unexpected member project: %#v", projects[0])
	}
	if projects[1].ID != 4 || projects[1].Role != models.ProjectRoleOwner || !projects[1].IsOwner {
		t.Fatalf("expected owned project to report OWNER, got %#v", projects[1])
	}
}

func TestListAccessibleOrdersByNameThenID(t *testing.T) {
	t.Parallel()

	resolver := NewAccessResolver(&stubProjectLister{
		owned: []models.Project{{ID: 9, Name: "Canal"}, {ID: 3, Name: "Canal"}},
		memberships: []models.MemberProject{
			{Project: models.Project{ID: 5, Name: "Annex"}, MemberRole: models.ProjectRoleViewer},
		},
	})

	ids, err := resolver.AccessibleProjectIDs(1)
	if err != nil {
		t.Fatalf("AccessibleProjectIDs() unexpected error: %v", err)
	}
	if len(ids) != 3 || ids[0] != 5 || ids[1] != 3 || ids[2] != 9 {
		t.Fatalf("unexpected project order: %v", ids)
	}
}

func TestListAccessibleWrapsStoreFailures(t *testing.T) {
	t.Parallel()

	resolver := NewAccessResolver(&stubProjectLister{err: errors.New("disk I/O error")})
	_, err := resolver.ListAccessible(1)

	var store *StoreFailureError
	if !errors.As(err, &store) {
		t.Fatalf("expected store failure, got %v", err)
	}
	if UserMessage(err) != "Failed to load projects" {
		t.Fatalf("unexpected user message %q", UserMessage(err))
	}
}

func TestListAccessibleAnonymousIsEmpty(t *testing.T) {
	t.Parallel()

	projects, err := NewAccessResolver(&stubProjectLister{err: errors.New("unused")}).ListAccessible(0)
	if err != nil {
		t.Fatalf("ListAccessible() unexpected error: %v", err)
	}
	if projects == nil || len(projects) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", projects)
	}
}

func TestListAccessibleAgainstDatabase(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "Alice", "alice@example.com")
	bob := env.user(t, "Bob", "bob@example.com")
	owned := env.project(t, "Depot", alice.ID)
	shared := env.project(t, "Atrium", bob.ID)
	env.project(t, "Hidden", bob.ID)
	env.member(t, shared.ID, alice.ID, models.ProjectRoleViewer)

	projects, err := env.access.ListAccessible(alice.ID)
	if err != nil {
		t.Fatalf("ListAccessible() unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 accessible projects, got %#v", projects)
	}
	if projects[0].ID != shared.ID || projects[0].Role != models.ProjectRoleViewer {
		t.Fatalf("unexpected shared project: %#v", projects[0])
	}
	if projects[1].ID != owned.ID || !projects[1].IsOwner {
		t.Fatalf("unexpected owned project: %#v", projects[1])
	}
}
