package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/sitelog/internal/models"
)

func TestInviteMemberNormalizesEmailAndRole(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	invitee := env.user(t, "Ines", "ines@example.com")
	project := env.project(t, "Pier", owner.ID)

	if err := env.memberService().InviteMember(owner.ID, project.ID, "  Ines@Example.com ", "editor"); err != nil {
		t.Fatalf("InviteMember() unexpected error: %v", err)
	}

	member, found, err := env.repos.Members.FindByProjectAndUser(project.ID, invitee.ID)
	if err != nil || !found {
		t.Fatalf("expected membership, found=%v err=%v", found, err)
	}
	if member.Role != models.ProjectRoleEditor {
		t.Fatalf("expected EDITOR role, got %q", member.Role)
	}
	if member.InvitedByUserID == nil || *member.InvitedByUserID != owner.ID || member.JoinedAt == nil {
		t.Fatalf("unexpected invite metadata: %#v", member)
	}
	if !env.permissions.Evaluate(invitee.ID, project.ID).CanManagePeople {
		t.Fatal("expected invited editor to manage people")
	}
}

func TestInviteMemberFailures(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	editor := env.user(t, "Editor", "editor@example.com")
	project := env.project(t, "Pier", owner.ID)
	env.member(t, project.ID, editor.ID, models.ProjectRoleEditor)
	members := env.memberService()

	cases := []struct {
		name     string
		userID   uint
		email    string
		role     string
		expected error
		message  string
	}{
		{"anonymous", 0, "editor@example.com", "VIEWER", ErrNotAuthenticated, "Not authenticated"},
		{"bad role", owner.ID, "editor@example.com", "ADMIN", ErrInvalidInput, "Invalid form data"},
		{"bad email", owner.ID, "not-an-email", "VIEWER", ErrInvalidInput, "Invalid form data"},
		{"editor cannot invite", editor.ID, "owner@example.com", "VIEWER", ErrManageMembersDenied, "Managing members not permitted"},
		{"unknown user", owner.ID, "nobody@example.com", "VIEWER", ErrUserNotFound, "User with this email doesn't exist in the system"},
		{"already member", owner.ID, "editor@example.com", "VIEWER", ErrAlreadyMember, "User is already a member of this project"},
	}

	for _, testCase := range cases {
		err := members.InviteMember(testCase.userID, project.ID, testCase.email, testCase.role)
		if !errors.Is(err, testCase.expected) {
			t.Fatalf("%s: expected %v, got %v", testCase.name, testCase.expected, err)
		}
		if got := ResultFromError(err).Error; got != testCase.message {
			t.Fatalf("%s: expected message %q, got %q", testCase.name, testCase.message, got)
		}
	}
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	viewer := env.user(t, "Viewer", "viewer@example.com")
	project := env.project(t, "Pier", owner.ID)
	env.member(t, project.ID, viewer.ID, models.ProjectRoleViewer)
	members := env.memberService()

	if err := members.RemoveMember(viewer.ID, project.ID, viewer.ID); !errors.Is(err, ErrManageMembersDenied) {
		t.Fatalf("expected viewer to be denied, got %v", err)
	}
	if err := members.RemoveMember(owner.ID, project.ID, viewer.ID); err != nil {
		t.Fatalf("RemoveMember() unexpected error: %v", err)
	}
	if err := members.RemoveMember(owner.ID, project.ID, viewer.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound on second removal, got %v", err)
	}
	if err := members.RemoveMember(owner.ID, project.ID, owner.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected owner without row to be reported missing, got %v", err)
	}
	if env.permissions.Evaluate(viewer.ID, project.ID).CanView {
		t.Fatal("expected removed member to lose access")
	}
	if !env.permissions.Evaluate(owner.ID, project.ID).CanManageMembers {
		t.Fatal("expected owner to keep access")
	}
}

func TestListMembersRequiresView(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	viewer := env.user(t, "Vera", "vera@example.com")
	stranger := env.user(t, "Stranger", "stranger@example.com")
	project := env.project(t, "Pier", owner.ID)
	env.member(t, project.ID, viewer.ID, models.ProjectRoleViewer)
	members := env.memberService()

	hidden, err := members.ListMembers(stranger.ID, project.ID)
	if err != nil || len(hidden) != 0 {
		t.Fatalf("expected empty list for stranger, got %#v err=%v", hidden, err)
	}

	listed, err := members.ListMembers(viewer.ID, project.ID)
	if err != nil {
		t.Fatalf("ListMembers() unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].UserName != "Vera" || listed[0].UserEmail != "vera@example.com" {
		t.Fatalf("unexpected members: %#v", listed)
	}
}
