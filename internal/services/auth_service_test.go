package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/sitelog/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type stubAuthUserRepository struct {
	users      map[string]models.User
	nextID     uint
	findErr    error
	created    int
	attachedID uint
}

func newStubAuthUserRepository(users ...models.User) *stubAuthUserRepository {
	stub := &stubAuthUserRepository{users: map[string]models.User{}, nextID: 100}
	for _, user := range users {
		stub.users[user.Email] = user
	}
	return stub
}

func (stub *stubAuthUserRepository) FindByID(userID uint) (models.User, bool, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (stub *stubAuthUserRepository) FindByNormalizedEmail(email string) (models.User, bool, error) {
	if stub.findErr != nil {
		return models.User{}, false, stub.findErr
	}
	user, ok := stub.users[email]
	return user, ok, nil
}

func (stub *stubAuthUserRepository) Create(user *models.User) error {
	stub.nextID++
	user.ID = stub.nextID
	stub.users[user.Email] = *user
	stub.created++
	return nil
}

func (stub *stubAuthUserRepository) UpdateCredentials(userID uint, name string, passwordHash string) error {
	stub.attachedID = userID
	for email, user := range stub.users {
		if user.ID == userID {
			user.Name = name
			user.PasswordHash = passwordHash
			stub.users[email] = user
		}
	}
	return nil
}

func (stub *stubAuthUserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return stub.UpdateCredentials(userID, stub.nameOf(userID), passwordHash)
}

func (stub *stubAuthUserRepository) nameOf(userID uint) string {
	user, _, _ := stub.FindByID(userID)
	return user.Name
}

func newFastAuthService(users AuthUserRepository) *AuthService {
	service := NewAuthService(users)
	service.cost = bcrypt.MinCost
	return service
}

func TestRegisterThenAuthenticate(t *testing.T) {
	t.Parallel()

	repo := newStubAuthUserRepository()
	service := newFastAuthService(repo)

	user, err := service.Register(" Dana ", " Dana@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.Email != "dana@example.com" || user.Name != "Dana" || user.Role != models.RoleUser {
		t.Fatalf("unexpected user: %#v", user)
	}

	if _, err := service.Authenticate("dana@example.com", "secret1"); err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if _, err := service.Authenticate("dana@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Authenticate("nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected unknown email to look like bad credentials, got %v", err)
	}
	if _, err := service.Register("Dana", "dana@example.com", "another1"); !errors.Is(err, ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestRegisterAttachesCredentialsToPasswordlessAccount(t *testing.T) {
	t.Parallel()

	repo := newStubAuthUserRepository(models.User{ID: 5, Email: "sso@example.com", Role: models.RoleUser})
	service := newFastAuthService(repo)

	user, err := service.Register("Sam", "sso@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.ID != 5 || repo.attachedID != 5 || repo.created != 0 {
		t.Fatalf("expected credentials on existing row, got user=%#v attached=%d created=%d", user, repo.attachedID, repo.created)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	service := newFastAuthService(newStubAuthUserRepository())

	if _, err := service.Register("", "a@example.com", "secret1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected missing name to be invalid, got %v", err)
	}
	if _, err := service.Register("Ann", "Ann <a@example.com>", "secret1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected display-name address to be invalid, got %v", err)
	}
	if _, err := service.Register("Ann", "a@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	t.Parallel()

	repo := newStubAuthUserRepository(models.User{ID: 8, Name: "Lee", Email: "lee@example.com", PasswordHash: "old"})
	service := newFastAuthService(repo)

	if _, err := service.SetPassword("ghost@example.com", "secret1"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := service.SetPassword("lee@example.com", "secret1"); err != nil {
		t.Fatalf("SetPassword() unexpected error: %v", err)
	}
	if _, err := service.Authenticate("lee@example.com", "secret1"); err != nil {
		t.Fatalf("Authenticate() after reset unexpected error: %v", err)
	}
	if repo.users["lee@example.com"].Name != "Lee" {
		t.Fatalf("expected name to be kept, got %q", repo.users["lee@example.com"].Name)
	}
}

func TestAuthenticateStoreFailure(t *testing.T) {
	t.Parallel()

	repo := newStubAuthUserRepository()
	repo.findErr = errors.New("database is locked")
	_, err := newFastAuthService(repo).Authenticate("dana@example.com", "secret1")
	if KindOf(err) != KindStore || UserMessage(err) != "Failed to sign in" {
		t.Fatalf("unexpected error %v (%v)", err, KindOf(err))
	}
}
