package services

import (
	"time"

	"github.com/terraincognita07/sitelog/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	Create(user *models.User) error
	UpdateCredentials(userID uint, name string, passwordHash string) error
	UpdatePassword(userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
	cost  int
	now   func() time.Time
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost, now: time.Now}
}

// Register creates an account. An existing row without a password hash was
// provisioned by an external sign-in and gets the credentials attached.
func (service *AuthService) Register(name string, email string, password string) (models.User, error) {
	normalizedName, err := normalizeUserName(name)
	if err != nil {
		return models.User{}, err
	}
	normalizedEmail := NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return models.User{}, ErrInvalidInput
	}
	if err := ValidatePassword(password); err != nil {
		return models.User{}, err
	}

	existing, found, err := service.users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		return models.User{}, storeFailure("create account", err)
	}
	if found && existing.HasPassword() {
		return models.User{}, ErrEmailRegistered
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return models.User{}, storeFailure("create account", err)
	}

	if found {
		if err := service.users.UpdateCredentials(existing.ID, normalizedName, string(passwordHash)); err != nil {
			return models.User{}, storeFailure("create account", err)
		}
		existing.Name = normalizedName
		existing.PasswordHash = string(passwordHash)
		return existing, nil
	}

	user := models.User{
		Name:         normalizedName,
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
		CreatedAt:    service.now(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, storeFailure("create account", err)
	}
	return user, nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (service *AuthService) Authenticate(email string, password string) (models.User, error) {
	normalizedEmail := NormalizeAuthEmail(email)
	if normalizedEmail == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, found, err := service.users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		return models.User{}, storeFailure("sign in", err)
	}
	if !found || !user.HasPassword() {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, bool, error) {
	return service.users.FindByID(userID)
}

// SetPassword replaces the password of the account registered under email.
func (service *AuthService) SetPassword(email string, password string) (models.User, error) {
	normalizedEmail := NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return models.User{}, ErrInvalidInput
	}
	if err := ValidatePassword(password); err != nil {
		return models.User{}, err
	}
	user, found, err := service.users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		return models.User{}, storeFailure("update password", err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return models.User{}, storeFailure("update password", err)
	}
	if err := service.users.UpdatePassword(user.ID, string(passwordHash)); err != nil {
		return models.User{}, storeFailure("update password", err)
	}
	user.PasswordHash = string(passwordHash)
	return user, nil
}
