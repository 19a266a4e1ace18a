package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/sitelog/internal/db"
	"github.com/terraincognita07/sitelog/internal/security"
	"github.com/terraincognita07/sitelog/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 16

func RunResetPasswordCommand(dbPath string, email string) error {
	return withAuthService(dbPath, func(auth *services.AuthService) error {
		return ResetPassword(auth, email, os.Stdout)
	})
}

func RunCreateUserCommand(dbPath string, email string, name string) error {
	return withAuthService(dbPath, func(auth *services.AuthService) error {
		return CreateUser(auth, email, name, terminalPassword(os.Stdin, os.Stderr), os.Stdout)
	})
}

// ResetPassword stores a fresh temporary password for email and prints it
// once. Only the bcrypt hash is persisted.
func ResetPassword(auth *services.AuthService, email string, out io.Writer) error {
	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	user, err := auth.SetPassword(email, temporaryPassword)
	if err != nil {
		return commandError("reset password", err)
	}

	fmt.Fprintf(out, "Password reset for %s\n", user.Email)
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	return nil
}

func CreateUser(auth *services.AuthService, email string, name string, ask passwordSource, out io.Writer) error {
	if services.NormalizeAuthEmail(email) == "" {
		return fmt.Errorf("invalid email address %q", email)
	}

	password, err := confirmedPassword(ask)
	if err != nil {
		return err
	}

	user, err := auth.Register(name, email, password)
	if err != nil {
		return commandError("create user", err)
	}

	fmt.Fprintf(out, "Created user %s (id %d)\n", user.Email, user.ID)
	return nil
}

// commandError keeps store detail for the operator, unlike the HTTP surface.
func commandError(action string, err error) error {
	var store *services.StoreFailureError
	if errors.As(err, &store) {
		return fmt.Errorf("%s: %w", action, store.Err)
	}
	return fmt.Errorf("%s: %s", action, services.UserMessage(err))
}

func withAuthService(dbPath string, run func(auth *services.AuthService) error) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database)

	return run(services.NewAuthService(db.NewUserRepository(database)))
}

func closeDatabase(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
