package services

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 100
	maxUserNameLength = 100
)

// NormalizeAuthEmail lower-cases and trims raw. It returns "" for anything
// that does not parse as a bare address.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return ""
	}
	return email
}

func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < minPasswordLength || length > maxPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

func normalizeUserName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > maxUserNameLength {
		return "", ErrInvalidInput
	}
	return name, nil
}
