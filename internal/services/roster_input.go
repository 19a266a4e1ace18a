package services

import (
	"strings"
	"unicode/utf8"
)

const maxNameLength = 120

type PersonInput struct {
	Name       string
	HourlyRate *float64
	CompanyID  *uint
}

type CompanyInput struct {
	Name              string
	HourlyRateDefault *float64
}

func (input PersonInput) normalize() (PersonInput, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return PersonInput{}, err
	}
	if !validRate(input.HourlyRate) {
		return PersonInput{}, ErrInvalidInput
	}
	if input.CompanyID != nil && *input.CompanyID == 0 {
		input.CompanyID = nil
	}
	input.Name = name
	return input, nil
}

func (input CompanyInput) normalize() (CompanyInput, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return CompanyInput{}, err
	}
	if !validRate(input.HourlyRateDefault) {
		return CompanyInput{}, ErrInvalidInput
	}
	input.Name = name
	return input, nil
}

func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", ErrInvalidInput
	}
	return name, nil
}

// validRate accepts an absent rate or a strictly positive one.
func validRate(rate *float64) bool {
	return rate == nil || *rate > 0
}

func optionalText(raw *string) *string {
	if raw == nil {
		return nil
	}
	text := strings.TrimSpace(*raw)
	if text == "" {
		return nil
	}
	return &text
}
