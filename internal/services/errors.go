package services

import (
	"errors"
	"fmt"
	"log"
)

// Kind classifies a failure so transports can choose a status without
// inspecting messages.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindReferential
	KindConflict
	KindStore
)

func (kind Kind) String() string {
	switch kind {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindReferential:
		return "referential"
	case KindConflict:
		return "conflict"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Failure is a user-safe error. Its message is shown to callers verbatim.
type Failure struct {
	Kind    Kind
	Message string
}

func (failure *Failure) Error() string {
	return failure.Message
}

func newFailure(kind Kind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

var (
	ErrNotAuthenticated   = newFailure(KindAuthentication, "Not authenticated")
	ErrInvalidCredentials = newFailure(KindAuthentication, "Invalid email or password")
	ErrInvalidInput       = newFailure(KindValidation, "Invalid form data")
	ErrMissingData        = newFailure(KindValidation, "Missing required data")
	ErrWeakPassword       = newFailure(KindValidation, "Password must be 6 to 100 characters")

	ErrViewDenied            = newFailure(KindAuthorization, "Viewing this project not permitted")
	ErrEditDenied            = newFailure(KindAuthorization, "Editing this project not permitted")
	ErrManageMembersDenied   = newFailure(KindAuthorization, "Managing members not permitted")
	ErrManagePeopleDenied    = newFailure(KindAuthorization, "Managing people not permitted")
	ErrManageCompaniesDenied = newFailure(KindAuthorization, "Managing companies not permitted")
	ErrDeleteProjectDenied   = newFailure(KindAuthorization, "Deleting this project not permitted")
	ErrEntryEditDenied       = newFailure(KindAuthorization, "Changing this entry not permitted")

	ErrProjectNotFound       = newFailure(KindReferential, "Project not found")
	ErrUserNotFound          = newFailure(KindReferential, "User with this email doesn't exist in the system")
	ErrMemberNotFound        = newFailure(KindReferential, "Member not found in this project")
	ErrInvalidCompany        = newFailure(KindReferential, "Invalid company selected")
	ErrInvalidPerson         = newFailure(KindReferential, "Invalid person selected")
	ErrPersonNotInProject    = newFailure(KindReferential, "Person not found in this project")
	ErrCompanyNotInProject   = newFailure(KindReferential, "Company not found in this project")
	ErrPeopleNotFound        = newFailure(KindReferential, "Some selected people were not found")
	ErrCompaniesNotFound     = newFailure(KindReferential, "Some selected companies were not found")
	ErrPersonalPersonDenied  = newFailure(KindReferential, "Person not found or access denied")
	ErrPersonalCompanyDenied = newFailure(KindReferential, "Company not found or access denied")
	ErrTimeEntryNotFound     = newFailure(KindReferential, "Time entry not found")
	ErrExpenseNotFound       = newFailure(KindReferential, "Expense not found")
	ErrJournalEntryNotFound  = newFailure(KindReferential, "Journal entry not found")

	ErrAlreadyMember   = newFailure(KindConflict, "User is already a member of this project")
	ErrTimerRunning    = newFailure(KindConflict, "A timer is already running")
	ErrNoTimerRunning  = newFailure(KindConflict, "No timer is running")
	ErrEmailRegistered = newFailure(KindConflict, "Email is already registered")
	ErrNoCoordinates   = newFailure(KindConflict, "Project has no coordinates")
)

// BlockedByDependentsError rejects a delete while Count rows still reference
// the target.
type BlockedByDependentsError struct {
	Verb   string
	Entity string
	Count  int64
}

func (err *BlockedByDependentsError) Error() string {
	return fmt.Sprintf("Cannot %s %s. %d people are associated with it.", err.Verb, err.Entity, err.Count)
}

// StoreFailureError wraps a persistence error. Only "Failed to <Action>"
// is ever shown to callers.
type StoreFailureError struct {
	Action string
	Err    error
}

func (err *StoreFailureError) Error() string {
	return fmt.Sprintf("%s: %v", err.Action, err.Err)
}

func (err *StoreFailureError) Unwrap() error {
	return err.Err
}

func (err *StoreFailureError) UserMessage() string {
	return "Failed to " + err.Action
}

func storeFailure(action string, err error) error {
	return &StoreFailureError{Action: action, Err: err}
}

// KindOf reports the failure class of err. Unclassified errors count as
// store failures so they never leak detail.
func KindOf(err error) Kind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}
	var blocked *BlockedByDependentsError
	if errors.As(err, &blocked) {
		return KindConflict
	}
	return KindStore
}

// UserMessage returns the text that may be shown for err.
func UserMessage(err error) string {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Message
	}
	var blocked *BlockedByDependentsError
	if errors.As(err, &blocked) {
		return blocked.Error()
	}
	var store *StoreFailureError
	if errors.As(err, &store) {
		return store.UserMessage()
	}
	return "Something went wrong"
}

// MutationResult is the boundary shape of every mutator.
type MutationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ResultFromError(err error) MutationResult {
	if err == nil {
		return MutationResult{Success: true}
	}
	if KindOf(err) == KindStore {
		log.Printf("services: %v", err)
	}
	return MutationResult{Success: false, Error: UserMessage(err)}
}
