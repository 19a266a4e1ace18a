package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/sitelog/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

type TimeEntryInput struct {
	ProjectID    uint
	PersonID     *uint
	Date         string
	Start        string
	End          string
	BreakMinutes int
	Notes        *string
}

type TimerInput struct {
	ProjectID uint
	PersonID  *uint
	Notes     *string
}

type TimeEntryRepository interface {
	FindByID(entryID uint) (models.TimeEntry, bool, error)
	ListVisible(userID uint, projectIDs []uint) ([]models.TimeEntry, error)
	Create(entry *models.TimeEntry) error
	Save(entry *models.TimeEntry) error
	Delete(entryID uint) error
	FindRunningTimer(userID uint) (models.Timer, bool, error)
	CreateTimer(timer *models.Timer) error
	CompleteTimer(timerID uint, entry *models.TimeEntry) error
}

type PersonLookup interface {
	FindByID(personID uint) (models.Person, bool, error)
}

type TimeService struct {
	permissions *PermissionEvaluator
	access      *AccessResolver
	entries     TimeEntryRepository
	people      PersonLookup
	location    *time.Location
	now         func() time.Time
}

func NewTimeService(permissions *PermissionEvaluator, access *AccessResolver, entries TimeEntryRepository, people PersonLookup, location *time.Location) *TimeService {
	if location == nil {
		location = time.UTC
	}
	return &TimeService{
		permissions: permissions,
		access:      access,
		entries:     entries,
		people:      people,
		location:    location,
		now:         time.Now,
	}
}

// ListTimeEntries returns entries the user created or that belong to an
// accessible project, optionally narrowed to one project.
func (service *TimeService) ListTimeEntries(userID uint, projectID uint) ([]models.TimeEntry, error) {
	if userID == 0 {
		return []models.TimeEntry{}, nil
	}
	projectIDs, err := service.access.AccessibleProjectIDs(userID)
	if err != nil {
		return nil, err
	}
	entries, err := service.entries.ListVisible(userID, projectIDs)
	if err != nil {
		return nil, storeFailure("load time entries", err)
	}
	if projectID == 0 {
		return entries, nil
	}

	filtered := make([]models.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.ProjectID == projectID {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func (service *TimeService) CreateTimeEntry(userID uint, input TimeEntryInput) (models.TimeEntry, error) {
	if userID == 0 {
		return models.TimeEntry{}, ErrNotAuthenticated
	}
	entry, err := service.buildEntry(input)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if !service.permissions.Evaluate(userID, input.ProjectID).CanEdit {
		return models.TimeEntry{}, ErrEditDenied
	}
	if err := service.checkPersonInProject(input.ProjectID, input.PersonID, "create time entry"); err != nil {
		return models.TimeEntry{}, err
	}

	entry.OwnerUserID = userID
	if err := service.entries.Create(&entry); err != nil {
		return models.TimeEntry{}, storeFailure("create time entry", err)
	}
	return entry, nil
}

// UpdateTimeEntry is allowed for the entry's creator and project owners.
func (service *TimeService) UpdateTimeEntry(userID uint, entryID uint, input TimeEntryInput) (models.TimeEntry, error) {
	if userID == 0 {
		return models.TimeEntry{}, ErrNotAuthenticated
	}
	updated, err := service.buildEntry(input)
	if err != nil {
		return models.TimeEntry{}, err
	}
	existing, err := service.loadChangeable(userID, entryID, "update time entry")
	if err != nil {
		return models.TimeEntry{}, err
	}
	if updated.ProjectID != existing.ProjectID && !service.permissions.Evaluate(userID, updated.ProjectID).CanEdit {
		return models.TimeEntry{}, ErrEditDenied
	}
	if err := service.checkPersonInProject(updated.ProjectID, updated.PersonID, "update time entry"); err != nil {
		return models.TimeEntry{}, err
	}

	updated.ID = existing.ID
	updated.Mode = existing.Mode
	updated.OwnerUserID = existing.OwnerUserID
	updated.CreatedAt = existing.CreatedAt
	if err := service.entries.Save(&updated); err != nil {
		return models.TimeEntry{}, storeFailure("update time entry", err)
	}
	return updated, nil
}

func (service *TimeService) DeleteTimeEntry(userID uint, entryID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if _, err := service.loadChangeable(userID, entryID, "delete time entry"); err != nil {
		return err
	}
	if err := service.entries.Delete(entryID); err != nil {
		return storeFailure("delete time entry", err)
	}
	return nil
}

func (service *TimeService) RunningTimer(userID uint) (models.Timer, bool, error) {
	if userID == 0 {
		return models.Timer{}, false, nil
	}
	timer, running, err := service.entries.FindRunningTimer(userID)
	if err != nil {
		return models.Timer{}, false, storeFailure("load timer", err)
	}
	return timer, running, nil
}

// StartTimer allows a single running timer per user.
func (service *TimeService) StartTimer(userID uint, input TimerInput) (models.Timer, error) {
	if userID == 0 {
		return models.Timer{}, ErrNotAuthenticated
	}
	if input.ProjectID == 0 {
		return models.Timer{}, ErrInvalidInput
	}
	if input.PersonID != nil && *input.PersonID == 0 {
		input.PersonID = nil
	}
	if !service.permissions.Evaluate(userID, input.ProjectID).CanEdit {
		return models.Timer{}, ErrEditDenied
	}
	if err := service.checkPersonInProject(input.ProjectID, input.PersonID, "start timer"); err != nil {
		return models.Timer{}, err
	}

	_, running, err := service.entries.FindRunningTimer(userID)
	if err != nil {
		return models.Timer{}, storeFailure("start timer", err)
	}
	if running {
		return models.Timer{}, ErrTimerRunning
	}

	timer := models.Timer{
		ProjectID:   input.ProjectID,
		PersonID:    input.PersonID,
		OwnerUserID: userID,
		StartedAt:   service.now().In(service.location),
		Notes:       optionalText(input.Notes),
	}
	if err := service.entries.CreateTimer(&timer); err != nil {
		return models.Timer{}, storeFailure("start timer", err)
	}
	return timer, nil
}

// StopTimer converts the running timer into a timer-mode entry.
func (service *TimeService) StopTimer(userID uint) (models.TimeEntry, error) {
	if userID == 0 {
		return models.TimeEntry{}, ErrNotAuthenticated
	}
	timer, running, err := service.entries.FindRunningTimer(userID)
	if err != nil {
		return models.TimeEntry{}, storeFailure("stop timer", err)
	}
	if !running {
		return models.TimeEntry{}, ErrNoTimerRunning
	}

	startAt := timer.StartedAt.In(service.location)
	endAt := service.now().In(service.location)
	entry := models.TimeEntry{
		ProjectID:       timer.ProjectID,
		PersonID:        timer.PersonID,
		Mode:            models.TimeEntryModeTimer,
		Date:            time.Date(startAt.Year(), startAt.Month(), startAt.Day(), 0, 0, 0, 0, service.location),
		StartAt:         startAt,
		EndAt:           endAt,
		DurationMinutes: models.DurationMinutes(startAt, endAt, 0),
		Notes:           timer.Notes,
		OwnerUserID:     userID,
	}
	if err := service.entries.CompleteTimer(timer.ID, &entry); err != nil {
		return models.TimeEntry{}, storeFailure("stop timer", err)
	}
	return entry, nil
}

func (service *TimeService) buildEntry(input TimeEntryInput) (models.TimeEntry, error) {
	if input.ProjectID == 0 || input.BreakMinutes < 0 {
		return models.TimeEntry{}, ErrInvalidInput
	}
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(input.Date), service.location)
	if err != nil {
		return models.TimeEntry{}, ErrInvalidInput
	}
	startAt, err := clockOn(day, input.Start)
	if err != nil {
		return models.TimeEntry{}, ErrInvalidInput
	}
	endAt, err := clockOn(day, input.End)
	if err != nil {
		return models.TimeEntry{}, ErrInvalidInput
	}
	if input.PersonID != nil && *input.PersonID == 0 {
		input.PersonID = nil
	}

	return models.TimeEntry{
		ProjectID:       input.ProjectID,
		PersonID:        input.PersonID,
		Mode:            models.TimeEntryModeManual,
		Date:            day,
		StartAt:         startAt,
		EndAt:           endAt,
		BreakMinutes:    input.BreakMinutes,
		DurationMinutes: models.DurationMinutes(startAt, endAt, input.BreakMinutes),
		Notes:           optionalText(input.Notes),
	}, nil
}

func clockOn(day time.Time, raw string) (time.Time, error) {
	clock, err := time.Parse(clockLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}

func (service *TimeService) loadChangeable(userID uint, entryID uint, action string) (models.TimeEntry, error) {
	entry, found, err := service.entries.FindByID(entryID)
	if err != nil {
		return models.TimeEntry{}, storeFailure(action, err)
	}
	if !found {
		return models.TimeEntry{}, ErrTimeEntryNotFound
	}
	if entry.OwnerUserID == userID {
		return entry, nil
	}
	permissions := service.permissions.Evaluate(userID, entry.ProjectID)
	if !permissions.CanView {
		return models.TimeEntry{}, ErrTimeEntryNotFound
	}
	if permissions.Role != models.ProjectRoleOwner {
		return models.TimeEntry{}, ErrEntryEditDenied
	}
	return entry, nil
}

func (service *TimeService) checkPersonInProject(projectID uint, personID *uint, action string) error {
	if personID == nil {
		return nil
	}
	person, found, err := service.people.FindByID(*personID)
	if err != nil {
		return storeFailure(action, err)
	}
	if !found || !person.BelongsToProject(projectID) {
		return ErrInvalidPerson
	}
	return nil
}
