package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/terraincognita07/sitelog/internal/models"
	"github.com/yuin/goldmark"
	"gorm.io/datatypes"
)

const maxJournalPhotos = 20

type JournalInput struct {
	ProjectID uint
	Date      string
	Title     string
	Notes     *string
	Tags      []string
	Weather   *models.WeatherSnapshot
	PhotoURLs []string
}

// JournalEntryView carries the stored entry plus its notes rendered as HTML.
type JournalEntryView struct {
	models.JournalEntry
	NotesHTML string `json:"notesHtml,omitempty"`
}

type JournalRepository interface {
	FindByID(entryID uint) (models.JournalEntry, bool, error)
	ListByProjects(projectIDs []uint) ([]models.JournalEntry, error)
	Create(entry *models.JournalEntry) error
	Update(entry *models.JournalEntry, photoURLs []string) error
	Delete(entryID uint) error
}

// WeatherProvider looks up the day's weather at a location. found is false
// when the provider has no data for that day.
type WeatherProvider interface {
	WeatherFor(ctx context.Context, latitude float64, longitude float64, day time.Time) (models.WeatherSnapshot, bool, error)
}

type ProjectFinder interface {
	FindByID(projectID uint) (models.Project, bool, error)
}

type JournalService struct {
	permissions *PermissionEvaluator
	access      *AccessResolver
	entries     JournalRepository
	projects    ProjectFinder
	weather     WeatherProvider
	markdown    goldmark.Markdown
	location    *time.Location
}

func NewJournalService(
	permissions *PermissionEvaluator,
	access *AccessResolver,
	entries JournalRepository,
	projects ProjectFinder,
	weather WeatherProvider,
	location *time.Location,
) *JournalService {
	if location == nil {
		location = time.UTC
	}
	return &JournalService{
		permissions: permissions,
		access:      access,
		entries:     entries,
		projects:    projects,
		weather:     weather,
		markdown:    goldmark.New(),
		location:    location,
	}
}

func (service *JournalService) ListJournalEntries(userID uint, projectID uint) ([]JournalEntryView, error) {
	if userID == 0 {
		return []JournalEntryView{}, nil
	}
	projectIDs, err := service.access.AccessibleProjectIDs(userID)
	if err != nil {
		return nil, err
	}
	if projectID != 0 {
		if !slices.Contains(projectIDs, projectID) {
			return []JournalEntryView{}, nil
		}
		projectIDs = []uint{projectID}
	}

	entries, err := service.entries.ListByProjects(projectIDs)
	if err != nil {
		return nil, storeFailure("load journal entries", err)
	}
	views := make([]JournalEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, JournalEntryView{JournalEntry: entry, NotesHTML: service.renderNotes(entry.Notes)})
	}
	return views, nil
}

// CreateJournalEntry stores the entry and its photos together.
func (service *JournalService) CreateJournalEntry(userID uint, input JournalInput) (models.JournalEntry, error) {
	if userID == 0 {
		return models.JournalEntry{}, ErrNotAuthenticated
	}
	entry, photoURLs, err := service.buildEntry(input)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if !service.permissions.Evaluate(userID, entry.ProjectID).CanEdit {
		return models.JournalEntry{}, ErrEditDenied
	}

	entry.OwnerUserID = userID
	for _, url := range photoURLs {
		entry.Photos = append(entry.Photos, models.Photo{URL: url})
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.JournalEntry{}, storeFailure("create journal entry", err)
	}
	return entry, nil
}

// UpdateJournalEntry keeps the existing photos unless new ones are supplied.
func (service *JournalService) UpdateJournalEntry(userID uint, entryID uint, input JournalInput) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	updated, photoURLs, err := service.buildEntry(input)
	if err != nil {
		return err
	}
	existing, err := service.loadChangeable(userID, entryID, "update journal entry")
	if err != nil {
		return err
	}
	if updated.ProjectID != existing.ProjectID && !service.permissions.Evaluate(userID, updated.ProjectID).CanEdit {
		return ErrEditDenied
	}

	updated.ID = existing.ID
	updated.OwnerUserID = existing.OwnerUserID
	if err := service.entries.Update(&updated, photoURLs); err != nil {
		return storeFailure("update journal entry", err)
	}
	return nil
}

func (service *JournalService) DeleteJournalEntry(userID uint, entryID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if _, err := service.loadChangeable(userID, entryID, "delete journal entry"); err != nil {
		return err
	}
	if err := service.entries.Delete(entryID); err != nil {
		return storeFailure("delete journal entry", err)
	}
	return nil
}

// WeatherForProject reports the weather at the project's site on day.
// found is false when the provider had nothing for that day.
func (service *JournalService) WeatherForProject(ctx context.Context, userID uint, projectID uint, day string) (models.WeatherSnapshot, bool, error) {
	if userID == 0 {
		return models.WeatherSnapshot{}, false, ErrNotAuthenticated
	}
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(day), service.location)
	if err != nil {
		return models.WeatherSnapshot{}, false, ErrInvalidInput
	}
	if !service.permissions.Evaluate(userID, projectID).CanView {
		return models.WeatherSnapshot{}, false, ErrProjectNotFound
	}

	project, found, err := service.projects.FindByID(projectID)
	if err != nil {
		return models.WeatherSnapshot{}, false, storeFailure("load weather", err)
	}
	if !found {
		return models.WeatherSnapshot{}, false, ErrProjectNotFound
	}
	if !project.HasCoordinates() || service.weather == nil {
		return models.WeatherSnapshot{}, false, ErrNoCoordinates
	}

	snapshot, found, err := service.weather.WeatherFor(ctx, *project.Latitude, *project.Longitude, date)
	if err != nil {
		log.Printf("journal: weather for project %d on %s: %v", projectID, day, err)
		return models.WeatherSnapshot{}, false, nil
	}
	return snapshot, found, nil
}

func (service *JournalService) buildEntry(input JournalInput) (models.JournalEntry, []string, error) {
	title := strings.TrimSpace(input.Title)
	if input.ProjectID == 0 || title == "" {
		return models.JournalEntry{}, nil, ErrInvalidInput
	}
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(input.Date), service.location)
	if err != nil {
		return models.JournalEntry{}, nil, ErrInvalidInput
	}

	photoURLs := make([]string, 0, len(input.PhotoURLs))
	for _, url := range input.PhotoURLs {
		if url = strings.TrimSpace(url); url != "" {
			photoURLs = append(photoURLs, url)
		}
	}
	if len(photoURLs) > maxJournalPhotos {
		return models.JournalEntry{}, nil, ErrInvalidInput
	}

	entry := models.JournalEntry{
		ProjectID: input.ProjectID,
		Date:      day,
		Title:     title,
		Notes:     optionalText(input.Notes),
	}
	if tags := cleanTags(input.Tags); len(tags) > 0 {
		encoded, err := json.Marshal(tags)
		if err != nil {
			return models.JournalEntry{}, nil, ErrInvalidInput
		}
		entry.Tags = datatypes.JSON(encoded)
	}
	if input.Weather != nil {
		encoded, err := json.Marshal(input.Weather)
		if err != nil {
			return models.JournalEntry{}, nil, ErrInvalidInput
		}
		entry.Weather = datatypes.JSON(encoded)
	}
	return entry, photoURLs, nil
}

func (service *JournalService) renderNotes(notes *string) string {
	if notes == nil {
		return ""
	}
	var rendered bytes.Buffer
	if err := service.markdown.Convert([]byte(*notes), &rendered); err != nil {
		log.Printf("journal: render notes: %v", err)
		return ""
	}
	return rendered.String()
}

func (service *JournalService) loadChangeable(userID uint, entryID uint, action string) (models.JournalEntry, error) {
	entry, found, err := service.entries.FindByID(entryID)
	if err != nil {
		return models.JournalEntry{}, storeFailure(action, err)
	}
	if !found {
		return models.JournalEntry{}, ErrJournalEntryNotFound
	}
	if entry.OwnerUserID == userID {
		return entry, nil
	}
	permissions := service.permissions.Evaluate(userID, entry.ProjectID)
	if !permissions.CanView {
		return models.JournalEntry{}, ErrJournalEntryNotFound
	}
	if permissions.Role != models.ProjectRoleOwner {
		return models.JournalEntry{}, ErrEntryEditDenied
	}
	return entry, nil
}

func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
