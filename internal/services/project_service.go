package services

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/sitelog/internal/models"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves a postal address. found is false when the lookup
// succeeded without a match.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, bool, error)
}

type ProjectRepository interface {
	FindByID(projectID uint) (models.Project, bool, error)
	Create(project *models.Project) error
	Save(project *models.Project) error
	DeleteCascade(projectID uint) error
}

type ProjectInput struct {
	Name    string
	Address *string
	Active  *bool
}

type ProjectService struct {
	permissions *PermissionEvaluator
	projects    ProjectRepository
	geocoder    Geocoder
}

func NewProjectService(permissions *PermissionEvaluator, projects ProjectRepository, geocoder Geocoder) *ProjectService {
	return &ProjectService{permissions: permissions, projects: projects, geocoder: geocoder}
}

func (service *ProjectService) CreateProject(ctx context.Context, userID uint, input ProjectInput) (models.Project, error) {
	if userID == 0 {
		return models.Project{}, ErrNotAuthenticated
	}
	input, err := input.normalize()
	if err != nil {
		return models.Project{}, err
	}

	project := models.Project{
		Name:        input.Name,
		Address:     input.Address,
		Active:      input.Active == nil || *input.Active,
		OwnerUserID: &userID,
	}
	service.applyCoordinates(ctx, &project)

	if err := service.projects.Create(&project); err != nil {
		return models.Project{}, storeFailure("create project", err)
	}
	return project, nil
}

// UpdateProject geocodes again only when the address text changed.
func (service *ProjectService) UpdateProject(ctx context.Context, userID uint, projectID uint, input ProjectInput) (models.Project, error) {
	if userID == 0 {
		return models.Project{}, ErrNotAuthenticated
	}
	input, err := input.normalize()
	if err != nil || projectID == 0 {
		return models.Project{}, ErrInvalidInput
	}
	if !service.permissions.Evaluate(userID, projectID).CanEdit {
		return models.Project{}, ErrEditDenied
	}

	project, found, err := service.projects.FindByID(projectID)
	if err != nil {
		return models.Project{}, storeFailure("update project", err)
	}
	if !found {
		return models.Project{}, ErrProjectNotFound
	}

	addressChanged := textValue(project.Address) != textValue(input.Address)
	project.Name = input.Name
	project.Address = input.Address
	if input.Active != nil {
		project.Active = *input.Active
	}
	if addressChanged {
		project.Latitude = nil
		project.Longitude = nil
		service.applyCoordinates(ctx, &project)
	}

	if err := service.projects.Save(&project); err != nil {
		return models.Project{}, storeFailure("update project", err)
	}
	return project, nil
}

// DeleteProject is reserved for the project's owner and removes everything
// scoped to it in one transaction.
func (service *ProjectService) DeleteProject(userID uint, projectID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if projectID == 0 {
		return ErrMissingData
	}

	owner, err := service.permissions.IsOwner(userID, projectID)
	if err != nil {
		return storeFailure("delete project", err)
	}
	if !owner {
		return ErrDeleteProjectDenied
	}

	if err := service.projects.DeleteCascade(projectID); err != nil {
		return storeFailure("delete project", err)
	}
	return nil
}

func (service *ProjectService) GetProject(userID uint, projectID uint) (AccessibleProject, error) {
	permissions := service.permissions.Evaluate(userID, projectID)
	if !permissions.CanView {
		return AccessibleProject{}, ErrProjectNotFound
	}
	project, found, err := service.projects.FindByID(projectID)
	if err != nil {
		return AccessibleProject{}, storeFailure("load project", err)
	}
	if !found {
		return AccessibleProject{}, ErrProjectNotFound
	}

	ownerID := project.OwnerUserID
	return AccessibleProject{
		Project: project,
		Role:    permissions.Role,
		IsOwner: ownerID != nil && *ownerID == userID,
	}, nil
}

// applyCoordinates never fails the write: a lookup error leaves the
// coordinates empty.
func (service *ProjectService) applyCoordinates(ctx context.Context, project *models.Project) {
	if service.geocoder == nil || project.Address == nil {
		return
	}
	coordinates, found, err := service.geocoder.Geocode(ctx, *project.Address)
	if err != nil {
		log.Printf("projects: geocode %q: %v", *project.Address, err)
		return
	}
	if !found {
		return
	}
	project.Latitude = &coordinates.Latitude
	project.Longitude = &coordinates.Longitude
}

func (input ProjectInput) normalize() (ProjectInput, error) {
	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) < 2 || utf8.RuneCountInString(name) > maxNameLength {
		return ProjectInput{}, ErrInvalidInput
	}
	input.Name = name
	input.Address = optionalText(input.Address)
	return input, nil
}

func textValue(text *string) string {
	if text == nil {
		return ""
	}
	return *text
}
