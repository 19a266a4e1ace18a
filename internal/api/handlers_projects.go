package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/services"
)

type projectPayload struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

func (payload projectPayload) input() services.ProjectInput {
	return services.ProjectInput{Name: payload.Name, Address: payload.Address, Active: payload.Active}
}

// permissionsResponse renders an empty role as null.
type permissionsResponse struct {
	services.ProjectPermissions
	Role *string `json:"role"`
}

func (handler *Handler) ListProjects(c *fiber.Ctx) error {
	projects, err := handler.access.ListAccessible(currentUserID(c))
	return respondRead(c, projects, err)
}

func (handler *Handler) GetProject(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	project, err := handler.projectService.GetProject(currentUserID(c), projectID)
	return respondRead(c, project, err)
}

func (handler *Handler) CreateProject(c *fiber.Ctx) error {
	payload := projectPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	project, err := handler.projectService.CreateProject(c.UserContext(), currentUserID(c), payload.input())
	return handler.respondMutation(c, "create_project", err, fiber.Map{"project": project})
}

func (handler *Handler) UpdateProject(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := projectPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	project, err := handler.projectService.UpdateProject(c.UserContext(), currentUserID(c), projectID, payload.input())
	return handler.respondMutation(c, "update_project", err, fiber.Map{"project": project})
}

func (handler *Handler) DeleteProject(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	err := handler.projectService.DeleteProject(currentUserID(c), projectID)
	return handler.respondMutation(c, "delete_project", err, nil)
}

func (handler *Handler) GetProjectPermissions(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	permissions := handler.permissions.Evaluate(currentUserID(c), projectID)
	response := permissionsResponse{ProjectPermissions: permissions}
	if permissions.HasRole() {
		role := permissions.Role
		response.Role = &role
	}
	return c.JSON(response)
}

func (handler *Handler) GetProjectWeather(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	snapshot, found, err := handler.journalService.WeatherForProject(c.UserContext(), currentUserID(c), projectID, c.Query("date"))
	if err != nil {
		return respondRead(c, nil, err)
	}
	if !found {
		return c.JSON(fiber.Map{"found": false, "weather": nil})
	}
	return c.JSON(fiber.Map{"found": true, "weather": snapshot})
}
