package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/services"
)

type personPayload struct {
	Name       string   `json:"name"`
	HourlyRate *float64 `json:"hourlyRate"`
	CompanyID  *uint    `json:"companyId"`
}

type companyPayload struct {
	Name              string   `json:"name"`
	HourlyRateDefault *float64 `json:"hourlyRateDefault"`
}

func (handler *Handler) ListProjectPeople(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	people, err := handler.entities.GetProjectPeople(currentUserID(c), projectID)
	return respondRead(c, people, err)
}

func (handler *Handler) AddProjectPerson(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := personPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	err := handler.rosterService.AddPerson(currentUserID(c), projectID, services.PersonInput(payload))
	return handler.respondMutation(c, "add_person", err, nil)
}

func (handler *Handler) UpdateProjectPerson(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	personID, ok := parseIDParam(c, "personId")
	if !ok {
		return invalidInput(c)
	}
	payload := personPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	err := handler.rosterService.UpdatePerson(currentUserID(c), projectID, personID, services.PersonInput(payload))
	return handler.respondMutation(c, "update_person", err, nil)
}

func (handler *Handler) RemoveProjectPerson(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	personID, ok := parseIDParam(c, "personId")
	if !ok {
		return invalidInput(c)
	}
	err := handler.rosterService.RemovePerson(currentUserID(c), projectID, personID)
	return handler.respondMutation(c, "remove_person", err, nil)
}

func (handler *Handler) ListProjectCompanies(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	companies, err := handler.entities.GetProjectCompanies(currentUserID(c), projectID)
	return respondRead(c, companies, err)
}

func (handler *Handler) AddProjectCompany(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := companyPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	err := handler.rosterService.AddCompany(currentUserID(c), projectID, services.CompanyInput(payload))
	return handler.respondMutation(c, "add_company", err, nil)
}

func (handler *Handler) UpdateProjectCompany(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	companyID, ok := parseIDParam(c, "companyId")
	if !ok {
		return invalidInput(c)
	}
	payload := companyPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	err := handler.rosterService.UpdateCompany(currentUserID(c), projectID, companyID, services.CompanyInput(payload))
	return handler.respondMutation(c, "update_company", err, nil)
}

func (handler *Handler) RemoveProjectCompany(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	companyID, ok := parseIDParam(c, "companyId")
	if !ok {
		return invalidInput(c)
	}
	err := handler.rosterService.RemoveCompany(currentUserID(c), projectID, companyID)
	return handler.respondMutation(c, "remove_company", err, nil)
}

func (handler *Handler) ListVisiblePeople(c *fiber.Ctx) error {
	people, err := handler.legacyRoster.ListVisiblePeople(currentUserID(c))
	return respondRead(c, people, err)
}

func (handler *Handler) ListVisibleCompanies(c *fiber.Ctx) error {
	companies, err := handler.legacyRoster.ListVisibleCompanies(currentUserID(c))
	return respondRead(c, companies, err)
}

func (handler *Handler) DeleteLegacyPerson(c *fiber.Ctx) error {
	personID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	err := handler.legacyRoster.DeleteLegacyPerson(currentUserID(c), personID)
	return handler.respondMutation(c, "delete_legacy_person", err, nil)
}

func (handler *Handler) DeleteLegacyCompany(c *fiber.Ctx) error {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	err := handler.legacyRoster.DeleteLegacyCompany(currentUserID(c), companyID)
	return handler.respondMutation(c, "delete_legacy_company", err, nil)
}
