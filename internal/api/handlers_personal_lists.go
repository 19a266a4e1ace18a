package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/services"
)

type personalPersonPayload struct {
	Name             string   `json:"name"`
	HourlyRate       *float64 `json:"hourlyRate"`
	DefaultCompanyID *uint    `json:"defaultCompanyId"`
	Notes            *string  `json:"notes"`
}

type personalCompanyPayload struct {
	Name              string   `json:"name"`
	HourlyRateDefault *float64 `json:"hourlyRateDefault"`
	Address           *string  `json:"address"`
	Notes             *string  `json:"notes"`
}

func (handler *Handler) ListPersonalPeople(c *fiber.Ctx) error {
	people, err := handler.personalLists.ListPeople(currentUserID(c))
	return respondRead(c, people, err)
}

func (handler *Handler) CreatePersonalPerson(c *fiber.Ctx) error {
	payload := personalPersonPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	person, err := handler.personalLists.CreatePerson(currentUserID(c), services.PersonalPersonInput(payload))
	return handler.respondMutation(c, "create_personal_person", err, fiber.Map{"person": person})
}

func (handler *Handler) UpdatePersonalPerson(c *fiber.Ctx) error {
	personID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := personalPersonPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	err := handler.personalLists.UpdatePerson(currentUserID(c), personID, services.PersonalPersonInput(payload))
	return handler.respondMutation(c, "update_personal_person", err, nil)
}

func (handler *Handler) DeletePersonalPerson(c *fiber.Ctx) error {
	personID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	err := handler.personalLists.DeletePerson(currentUserID(c), personID)
	return handler.respondMutation(c, "delete_personal_person", err, nil)
}

func (handler *Handler) ListPersonalCompanies(c *fiber.Ctx) error {
	companies, err := handler.personalLists.ListCompanies(currentUserID(c))
	return respondRead(c, companies, err)
}

func (handler *Handler) CreatePersonalCompany(c *fiber.Ctx) error {
	payload := personalCompanyPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	company, err := handler.personalLists.CreateCompany(currentUserID(c), services.PersonalCompanyInput(payload))
	return handler.respondMutation(c, "create_personal_company", err, fiber.Map{"company": company})
}

func (handler *Handler) UpdatePersonalCompany(c *fiber.Ctx) error {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := personalCompanyPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	err := handler.personalLists.UpdateCompany(currentUserID(c), companyID, services.PersonalCompanyInput(payload))
	return handler.respondMutation(c, "update_personal_company", err, nil)
}

func (handler *Handler) DeletePersonalCompany(c *fiber.Ctx) error {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	err := handler.personalLists.DeleteCompany(currentUserID(c), companyID)
	return handler.respondMutation(c, "delete_personal_company", err, nil)
}
