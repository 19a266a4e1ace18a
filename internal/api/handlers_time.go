package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/services"
)

type timeEntryPayload struct {
	ProjectID    uint    `json:"projectId"`
	PersonID     *uint   `json:"personId"`
	Date         string  `json:"date"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	BreakMinutes int     `json:"breakMinutes"`
	Notes        *string `json:"notes"`
}

type timerPayload struct {
	ProjectID uint    `json:"projectId"`
	PersonID  *uint   `json:"personId"`
	Notes     *string `json:"notes"`
}

func (handler *Handler) ListTimeEntries(c *fiber.Ctx) error {
	projectID, ok := parseOptionalIDQuery(c, "projectId")
	if !ok {
		return invalidInput(c)
	}
	entries, err := handler.timeService.ListTimeEntries(currentUserID(c), projectID)
	return respondRead(c, entries, err)
}

func (handler *Handler) CreateTimeEntry(c *fiber.Ctx) error {
	payload := timeEntryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	entry, err := handler.timeService.CreateTimeEntry(currentUserID(c), services.TimeEntryInput(payload))
	return handler.respondMutation(c, "create_time_entry", err, fiber.Map{"entry": entry})
}

func (handler *Handler) UpdateTimeEntry(c *fiber.Ctx) error {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := timeEntryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	entry, err := handler.timeService.UpdateTimeEntry(currentUserID(c), entryID, services.TimeEntryInput(payload))
	return handler.respondMutation(c, "update_time_entry", err, fiber.Map{"entry": entry})
}

func (handler *Handler) DeleteTimeEntry(c *fiber.Ctx) error {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	err := handler.timeService.DeleteTimeEntry(currentUserID(c), entryID)
	return handler.respondMutation(c, "delete_time_entry", err, nil)
}

func (handler *Handler) GetRunningTimer(c *fiber.Ctx) error {
	timer, running, err := handler.timeService.RunningTimer(currentUserID(c))
	if err != nil {
		return respondRead(c, nil, err)
	}
	if !running {
		return c.JSON(fiber.Map{"running": false, "timer": nil})
	}
	return c.JSON(fiber.Map{"running": true, "timer": timer})
}

func (handler *Handler) StartTimer(c *fiber.Ctx) error {
	payload := timerPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	timer, err := handler.timeService.StartTimer(currentUserID(c), services.TimerInput(payload))
	return handler.respondMutation(c, "start_timer", err, fiber.Map{"timer": timer})
}

func (handler *Handler) StopTimer(c *fiber.Ctx) error {
	entry, err := handler.timeService.StopTimer(currentUserID(c))
	return handler.respondMutation(c, "stop_timer", err, fiber.Map{"entry": entry})
}
