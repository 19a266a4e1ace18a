package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/models"
	"github.com/terraincognita07/sitelog/internal/services"
)

type journalPayload struct {
	ProjectID uint                    `json:"projectId"`
	Date      string                  `json:"date"`
	Title     string                  `json:"title"`
	Notes     *string                 `json:"notes"`
	Tags      []string                `json:"tags"`
	Weather   *models.WeatherSnapshot `json:"weather"`
	PhotoURLs []string                `json:"photoUrls"`
}

func (handler *Handler) ListJournalEntries(c *fiber.Ctx) error {
	projectID, ok := parseOptionalIDQuery(c, "projectId")
	if !ok {
		return invalidInput(c)
	}
	entries, err := handler.journalService.ListJournalEntries(currentUserID(c), projectID)
	return respondRead(c, entries, err)
}

func (handler *Handler) CreateJournalEntry(c *fiber.Ctx) error {
	payload := journalPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	entry, err := handler.journalService.CreateJournalEntry(currentUserID(c), services.JournalInput(payload))
	return handler.respondMutation(c, "create_journal_entry", err, fiber.Map{"entry": entry})
}

func (handler *Handler) UpdateJournalEntry(c *fiber.Ctx) error {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := journalPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	err := handler.journalService.UpdateJournalEntry(currentUserID(c), entryID, services.JournalInput(payload))
	return handler.respondMutation(c, "update_journal_entry", err, nil)
}

func (handler *Handler) DeleteJournalEntry(c *fiber.Ctx) error {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	err := handler.journalService.DeleteJournalEntry(currentUserID(c), entryID)
	return handler.respondMutation(c, "delete_journal_entry", err, nil)
}
