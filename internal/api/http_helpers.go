package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(services.MutationResult{Success: false, Error: message})
}

func statusForError(err error) int {
	switch services.KindOf(err) {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindAuthentication:
		return fiber.StatusUnauthorized
	case services.KindAuthorization:
		return fiber.StatusForbidden
	case services.KindReferential:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func mutationOutcome(err error) string {
	if err == nil {
		return "success"
	}
	return services.KindOf(err).String()
}

// respondMutation writes the {success, error?} result of a mutator. Extra
// fields are merged into successful responses only.
func (handler *Handler) respondMutation(c *fiber.Ctx, operation string, err error, extra fiber.Map) error {
	handler.recorder.ObserveMutation(operation, mutationOutcome(err))

	result := services.ResultFromError(err)
	if !result.Success {
		return c.Status(statusForError(err)).JSON(result)
	}
	if len(extra) == 0 {
		return c.JSON(result)
	}
	payload := fiber.Map{"success": true}
	for key, value := range extra {
		payload[key] = value
	}
	return c.JSON(payload)
}

func respondRead(c *fiber.Ctx, value any, err error) error {
	if err != nil {
		result := services.ResultFromError(err)
		return c.Status(statusForError(err)).JSON(result)
	}
	return c.JSON(value)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseOptionalIDQuery returns 0 when the query parameter is absent.
func parseOptionalIDQuery(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func invalidInput(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusBadRequest, services.ErrInvalidInput.Message)
}

func notFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "Not found")
}
