package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/services"
)

type invitePayload struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type transferPayload struct {
	ItemType string `json:"itemType"`
	ItemIDs  []uint `json:"itemIds"`
}

func (handler *Handler) ListMembers(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	members, err := handler.memberService.ListMembers(currentUserID(c), projectID)
	return respondRead(c, members, err)
}

func (handler *Handler) InviteMember(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := invitePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	err := handler.memberService.InviteMember(currentUserID(c), projectID, payload.Email, payload.Role)
	return handler.respondMutation(c, "invite_member", err, nil)
}

func (handler *Handler) RemoveMember(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	memberUserID, ok := parseIDParam(c, "userId")
	if !ok {
		return invalidInput(c)
	}
	err := handler.memberService.RemoveMember(currentUserID(c), projectID, memberUserID)
	return handler.respondMutation(c, "remove_member", err, nil)
}

func (handler *Handler) TransferPersonalItems(c *fiber.Ctx) error {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := transferPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	err := handler.transferService.Transfer(currentUserID(c), projectID, payload.ItemType, payload.ItemIDs)
	return handler.respondMutation(c, "transfer_"+transferLabel(payload.ItemType), err, nil)
}

// transferLabel bounds the metric label to known item types.
func transferLabel(itemType string) string {
	switch itemType {
	case services.TransferPeople, services.TransferCompanies:
		return itemType
	default:
		return "invalid"
	}
}
