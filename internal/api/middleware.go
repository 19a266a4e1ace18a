package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/models"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

// currentUserID is 0 for anonymous requests, which every service treats as
// "no identity".
func currentUserID(c *fiber.Ctx) uint {
	user, ok := currentUser(c)
	if !ok {
		return 0
	}
	return user.ID
}
