package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/models"
	"github.com/terraincognita07/sitelog/internal/services"
)

type registerInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"rememberMe" form:"remember_me"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	user, err := handler.authService.Register(input.Name, input.Email, input.Password)
	if err != nil {
		return handler.respondMutation(c, "register", err, nil)
	}
	return handler.startSession(c, "register", &user, false, fiber.StatusCreated)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	now := time.Now()
	limiterKey := loginLimiterKey(c, services.NormalizeAuthEmail(input.Email))
	if handler.loginLimiter.blocked(limiterKey, now) {
		handler.recorder.ObserveMutation("login", "throttled")
		return apiError(c, fiber.StatusTooManyRequests, "Too many login attempts, try again later")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if services.KindOf(err) == services.KindAuthentication {
			handler.loginLimiter.recordFailure(limiterKey, now)
		}
		return handler.respondMutation(c, "login", err, nil)
	}

	handler.loginLimiter.clear(limiterKey)
	return handler.startSession(c, "login", &user, input.RememberMe, fiber.StatusOK)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.endSession(c)
	return c.JSON(services.MutationResult{Success: true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, services.ErrNotAuthenticated.Message)
	}
	return c.JSON(user)
}

// startSession issues the auth cookie and echoes the token for clients
// that authenticate with a bearer header instead.
func (handler *Handler) startSession(c *fiber.Ctx, operation string, user *models.User, rememberMe bool, status int) error {
	token, err := handler.issueSession(c, user, rememberMe)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create session")
	}
	handler.recorder.ObserveMutation(operation, mutationOutcome(nil))
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"user":    user,
		"token":   token,
	})
}
