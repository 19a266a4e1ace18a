package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/sitelog/internal/models"
)

const tokenIssuer = "sitelog"

// issueSession signs a token for user and stores it in the auth cookie. The
// cookie is a session cookie unless rememberMe asks for a persistent one.
func (handler *Handler) issueSession(c *fiber.Ctx, user *models.User, rememberMe bool) (string, error) {
	ttl := sessionTTL(rememberMe)
	token, err := handler.buildToken(user, ttl)
	if err != nil {
		return "", err
	}

	var expires time.Time
	if rememberMe {
		expires = time.Now().Add(ttl)
	}
	c.Cookie(handler.sessionCookie(token, expires))
	return token, nil
}

func (handler *Handler) endSession(c *fiber.Ctx) {
	c.Cookie(handler.sessionCookie("", time.Unix(0, 0)))
}

func (handler *Handler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func sessionTTL(rememberMe bool) time.Duration {
	if rememberMe {
		return rememberAuthTokenTTL
	}
	return defaultAuthTokenTTL
}

func (handler *Handler) buildToken(user *models.User, ttl time.Duration) (string, error) {
	issuedAt := time.Now()
	claims := authClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}
