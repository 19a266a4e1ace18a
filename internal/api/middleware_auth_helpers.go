package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/sitelog/internal/models"
)

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// requestToken prefers the session cookie and falls back to a bearer token
// for non-browser clients.
func requestToken(c *fiber.Ctx) string {
	if cookie := strings.TrimSpace(c.Cookies(authCookieName)); cookie != "" {
		return cookie
	}
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

var errMissingToken = errors.New("missing auth token")

func (handler *Handler) parseToken(raw string) (*authClaims, error) {
	claims := &authClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return handler.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse auth token: %w", err)
	}
	return claims, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	raw := requestToken(c)
	if raw == "" {
		return nil, errMissingToken
	}

	claims, err := handler.parseToken(raw)
	if err != nil {
		return nil, err
	}

	user, found, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("user %d no longer exists", claims.UserID)
	}
	return &user, nil
}
