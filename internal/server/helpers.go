package server

import (
	"strconv"
	"strings"
	"time"

	"quill/internal/models"
	"quill/internal/session"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID, if any.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok
}

// parseID parses the :id route parameter. A malformed ID is indistinguishable
// from a missing record, so callers respond with 404.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError(resource, raw)
	}
	return uint(id), nil
}

// bearerToken extracts a session token from the Authorization header for
// clients that cannot carry cookies.
func bearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

// setSessionCookie attaches the session token to the response.
func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(session.TTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// clearSessionCookie expires the session cookie client-side.
func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// respondServiceError maps service layer errors onto HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
