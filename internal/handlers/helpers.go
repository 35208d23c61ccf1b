package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/seedit-social/backend/internal/models"
)

// getUserIDFromContext extracts the authenticated user ID placed in the
// context by the JWT middleware. Returns 0 when unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}
