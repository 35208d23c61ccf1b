package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/seedit-social/backend/internal/repositories"
)

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	tagRepository repositories.TagRepository
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagRepo repositories.TagRepository) *TagHandler {
	return &TagHandler{tagRepository: tagRepo}
}

// RegisterTagRoutes registers tag-related routes
func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.GET("/tags", h.GetTags)
	g.POST("/tags/:name/follow", h.FollowTag)
	g.DELETE("/tags/:name/follow", h.UnfollowTag)
}

// GetTags lists all tags
func (h *TagHandler) GetTags(c echo.Context) error {
	tags, err := h.tagRepository.GetAllTags(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(tags), "tags": tags})
}

// FollowTag adds the current user to a tag's follower set. Following twice
// is a no-op.
func (h *TagHandler) FollowTag(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	name := strings.ToLower(c.Param("name"))
	if err := h.tagRepository.FollowTag(c.Request().Context(), name, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tag not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// UnfollowTag removes the current user from a tag's follower set
func (h *TagHandler) UnfollowTag(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	name := strings.ToLower(c.Param("name"))
	if err := h.tagRepository.UnfollowTag(c.Request().Context(), name, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tag not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"following": false})
}
