package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
)

func SetupAnnouncementRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/announcements", authMiddleware)
	g.POST("", SendAnnouncement(storage))
	g.DELETE("/:announcementId", DeleteAnnouncement(storage))
}

// SendAnnouncement godoc
// @Summary Send an announcement
// @Description Admins announce anywhere, doctors to their own courses, TAs to their own sections
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param announcement body domain.SendAnnouncementRequest true "Title, content and optional course/section target"
// @Success 201 {object} domain.Announcement
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /announcements [post]
func SendAnnouncement(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.SendAnnouncementRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Title and content (at most 5000 characters) are required."})
		}

		sender, err := currentUser(c, storage)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized."})
		}

		announcement, err := storage.CreateAnnouncement(c.Request().Context(), sender, &req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, announcement)
	}
}

// DeleteAnnouncement godoc
// @Summary Delete an announcement
// @Description Soft delete; only the sender or an admin may delete
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param announcementId path string true "Announcement id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /announcements/{announcementId} [delete]
func DeleteAnnouncement(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := currentUser(c, storage)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized."})
		}

		if err := storage.DeleteAnnouncement(c.Request().Context(), c.Param("announcementId"), caller); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Announcement deleted successfully."})
	}
}
