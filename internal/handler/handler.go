package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

// writeError maps repository errors to JSON responses. Business-rule
// failures arrive as *utils.RequestError and keep their status and body;
// anything else is a plain 404 or 500.
func writeError(c echo.Context, err error) error {
	var reqErr *utils.RequestError
	if errors.As(err, &reqErr) {
		return c.JSON(reqErr.Status, reqErr.Body())
	}
	if errors.Is(err, utils.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Not found."})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error."})
}

// currentUser loads the authenticated user from the id the JWT middleware
// put on the context.
func currentUser(c echo.Context, storage *postgres.Storage) (*domain.User, error) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return nil, utils.ErrUnauthorized
	}
	return storage.GetUserByID(c.Request().Context(), userID)
}
