package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/middleware"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
)

func SetupComplaintRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	e.POST("/api/complaints", SendComplaint(storage), authMiddleware)
	e.GET("/api/complaints", MyComplaints(storage), authMiddleware)
	e.GET("/api/admin/complaints", ListComplaints(storage), authMiddleware, middleware.RequireAdmin())
	e.PATCH("/api/admin/complaints/:complaintId", ResolveComplaint(storage), authMiddleware, middleware.RequireAdmin())
}

// SendComplaint godoc
// @Summary File a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param complaint body domain.SendComplaintRequest true "Complaint text"
// @Success 201 {object} domain.Complaint
// @Failure 400 {object} map[string]string
// @Router /complaints [post]
func SendComplaint(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.SendComplaintRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "complaint is required."})
		}

		userID, _ := c.Get("user_id").(string)
		role, _ := c.Get("role").(string)
		complaint, err := storage.CreateComplaint(c.Request().Context(), userID, role, req.Complaint)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, complaint)
	}
}

// MyComplaints godoc
// @Summary List the caller's complaints
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Complaint
// @Router /complaints [get]
func MyComplaints(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, _ := c.Get("user_id").(string)
		complaints, err := storage.UserComplaints(c.Request().Context(), userID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"complaints": complaints})
	}
}

// ListComplaints godoc
// @Summary List all complaints
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Complaint
// @Router /admin/complaints [get]
func ListComplaints(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		complaints, err := storage.ListComplaints(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"complaints": complaints})
	}
}

// ResolveComplaint godoc
// @Summary Resolve a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param complaintId path string true "Complaint id"
// @Param response body domain.ResolveComplaintRequest true "Admin response"
// @Success 200 {object} domain.Complaint
// @Failure 404 {object} map[string]string
// @Router /admin/complaints/{complaintId} [patch]
func ResolveComplaint(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.ResolveComplaintRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "adminResponse is required."})
		}

		complaint, err := storage.ResolveComplaint(c.Request().Context(), c.Param("complaintId"), req.AdminResponse)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, complaint)
	}
}
