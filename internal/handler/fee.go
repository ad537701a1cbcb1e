package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/middleware"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
)

func SetupFeeRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/admin/fees", authMiddleware, middleware.RequireAdmin())
	g.POST("", CreateFee(storage))
	g.GET("", ListFees(storage))
	g.GET("/:feeId", GetFee(storage))
	g.PATCH("/:feeId/students/:studentId", UpdateFeeStatus(storage))
	g.DELETE("/:feeId", DeleteFee(storage))
}

// CreateFee godoc
// @Summary Create a fee
// @Description Creates the fee and attaches it to every active student of the given level and department
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param fee body domain.CreateFeeRequest true "Fee details"
// @Success 201 {object} domain.Fee
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/fees [post]
func CreateFee(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.CreateFeeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}

		fee, err := storage.CreateFee(c.Request().Context(), &req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, fee)
	}
}

// ListFees godoc
// @Summary List fees
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Fee
// @Router /admin/fees [get]
func ListFees(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		fees, err := storage.ListFees(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"fees": fees})
	}
}

// GetFee godoc
// @Summary Get one fee with its student rows
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param feeId path string true "Fee id"
// @Success 200 {object} domain.Fee
// @Failure 404 {object} map[string]string
// @Router /admin/fees/{feeId} [get]
func GetFee(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		fee, err := storage.GetFee(c.Request().Context(), c.Param("feeId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, fee)
	}
}

// UpdateFeeStatus godoc
// @Summary Mark a student's fee Paid or Pending
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param feeId path string true "Fee id"
// @Param studentId path string true "Student id"
// @Param status body domain.UpdateFeeStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/fees/{feeId}/students/{studentId} [patch]
func UpdateFeeStatus(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.UpdateFeeStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Status must be Pending or Paid."})
		}

		if err := storage.UpdateFeeStatus(c.Request().Context(), c.Param("feeId"), c.Param("studentId"), req.Status); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Fee status updated successfully."})
	}
}

// DeleteFee godoc
// @Summary Delete a fee
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param feeId path string true "Fee id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/fees/{feeId} [delete]
func DeleteFee(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := storage.DeleteFee(c.Request().Context(), c.Param("feeId")); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Fee deleted successfully."})
	}
}
