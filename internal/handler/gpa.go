package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/metrics"
	"github.com/marwa-agamy/collegeSystem-app/internal/middleware"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
)

func SetupGPARoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	doctor := e.Group("/api/gpa", authMiddleware, middleware.RequireDoctor())
	doctor.POST("/grades", AddGrade(storage))
	doctor.PATCH("/grades/:studentId/:courseCode", UpdateGrade(storage))
	doctor.DELETE("/grades/:studentId/:courseCode", DeleteGrade(storage))

	e.GET("/api/gpa/grades/:studentId", GetStudentGrades(storage), authMiddleware)
	e.GET("/api/gpa/performance/:studentId", GetPerformance(storage), authMiddleware)
}

// AddGrade godoc
// @Summary Record a grade
// @Description Records a score for a registered course; a passing grade removes the student from the course roster
// @Tags gpa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param grade body domain.AddGradeRequest true "Student, course and score"
// @Success 201 {object} domain.Grade
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /gpa/grades [post]
func AddGrade(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.AddGradeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Score must be between 0 and 100."})
		}

		doctorID, _ := c.Get("user_id").(string)
		grade, err := storage.AddGrade(c.Request().Context(), doctorID, &req)
		if err != nil {
			return writeError(c, err)
		}
		metrics.GradesRecorded.Inc()
		return c.JSON(http.StatusCreated, grade)
	}
}

// UpdateGrade godoc
// @Summary Rescore the latest attempt
// @Tags gpa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student id"
// @Param courseCode path string true "Course code"
// @Param grade body domain.UpdateGradeRequest true "New score"
// @Success 200 {object} domain.Grade
// @Failure 404 {object} map[string]string
// @Router /gpa/grades/{studentId}/{courseCode} [patch]
func UpdateGrade(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.UpdateGradeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Score must be between 0 and 100."})
		}

		doctorID, _ := c.Get("user_id").(string)
		grade, err := storage.UpdateGrade(c.Request().Context(), doctorID,
			c.Param("studentId"), c.Param("courseCode"), req.Score)
		if err != nil {
			return writeError(c, err)
		}
		metrics.GradesRecorded.Inc()
		return c.JSON(http.StatusOK, grade)
	}
}

// DeleteGrade godoc
// @Summary Delete the latest attempt
// @Tags gpa
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student id"
// @Param courseCode path string true "Course code"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /gpa/grades/{studentId}/{courseCode} [delete]
func DeleteGrade(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		doctorID, _ := c.Get("user_id").(string)
		if err := storage.DeleteGrade(c.Request().Context(), doctorID,
			c.Param("studentId"), c.Param("courseCode")); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Grade deleted successfully."})
	}
}

// GetStudentGrades godoc
// @Summary List a student's grades
// @Description Students read their own grades; doctors and admins read anyone's
// @Tags gpa
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student id"
// @Success 200 {array} domain.Grade
// @Failure 403 {object} map[string]string
// @Router /gpa/grades/{studentId} [get]
func GetStudentGrades(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !selfOrStaff(c) {
			return c.JSON(http.StatusForbidden, map[string]string{"message": "You can only view your own records."})
		}
		grades, err := storage.GetStudentGrades(c.Request().Context(), c.Param("studentId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"grades": grades})
	}
}

// GetPerformance godoc
// @Summary Academic performance of a student
// @Description CGPA, term GPA, completed and remaining hours, level, credit-hour cap and the course breakdown
// @Tags gpa
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student id"
// @Success 200 {object} domain.PerformanceView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /gpa/performance/{studentId} [get]
func GetPerformance(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !selfOrStaff(c) {
			return c.JSON(http.StatusForbidden, map[string]string{"message": "You can only view your own records."})
		}
		view, err := storage.GetPerformance(c.Request().Context(), c.Param("studentId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, view)
	}
}

// selfOrStaff lets students read only their own records while doctors and
// admins may read any student's.
func selfOrStaff(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	userID, _ := c.Get("user_id").(string)
	return role != domain.RoleStudent || userID == c.Param("studentId")
}
