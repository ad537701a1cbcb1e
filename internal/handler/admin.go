package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/middleware"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
)

func SetupAdminRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/admin", authMiddleware, middleware.RequireAdmin())

	g.POST("/users", CreateUser(storage))
	g.POST("/users/bulk", BulkCreateUsers(storage))
	g.GET("/users", ListUsers(storage))
	g.GET("/users/:userId", GetUser(storage))
	g.PATCH("/users/:userId", UpdateUser(storage))
	g.DELETE("/users/:userId", DeleteUser(storage))

	g.POST("/courses", CreateCourse(storage))
	g.GET("/courses", ListCourses(storage))
	g.GET("/courses/:courseCode", GetCourse(storage))
	g.PATCH("/courses/:courseCode", UpdateCourse(storage))
	g.DELETE("/courses/:courseCode", DeleteCourse(storage))

	g.POST("/courses/:courseCode/sections", AddSection(storage))
	g.PATCH("/courses/:courseCode/sections/:sectionId", UpdateSection(storage))
	g.DELETE("/courses/:courseCode/sections/:sectionId", DeleteSection(storage))

	g.POST("/exams", CreateExam(storage))
	g.GET("/exams", ListExams(storage))
	g.GET("/exams/:examId", GetExam(storage))
	g.PATCH("/exams/:examId", UpdateExam(storage))
	g.DELETE("/exams/:examId", DeleteExam(storage))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

// CreateUser godoc
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body domain.CreateUserRequest true "User details"
// @Success 201 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/users [post]
func CreateUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}

		hashed, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Could not hash password."})
		}

		user, err := storage.CreateUser(c.Request().Context(), &req, hashed)
		if err != nil {
			return writeError(c, err)
		}
		user.PasswordHash = ""
		return c.JSON(http.StatusCreated, user)
	}
}

// BulkCreateUsers godoc
// @Summary Create many users at once
// @Description Creates each entry independently and reports per-item results; partial success returns 207
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param users body []domain.CreateUserRequest true "Users to create"
// @Success 201 {object} domain.BulkResult
// @Success 207 {object} domain.BulkResult
// @Failure 400 {object} map[string]string
// @Router /admin/users/bulk [post]
func BulkCreateUsers(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var reqs []domain.CreateUserRequest
		if err := c.Bind(&reqs); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if len(reqs) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "At least one user is required."})
		}

		var result domain.BulkResult
		var valid []domain.CreateUserRequest
		for i := range reqs {
			if err := c.Validate(&reqs[i]); err != nil {
				result.Errors = append(result.Errors, domain.BulkItemResult{ID: reqs[i].ID, Message: err.Error()})
				continue
			}
			valid = append(valid, reqs[i])
		}

		stored := storage.BulkCreateUsers(c.Request().Context(), valid, hashPassword)
		result.Success = stored.Success
		result.Errors = append(result.Errors, stored.Errors...)

		status := http.StatusCreated
		if len(result.Errors) > 0 {
			status = http.StatusMultiStatus
		}
		return c.JSON(status, result)
	}
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Success 200 {array} domain.User
// @Router /admin/users [get]
func ListUsers(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := storage.ListUsers(c.Request().Context(), c.QueryParam("role"))
		if err != nil {
			return writeError(c, err)
		}
		for i := range users {
			users[i].PasswordHash = ""
		}
		return c.JSON(http.StatusOK, map[string]any{"users": users})
	}
}

// GetUser godoc
// @Summary Get one user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User id"
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /admin/users/{userId} [get]
func GetUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := storage.GetUserByID(c.Request().Context(), c.Param("userId"))
		if err != nil {
			return writeError(c, err)
		}
		user.PasswordHash = ""
		return c.JSON(http.StatusOK, user)
	}
}

// UpdateUser godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User id"
// @Param user body domain.UpdateUserRequest true "Fields to update"
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /admin/users/{userId} [patch]
func UpdateUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}

		user, err := storage.UpdateUser(c.Request().Context(), c.Param("userId"), &req)
		if err != nil {
			return writeError(c, err)
		}
		user.PasswordHash = ""
		return c.JSON(http.StatusOK, user)
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users/{userId} [delete]
func DeleteUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := storage.DeleteUser(c.Request().Context(), c.Param("userId")); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully."})
	}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Create the course with its prerequisites, lecture sessions and sections
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body domain.CreateCourseRequest true "Course details"
// @Success 201 {object} domain.Course
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/courses [post]
func CreateCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.CreateCourseRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}

		course, err := storage.CreateCourse(c.Request().Context(), &req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, course)
	}
}

// ListCourses godoc
// @Summary List all courses
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Course
// @Router /admin/courses [get]
func ListCourses(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		courses, err := storage.ListCourses(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"courses": courses})
	}
}

// GetCourse godoc
// @Summary Get one course
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param courseCode path string true "Course code"
// @Success 200 {object} domain.Course
// @Failure 404 {object} map[string]string
// @Router /admin/courses/{courseCode} [get]
func GetCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		course, err := storage.GetCourse(c.Request().Context(), c.Param("courseCode"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, course)
	}
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseCode path string true "Course code"
// @Param course body domain.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} domain.Course
// @Failure 404 {object} map[string]string
// @Router /admin/courses/{courseCode} [patch]
func UpdateCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.UpdateCourseRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}

		course, err := storage.UpdateCourse(c.Request().Context(), c.Param("courseCode"), &req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, course)
	}
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Registrations, sections, sessions, grades and exams of the course are removed as well
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param courseCode path string true "Course code"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/courses/{courseCode} [delete]
func DeleteCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := storage.DeleteCourse(c.Request().Context(), c.Param("courseCode")); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Course deleted successfully."})
	}
}

// AddSection godoc
// @Summary Add a section to a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseCode path string true "Course code"
// @Param section body domain.SectionInput true "Section details"
// @Success 201 {object} domain.Section
// @Failure 400 {object} map[string]string
// @Router /admin/courses/{courseCode}/sections [post]
func AddSection(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.SectionInput
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}

		section, err := storage.AddSection(c.Request().Context(), c.Param("courseCode"), &req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, section)
	}
}

// UpdateSection godoc
// @Summary Update a section
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseCode path string true "Course code"
// @Param sectionId path string true "Section id"
// @Param section body domain.UpdateSectionRequest true "Fields to update"
// @Success 200 {object} domain.Section
// @Failure 404 {object} map[string]string
// @Router /admin/courses/{courseCode}/sections/{sectionId} [patch]
func UpdateSection(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.UpdateSectionRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}

		section, err := storage.UpdateSection(c.Request().Context(), c.Param("courseCode"), c.Param("sectionId"), &req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, section)
	}
}

// DeleteSection godoc
// @Summary Delete a section
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param courseCode path string true "Course code"
// @Param sectionId path string true "Section id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/courses/{courseCode}/sections/{sectionId} [delete]
func DeleteSection(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := storage.DeleteSection(c.Request().Context(), c.Param("courseCode"), c.Param("sectionId")); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Section deleted successfully."})
	}
}

// CreateExam godoc
// @Summary Create an exam
// @Description Creates the exam and seats every registered student across the given rooms
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam body domain.CreateExamRequest true "Exam details"
// @Success 201 {object} domain.Exam
// @Failure 400 {object} map[string]string
// @Router /admin/exams [post]
func CreateExam(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.CreateExamRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}

		exam, err := storage.CreateExam(c.Request().Context(), &req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, exam)
	}
}

// ListExams godoc
// @Summary List exams
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Exam
// @Router /admin/exams [get]
func ListExams(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		exams, err := storage.ListExams(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"exams": exams})
	}
}

// GetExam godoc
// @Summary Get one exam with its room layout
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam id"
// @Success 200 {object} domain.Exam
// @Failure 404 {object} map[string]string
// @Router /admin/exams/{examId} [get]
func GetExam(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		exam, err := storage.GetExam(c.Request().Context(), c.Param("examId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, exam)
	}
}

// UpdateExam godoc
// @Summary Update an exam
// @Description Changing rooms, capacity or the course redistributes every seat
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam id"
// @Param exam body domain.UpdateExamRequest true "Fields to update"
// @Success 200 {object} domain.Exam
// @Failure 404 {object} map[string]string
// @Router /admin/exams/{examId} [patch]
func UpdateExam(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.UpdateExamRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}

		exam, err := storage.UpdateExam(c.Request().Context(), c.Param("examId"), &req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, exam)
	}
}

// DeleteExam godoc
// @Summary Delete an exam
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/exams/{examId} [delete]
func DeleteExam(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := storage.DeleteExam(c.Request().Context(), c.Param("examId")); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Exam deleted successfully."})
	}
}
