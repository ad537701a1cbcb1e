package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/metrics"
	"github.com/marwa-agamy/collegeSystem-app/internal/middleware"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

func SetupStudentRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/student", authMiddleware, middleware.RequireStudent(), middleware.SelfScope("userId"))

	g.POST("/register-course/:userId", RegisterCourses(storage))
	g.POST("/register-section/:userId", RegisterSections(storage))
	g.POST("/drop-course/:userId", DropCourse(storage))
	g.POST("/drop-section/:userId", DropSection(storage))
	g.GET("/available-courses/:userId", AvailableCourses(storage))
	g.GET("/course-sections/:courseCode/:userId", CourseSections(storage))
	g.GET("/time-table/:userId", StudentTimetable(storage))
	g.GET("/exams/:userId", StudentExams(storage))
	g.GET("/fees/:userId", StudentFees(storage))
	g.GET("/announcements/:userId", StudentAnnouncements(storage))

	e.GET("/api/time-table", MyTimetable(storage), authMiddleware)
}

// registerCoursesBody accepts the single-course and the batch shape.
type registerCoursesBody struct {
	CourseCode  string   `json:"courseCode"`
	CourseCodes []string `json:"courseCodes"`
}

func (b registerCoursesBody) codes() []string {
	if len(b.CourseCodes) > 0 {
		return b.CourseCodes
	}
	if b.CourseCode != "" {
		return []string{b.CourseCode}
	}
	return nil
}

// RegisterCourses godoc
// @Summary Register for courses
// @Description Register the student for one or more courses in the current term
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Student id"
// @Param request body domain.RegisterCoursesRequest true "Course codes"
// @Success 200 {object} domain.RegisterCoursesResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /student/register-course/{userId} [post]
func RegisterCourses(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body registerCoursesBody
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		codes := body.codes()
		if len(codes) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "At least one course code is required."})
		}

		result, err := storage.RegisterForCourses(c.Request().Context(), c.Param("userId"), codes)
		if err != nil {
			var reqErr *utils.RequestError
			if errors.As(err, &reqErr) && reqErr.Status == http.StatusConflict {
				metrics.RegistrationConflicts.Inc()
			}
			return writeError(c, err)
		}

		metrics.CourseRegistrations.Inc()
		return c.JSON(http.StatusOK, map[string]any{
			"message":           "Courses registered successfully.",
			"registeredCourses": result.RegisteredCourses,
			"term":              result.Term,
			"totalCreditHours":  result.TotalCreditHours,
			"retakeDetails":     result.RetakeDetails,
		})
	}
}

type registerSectionsBody struct {
	CourseCode    string                       `json:"courseCode"`
	SectionID     string                       `json:"sectionId"`
	Registrations []domain.SectionRegistration `json:"registrations"`
}

func (b registerSectionsBody) regs() []domain.SectionRegistration {
	if len(b.Registrations) > 0 {
		return b.Registrations
	}
	if b.CourseCode != "" && b.SectionID != "" {
		return []domain.SectionRegistration{{CourseCode: b.CourseCode, SectionID: b.SectionID}}
	}
	return nil
}

// RegisterSections godoc
// @Summary Register for sections
// @Description Register the student for sections of already registered courses; the whole batch succeeds or fails together
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Student id"
// @Param request body domain.RegisterSectionsRequest true "Section registrations"
// @Success 200 {object} map[string]string
// @Failure 400 {object} domain.SectionValidation
// @Router /student/register-section/{userId} [post]
func RegisterSections(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body registerSectionsBody
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		regs := body.regs()
		if len(regs) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "At least one section registration is required."})
		}

		if _, err := storage.RegisterForSections(c.Request().Context(), c.Param("userId"), regs); err != nil {
			return writeError(c, err)
		}

		if len(regs) == 1 {
			return c.JSON(http.StatusOK, map[string]any{
				"message":    "Section registered successfully.",
				"courseCode": regs[0].CourseCode,
				"sectionId":  regs[0].SectionID,
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"message":            "Sections registered successfully.",
			"registeredSections": regs,
		})
	}
}

// DropCourse godoc
// @Summary Drop a course
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Student id"
// @Param request body domain.DropCourseRequest true "Course to drop"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /student/drop-course/{userId} [post]
func DropCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.DropCourseRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "courseCode is required."})
		}

		if err := storage.DropCourse(c.Request().Context(), c.Param("userId"), req.CourseCode); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Course dropped successfully."})
	}
}

// DropSection godoc
// @Summary Drop a section
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Student id"
// @Param request body domain.DropSectionRequest true "Section to drop"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /student/drop-section/{userId} [post]
func DropSection(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.DropSectionRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "courseCode and sectionId are required."})
		}

		if err := storage.DropSection(c.Request().Context(), c.Param("userId"), req.CourseCode, req.SectionID); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Section dropped successfully."})
	}
}

// AvailableCourses godoc
// @Summary List courses available to the student
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Student id"
// @Success 200 {array} domain.AvailableCourse
// @Router /student/available-courses/{userId} [get]
func AvailableCourses(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		courses, err := storage.AvailableCourses(c.Request().Context(), c.Param("userId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"availableCourses": courses})
	}
}

// CourseSections godoc
// @Summary List sections of a course
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param courseCode path string true "Course code"
// @Param userId path string true "Student id"
// @Success 200 {array} domain.SectionWithStaff
// @Failure 404 {object} map[string]string
// @Router /student/course-sections/{courseCode}/{userId} [get]
func CourseSections(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		sections, err := storage.CourseSectionsWithStaff(c.Request().Context(), c.Param("courseCode"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"sections": sections})
	}
}

// StudentTimetable godoc
// @Summary Weekly timetable for the student
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Student id"
// @Success 200 {object} domain.Timetable
// @Router /student/time-table/{userId} [get]
func StudentTimetable(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := storage.GetUserByID(c.Request().Context(), c.Param("userId"))
		if err != nil {
			return writeError(c, err)
		}
		timetable, err := storage.TimetableFor(c.Request().Context(), user)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"timetable": timetable})
	}
}

// MyTimetable godoc
// @Summary Weekly timetable for the caller
// @Description Students see registered lectures and their sections, doctors their lectures, TAs their sections
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Timetable
// @Router /time-table [get]
func MyTimetable(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c, storage)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized."})
		}
		timetable, err := storage.TimetableFor(c.Request().Context(), user)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"timetable": timetable})
	}
}

// StudentExams godoc
// @Summary List the student's exams
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Student id"
// @Success 200 {array} domain.StudentExam
// @Router /student/exams/{userId} [get]
func StudentExams(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		exams, err := storage.StudentExams(c.Request().Context(), c.Param("userId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"exams": exams})
	}
}

// StudentFees godoc
// @Summary List the student's fees
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Student id"
// @Success 200 {array} domain.StudentFee
// @Router /student/fees/{userId} [get]
func StudentFees(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		fees, err := storage.StudentFees(c.Request().Context(), c.Param("userId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"fees": fees})
	}
}

// StudentAnnouncements godoc
// @Summary Announcement feed for the student
// @Description Admin-wide posts plus announcements of registered courses and sections, newest first
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Student id"
// @Success 200 {array} domain.Announcement
// @Router /student/announcements/{userId} [get]
func StudentAnnouncements(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		feed, err := storage.StudentFeed(c.Request().Context(), c.Param("userId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"announcements": feed})
	}
}
