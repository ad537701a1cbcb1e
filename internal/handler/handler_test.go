package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

func TestWriteErrorRequestError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := writeError(c, &utils.RequestError{
		Status:  http.StatusBadRequest,
		Message: "Some courses are already full.",
		Fields:  map[string]any{"fullCourses": []string{"CS101"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Some courses are already full.", body["message"])
	assert.Equal(t, []any{"CS101"}, body["fullCourses"])
}

func TestWriteErrorNotFound(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, writeError(c, utils.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteErrorFallsBackTo500(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, writeError(c, errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRegisterCoursesBodyNormalization(t *testing.T) {
	assert.Equal(t, []string{"CS101"}, registerCoursesBody{CourseCode: "CS101"}.codes())
	assert.Equal(t, []string{"CS101", "CS102"},
		registerCoursesBody{CourseCodes: []string{"CS101", "CS102"}}.codes())
	// The list wins when both shapes are present.
	assert.Equal(t, []string{"CS102"},
		registerCoursesBody{CourseCode: "CS101", CourseCodes: []string{"CS102"}}.codes())
	assert.Nil(t, registerCoursesBody{}.codes())
}

func TestRegisterSectionsBodyNormalization(t *testing.T) {
	single := registerSectionsBody{CourseCode: "CS101", SectionID: "S1"}
	assert.Equal(t, []domain.SectionRegistration{{CourseCode: "CS101", SectionID: "S1"}}, single.regs())

	batch := registerSectionsBody{Registrations: []domain.SectionRegistration{
		{CourseCode: "CS101", SectionID: "S1"},
		{CourseCode: "CS102", SectionID: "S2"},
	}}
	assert.Len(t, batch.regs(), 2)

	assert.Nil(t, registerSectionsBody{CourseCode: "CS101"}.regs())
}
