package domain

import "time"

// Session kinds.
const (
	KindLecture = "Lecture"
	KindSection = "Section"
)

// Session is a single weekly meeting of a lecture or section. Times are
// 12-hour clock strings ("03:30 PM"); sessions are immutable once created
// and compared only by day + interval overlap.
type Session struct {
	ID        int     `db:"id" json:"-"`
	Day       string  `db:"day" json:"day"`
	StartTime string  `db:"start_time" json:"startTime"`
	EndTime   string  `db:"end_time" json:"endTime"`
	Room      string  `db:"room" json:"room"`
	Kind      string  `db:"kind" json:"type"`
	SectionID *string `db:"section_id" json:"-"`
}

type Section struct {
	CourseCode string    `db:"course_code" json:"courseCode"`
	SectionID  string    `db:"section_id" json:"sectionId"`
	TAID       *string   `db:"ta_id" json:"taId"`
	Capacity   int       `db:"capacity" json:"capacity"`
	Registered int       `db:"registered" json:"registeredStudents"`
	Sessions   []Session `json:"sessions"`
}

// IsFull is derived from the authoritative roster count, never stored.
func (s Section) IsFull() bool { return s.Registered >= s.Capacity }

type Course struct {
	Code            string    `db:"code" json:"code"`
	Name            string    `db:"name" json:"name"`
	DoctorID        string    `db:"doctor_id" json:"doctorId"`
	CreditHours     int       `db:"credit_hours" json:"creditHours"`
	Semester        string    `db:"semester" json:"semester"`
	Department      string    `db:"department" json:"department"`
	Capacity        int       `db:"capacity" json:"capacity"`
	Registered      int       `db:"registered" json:"registeredStudents"`
	StartDate       time.Time `db:"start_date" json:"startDate"`
	EndDate         time.Time `db:"end_date" json:"endDate"`
	IsActive        bool      `db:"is_active" json:"isActive"`
	Prerequisites   []string  `json:"prerequisites"`
	LectureSessions []Session `json:"lectureSessions"`
	Sections        []Section `json:"sections"`
}

// Composite types for API responses

type SectionWithStaff struct {
	Section
	TeachingAssistant string `json:"teachingAssistant"`
}

// AvailableCourse is a catalog entry filtered for one student.
type AvailableCourse struct {
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	CreditHours     int                `json:"creditHours"`
	Prerequisites   []string           `json:"prerequisites"`
	DoctorName      string             `json:"doctorName"`
	LectureSessions []Session          `json:"lectureSessions"`
	Sections        []SectionWithStaff `json:"sections"`
	IsFailedCourse  bool               `json:"isFailedCourse"`
	IsRegistered    bool               `json:"isRegistered"`
}

type SessionInput struct {
	Day       string `json:"day" validate:"required,oneof=Saturday Sunday Monday Tuesday Wednesday Thursday Friday"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Room      string `json:"room" validate:"required"`
}

type SectionInput struct {
	SectionID string         `json:"sectionId" validate:"required"`
	TAID      *string        `json:"taId"`
	Capacity  int            `json:"capacity" validate:"required,min=1"`
	Sessions  []SessionInput `json:"sessions" validate:"dive"`
}

type CreateCourseRequest struct {
	Code            string         `json:"code" validate:"required"`
	Name            string         `json:"name" validate:"required"`
	DoctorID        string         `json:"doctorId" validate:"required"`
	CreditHours     int            `json:"creditHours" validate:"required,min=1"`
	Semester        string         `json:"semester" validate:"omitempty,oneof=Fall Spring Summer"`
	Department      string         `json:"department"`
	Capacity        int            `json:"capacity" validate:"required,min=1"`
	StartDate       *time.Time     `json:"startDate"`
	EndDate         *time.Time     `json:"endDate"`
	Prerequisites   []string       `json:"prerequisites"`
	LectureSessions []SessionInput `json:"lectureSessions" validate:"dive"`
	Sections        []SectionInput `json:"sections" validate:"dive"`
}

type UpdateCourseRequest struct {
	Name            *string        `json:"name"`
	DoctorID        *string        `json:"doctorId"`
	CreditHours     *int           `json:"creditHours" validate:"omitempty,min=1"`
	Semester        *string        `json:"semester" validate:"omitempty,oneof=Fall Spring Summer"`
	Department      *string        `json:"department"`
	Capacity        *int           `json:"capacity" validate:"omitempty,min=1"`
	Prerequisites   []string       `json:"prerequisites"`
	LectureSessions []SessionInput `json:"lectureSessions" validate:"omitempty,dive"`
}

type UpdateSectionRequest struct {
	NewSectionID *string        `json:"newSectionId"`
	TAID         *string        `json:"taId"`
	Capacity     *int           `json:"capacity" validate:"omitempty,min=1"`
	Sessions     []SessionInput `json:"sessions" validate:"omitempty,dive"`
}
