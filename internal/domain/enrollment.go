package domain

// RegisterCoursesRequest accepts either a single code or a list; the
// handler normalizes to a slice before validation.
type RegisterCoursesRequest struct {
	CourseCodes []string `json:"courseCodes" validate:"required,min=1,dive,required"`
}

type SectionRegistration struct {
	CourseCode string `json:"courseCode" validate:"required"`
	SectionID  string `json:"sectionId" validate:"required"`
}

type RegisterSectionsRequest struct {
	Registrations []SectionRegistration `json:"registrations" validate:"required,min=1,dive"`
}

type DropCourseRequest struct {
	CourseCode string `json:"courseCode" validate:"required"`
}

type DropSectionRequest struct {
	CourseCode string `json:"courseCode" validate:"required"`
	SectionID  string `json:"sectionId" validate:"required"`
}

// RetakeDetail describes a course being retaken after prior failures.
type RetakeDetail struct {
	CourseCode        string           `json:"courseCode"`
	PreviousAttempts  []PreviousResult `json:"previousAttempts"`
	NextAttemptNumber int              `json:"nextAttemptNumber"`
}

type PreviousResult struct {
	Term          string `json:"term"`
	Grade         string `json:"grade"`
	AttemptNumber int    `json:"attemptNumber"`
}

type RegisterCoursesResult struct {
	RegisteredCourses []string       `json:"registeredCourses"`
	Term              string         `json:"term"`
	TotalCreditHours  int            `json:"totalCreditHours"`
	RetakeDetails     []RetakeDetail `json:"retakeDetails,omitempty"`
}

type PrerequisiteError struct {
	CourseCode           string   `json:"courseCode"`
	MissingPrerequisites []string `json:"missingPrerequisites"`
}

type SectionRef struct {
	CourseCode string `json:"courseCode"`
	SectionID  string `json:"sectionId"`
}

type SectionConflict struct {
	CourseCode string `json:"courseCode"`
	SectionID  string `json:"sectionId"`
	Message    string `json:"message"`
}

// SectionValidation accumulates every failure across a section batch; the
// batch commits only when all five lists stay empty.
type SectionValidation struct {
	MissingCourses       []string          `json:"missingCourses"`
	NotRegisteredCourses []string          `json:"notRegisteredCourses"`
	MissingSections      []SectionRef      `json:"missingSections"`
	FullSections         []SectionRef      `json:"fullSections"`
	TimeConflicts        []SectionConflict `json:"timeConflicts"`
}

func (v SectionValidation) HasErrors() bool {
	return len(v.MissingCourses) > 0 ||
		len(v.NotRegisteredCourses) > 0 ||
		len(v.MissingSections) > 0 ||
		len(v.FullSections) > 0 ||
		len(v.TimeConflicts) > 0
}

// TimetableEntry is one meeting in a user's weekly timetable, grouped by
// day in the response.
type TimetableEntry struct {
	Type              string `json:"type"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	Room              string `json:"room"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	SectionID         string `json:"sectionId,omitempty"`
	DoctorName        string `json:"doctorName,omitempty"`
	TeachingAssistant string `json:"teachingAssistant,omitempty"`
}

type Timetable map[string][]TimetableEntry
