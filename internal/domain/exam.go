package domain

import "time"

type Exam struct {
	ExamID       string     `db:"exam_id" json:"examId"`
	CourseCode   string     `db:"course_code" json:"courseCode"`
	CourseName   string     `db:"course_name" json:"courseName"`
	ExamDate     string     `db:"exam_date" json:"examDate"`
	StartTime    string     `db:"start_time" json:"startTime"`
	EndTime      string     `db:"end_time" json:"endTime"`
	RoomCapacity int        `db:"room_capacity" json:"roomCapacity"`
	Semester     string     `db:"semester" json:"semester"`
	AcademicYear string     `db:"academic_year" json:"academicYear"`
	ExamType     string     `db:"exam_type" json:"examType"`
	Department   string     `db:"department" json:"department"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	Rooms        []ExamRoom `json:"rooms"`
}

type ExamRoom struct {
	RoomNumber string     `db:"room_number" json:"roomNumber"`
	Students   []ExamSeat `json:"students"`
}

type ExamSeat struct {
	StudentID string `db:"student_id" json:"studentId"`
	Name      string `db:"name" json:"name"`
}

type CreateExamRequest struct {
	ExamID       string   `json:"examId" validate:"required"`
	CourseCode   string   `json:"courseCode" validate:"required"`
	ExamDate     string   `json:"examDate" validate:"required"`
	StartTime    string   `json:"startTime" validate:"required"`
	EndTime      string   `json:"endTime" validate:"required"`
	RoomNumbers  []string `json:"roomNumbers" validate:"required,min=1"`
	RoomCapacity int      `json:"roomCapacity"`
	Semester     string   `json:"semester" validate:"required"`
	AcademicYear string   `json:"academicYear"`
	ExamType     string   `json:"examType" validate:"omitempty,oneof=Midterm Final"`
	Department   string   `json:"department"`
}

type UpdateExamRequest struct {
	CourseCode   *string  `json:"courseCode"`
	ExamDate     *string  `json:"examDate"`
	StartTime    *string  `json:"startTime"`
	EndTime      *string  `json:"endTime"`
	RoomNumbers  []string `json:"roomNumbers"`
	RoomCapacity *int     `json:"roomCapacity" validate:"omitempty,min=1"`
	Semester     *string  `json:"semester"`
	ExamType     *string  `json:"examType" validate:"omitempty,oneof=Midterm Final"`
}

// StudentExam is one exam as presented in a student's own schedule.
type StudentExam struct {
	ExamID      string `json:"examId"`
	CourseCode  string `json:"courseCode"`
	CourseName  string `json:"courseName"`
	ExamType    string `json:"examType"`
	Date        string `json:"date"`
	Day         string `json:"day"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	HasConflict bool   `json:"hasConflict"`
}
