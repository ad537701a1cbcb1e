package domain

import "time"

type Grade struct {
	StudentID     string    `db:"student_id" json:"studentId"`
	CourseCode    string    `db:"course_code" json:"courseCode"`
	CourseName    string    `db:"course_name" json:"courseName"`
	DoctorID      string    `db:"doctor_id" json:"doctorId"`
	Score         float64   `db:"score" json:"score"`
	Letter        string    `db:"letter" json:"grade"`
	Term          string    `db:"term" json:"term"`
	CreditHours   int       `db:"credit_hours" json:"creditHours"`
	IsRetake      bool      `db:"is_retake" json:"isRetake"`
	AttemptNumber int       `db:"attempt_number" json:"attemptNumber"`
	GradedAt      time.Time `db:"graded_at" json:"dateGraded"`
}

type AddGradeRequest struct {
	StudentID  string  `json:"studentId" validate:"required"`
	CourseCode string  `json:"courseCode" validate:"required"`
	Score      float64 `json:"score" validate:"min=0,max=100"`
}

type UpdateGradeRequest struct {
	Score float64 `json:"score" validate:"min=0,max=100"`
}
