package domain

import "time"

// Roles known to the system.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RoleStudent = "student"
	RoleTA      = "ta"
)

type User struct {
	ID              string     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Email           string     `db:"email" json:"email"`
	PasswordHash    string     `db:"password_hash" json:"-"`
	PhoneNumber     string     `db:"phone_number" json:"phone_number"`
	Role            string     `db:"role" json:"role"`
	DateOfBirth     *string    `db:"date_of_birth" json:"date_of_birth"`
	Gender          *string    `db:"gender" json:"gender"`
	Address         *string    `db:"address" json:"address"`
	Department      *string    `db:"department" json:"department"`
	AcademicLevel   *string    `db:"academic_level" json:"academic_level"`
	Status          *string    `db:"status" json:"status"`
	AcademicAdvisor *string    `db:"academic_advisor" json:"academic_advisor"`
	ProfilePicture  string     `db:"profile_picture" json:"profile_picture"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	LastLogin       *time.Time `db:"last_login" json:"last_login"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Performance holds the derived academic standing of a student. All four
// derived values (CGPA, level, max hours, remaining hours) are recomputed
// together from the grade records whenever a grade changes.
type Performance struct {
	StudentID             string  `db:"student_id" json:"-"`
	CGPA                  float64 `db:"cgpa" json:"cgpa"`
	TermGPA               float64 `db:"term_gpa" json:"termGpa"`
	TotalCreditHours      int     `db:"total_credit_hours" json:"totalCreditHoursCompleted"`
	RemainingCreditHours  int     `db:"remaining_credit_hours" json:"remainingCreditHours"`
	AcademicLevel         string  `db:"academic_level" json:"academicLevel"`
	MaxAllowedCreditHours int     `db:"max_credit_hours" json:"maxAllowedCreditHours"`
	TermStatus            string  `db:"term_status" json:"termStatus"`
}

// CourseResult is one graded attempt as it appears in a transcript view.
type CourseResult struct {
	Code          string  `db:"course_code" json:"code"`
	Name          string  `db:"course_name" json:"name"`
	CreditHours   int     `db:"credit_hours" json:"creditHours"`
	Score         float64 `db:"score" json:"score"`
	Grade         string  `db:"letter" json:"grade"`
	Term          string  `db:"term" json:"term"`
	AttemptNumber int     `db:"attempt_number" json:"attemptNumber"`
}

type PerformanceView struct {
	Performance
	PassedCourses []CourseResult `json:"passedCourses"`
	FailedCourses []CourseResult `json:"failedCourses"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type CreateUserRequest struct {
	ID              string  `json:"id" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	PhoneNumber     string  `json:"phoneNumber" validate:"required"`
	Role            string  `json:"role" validate:"required,oneof=admin doctor student ta"`
	DateOfBirth     *string `json:"dateOfBirth"`
	Gender          *string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Address         *string `json:"address"`
	Department      *string `json:"department"`
	AcademicLevel   *string `json:"academicLevel"`
	Status          *string `json:"status"`
	AcademicAdvisor *string `json:"academicAdvisor"`
	ProfilePicture  string  `json:"profilePicture"`
}

type UpdateUserRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	PhoneNumber     *string `json:"phoneNumber"`
	Address         *string `json:"address"`
	Department      *string `json:"department"`
	AcademicLevel   *string `json:"academicLevel"`
	Status          *string `json:"status"`
	AcademicAdvisor *string `json:"academicAdvisor"`
}

// BulkItemResult reports the outcome for one entry of a bulk create.
type BulkItemResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type BulkResult struct {
	Success []BulkItemResult `json:"success"`
	Errors  []BulkItemResult `json:"errors"`
}
