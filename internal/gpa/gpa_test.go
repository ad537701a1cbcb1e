package gpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetter(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"}, {92, "A"}, {90, "A"},
		{89.9, "A-"}, {85, "A-"},
		{84, "B+"}, {80, "B+"},
		{79, "B"}, {75, "B"},
		{74, "B-"}, {70, "B-"},
		{69, "C+"}, {65, "C+"},
		{64, "C"}, {60, "C"},
		{59, "C-"}, {55, "C-"},
		{54, "D+"}, {50, "D+"},
		{49, "D"}, {45, "D"},
		{44, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Letter(tt.score), "score %v", tt.score)
	}
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 4.0, Points("A"))
	assert.Equal(t, 3.7, Points("A-"))
	assert.Equal(t, 1.0, Points("D"))
	assert.Equal(t, 0.0, Points("F"))
	assert.Equal(t, 0.0, Points("X"))
}

func TestGPA(t *testing.T) {
	grades := []CourseGrade{
		{Letter: "A", CreditHours: 3},  // 12.0
		{Letter: "B", CreditHours: 4},  // 12.0
		{Letter: "C+", CreditHours: 2}, // 4.6
	}
	// 28.6 / 9
	assert.InDelta(t, 3.18, GPA(grades), 0.001)

	// Failing grades carry no weight in either direction.
	withF := append(grades, CourseGrade{Letter: "F", CreditHours: 3})
	assert.Equal(t, GPA(grades), GPA(withF))

	assert.Equal(t, 0.0, GPA(nil))
	assert.Equal(t, 0.0, GPA([]CourseGrade{{Letter: "F", CreditHours: 3}}))
}

func TestGPAExcludesFailedCreditHours(t *testing.T) {
	// An F must not inflate the denominator: one A and one F over a term
	// is a 4.0, not a 2.0.
	term := []CourseGrade{
		{Letter: "A", CreditHours: 3},
		{Letter: "F", CreditHours: 3},
	}
	assert.Equal(t, 4.0, GPA(term))
}

func TestGPAIsIdempotent(t *testing.T) {
	grades := []CourseGrade{
		{Letter: "A-", CreditHours: 3},
		{Letter: "B+", CreditHours: 3},
		{Letter: "D", CreditHours: 2},
	}
	first := GPA(grades)
	second := GPA(grades)
	assert.Equal(t, first, second)
}

func TestAcademicLevel(t *testing.T) {
	assert.Equal(t, "First", AcademicLevel(0))
	assert.Equal(t, "First", AcademicLevel(34))
	assert.Equal(t, "Second", AcademicLevel(35))
	assert.Equal(t, "Second", AcademicLevel(69))
	assert.Equal(t, "Third", AcademicLevel(70))
	assert.Equal(t, "Third", AcademicLevel(104))
	assert.Equal(t, "Fourth", AcademicLevel(105))
	assert.Equal(t, "Fourth", AcademicLevel(140))
}

func TestMaxCreditHours(t *testing.T) {
	assert.Equal(t, 12, MaxCreditHours(0))
	assert.Equal(t, 12, MaxCreditHours(1.99))
	assert.Equal(t, 18, MaxCreditHours(2.0))
	assert.Equal(t, 18, MaxCreditHours(3.29))
	assert.Equal(t, 21, MaxCreditHours(3.3))
	assert.Equal(t, 21, MaxCreditHours(4.0))
}

func TestCompletedHoursCapsAtProgramTotal(t *testing.T) {
	var grades []CourseGrade
	for i := 0; i < 50; i++ {
		grades = append(grades, CourseGrade{Letter: "A", CreditHours: 3})
	}
	assert.Equal(t, TotalProgramHours, CompletedHours(grades))
}
