// Package gpa holds the grading scale and GPA arithmetic. Everything here
// is a pure function of the grade records passed in, so recomputing twice
// from the same records yields identical results.
package gpa

import "math"

// Degree requirement in credit hours.
const TotalProgramHours = 140

var gradePoints = map[string]float64{
	"A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0,
	"F": 0.0,
}

// Letter maps a 0-100 score to its letter grade.
func Letter(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 85:
		return "A-"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "B-"
	case score >= 65:
		return "C+"
	case score >= 60:
		return "C"
	case score >= 55:
		return "C-"
	case score >= 50:
		return "D+"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

// Points returns the grade-point value of a letter grade; unknown letters
// count as zero.
func Points(letter string) float64 {
	return gradePoints[letter]
}

func IsPassing(letter string) bool {
	return letter != "F" && letter != ""
}

// CourseGrade is the slice of a grade record the GPA math needs.
type CourseGrade struct {
	Letter      string
	CreditHours int
}

// GPA computes Σ(points × hours) / Σ(hours) over the non-F grades given,
// or 0 when no credits qualify. Both term GPA (one term's grades) and
// CGPA (all passed grades) use this formula.
func GPA(grades []CourseGrade) float64 {
	var points float64
	var credits int
	for _, g := range grades {
		if !IsPassing(g.Letter) {
			continue
		}
		points += Points(g.Letter) * float64(g.CreditHours)
		credits += g.CreditHours
	}
	if credits == 0 {
		return 0
	}
	return Round2(points / float64(credits))
}

// CompletedHours sums the credit hours of the passing grades given.
func CompletedHours(grades []CourseGrade) int {
	var credits int
	for _, g := range grades {
		if IsPassing(g.Letter) {
			credits += g.CreditHours
		}
	}
	if credits > TotalProgramHours {
		credits = TotalProgramHours
	}
	return credits
}

// AcademicLevel is a step function of cumulative completed credit hours.
func AcademicLevel(completedHours int) string {
	switch {
	case completedHours >= 105:
		return "Fourth"
	case completedHours >= 70:
		return "Third"
	case completedHours >= 35:
		return "Second"
	default:
		return "First"
	}
}

// MaxCreditHours is the per-term registration ceiling as a step function
// of CGPA.
func MaxCreditHours(cgpa float64) int {
	switch {
	case cgpa < 2.0:
		return 12
	case cgpa >= 3.3:
		return 21
	default:
		return 18
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
