package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/gpa"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

// AddGrade records a score for a currently registered course. A passing
// grade also removes the student from the course and its sections. The
// grade row, the roster change and the performance recompute commit
// together.
func (s *Storage) AddGrade(ctx context.Context, doctorID string, req *domain.AddGradeRequest) (*domain.Grade, error) {
	var grade *domain.Grade
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var courseDoctor string
		var creditHours int
		err := tx.QueryRow(ctx,
			`SELECT doctor_id, credit_hours FROM courses WHERE code = $1;`, req.CourseCode).
			Scan(&courseDoctor, &creditHours)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound(fmt.Sprintf("Course not found: %s", req.CourseCode))
		}
		if err != nil {
			return err
		}
		if courseDoctor != doctorID {
			return utils.Forbidden("You are not assigned to this course.")
		}

		var term string
		err = tx.QueryRow(ctx, `
            SELECT term FROM course_registrations WHERE student_id = $1 AND course_code = $2;
        `, req.StudentID, req.CourseCode).Scan(&term)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.BadRequest("Student is not registered for this course.")
		}
		if err != nil {
			return err
		}

		var attempts int
		err = tx.QueryRow(ctx, `
            SELECT COALESCE(MAX(attempt_number), 0) FROM grades WHERE student_id = $1 AND course_code = $2;
        `, req.StudentID, req.CourseCode).Scan(&attempts)
		if err != nil {
			return err
		}

		letter := gpa.Letter(req.Score)
		g := domain.Grade{
			StudentID:     req.StudentID,
			CourseCode:    req.CourseCode,
			DoctorID:      doctorID,
			Score:         req.Score,
			Letter:        letter,
			Term:          term,
			CreditHours:   creditHours,
			IsRetake:      attempts > 0,
			AttemptNumber: attempts + 1,
			GradedAt:      time.Now(),
		}
		_, err = tx.Exec(ctx, `
            INSERT INTO grades (student_id, course_code, term, score, letter, credit_hours,
                                doctor_id, is_retake, attempt_number, graded_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
        `, g.StudentID, g.CourseCode, g.Term, g.Score, g.Letter, g.CreditHours,
			g.DoctorID, g.IsRetake, g.AttemptNumber, g.GradedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return utils.Conflict("A grade for this course and term already exists.")
			}
			return err
		}

		if gpa.IsPassing(letter) {
			if err := deregisterCourse(ctx, tx, req.StudentID, req.CourseCode); err != nil {
				return err
			}
		}

		grade = &g
		return recomputePerformance(ctx, tx, req.StudentID)
	})
	return grade, err
}

func deregisterCourse(ctx context.Context, tx pgx.Tx, studentID, courseCode string) error {
	if _, err := tx.Exec(ctx, `
        DELETE FROM course_registrations WHERE student_id = $1 AND course_code = $2;
    `, studentID, courseCode); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `
        DELETE FROM section_registrations WHERE student_id = $1 AND course_code = $2;
    `, studentID, courseCode)
	return err
}

// UpdateGrade rescores the most recent attempt. A change from failing to
// passing deregisters the student just like a fresh passing grade.
func (s *Storage) UpdateGrade(ctx context.Context, doctorID, studentID, courseCode string, score float64) (*domain.Grade, error) {
	var grade *domain.Grade
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var courseDoctor string
		err := tx.QueryRow(ctx,
			`SELECT doctor_id FROM courses WHERE code = $1;`, courseCode).Scan(&courseDoctor)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound(fmt.Sprintf("Course not found: %s", courseCode))
		}
		if err != nil {
			return err
		}
		if courseDoctor != doctorID {
			return utils.Forbidden("You are not assigned to this course.")
		}

		letter := gpa.Letter(score)
		var g domain.Grade
		err = tx.QueryRow(ctx, `
            UPDATE grades SET score = $3, letter = $4, graded_at = now()
            WHERE student_id = $1 AND course_code = $2
              AND attempt_number = (SELECT MAX(attempt_number) FROM grades
                                    WHERE student_id = $1 AND course_code = $2)
            RETURNING student_id, course_code, term, score, letter, credit_hours,
                      doctor_id, is_retake, attempt_number, graded_at;
        `, studentID, courseCode, score, letter).Scan(
			&g.StudentID, &g.CourseCode, &g.Term, &g.Score, &g.Letter, &g.CreditHours,
			&g.DoctorID, &g.IsRetake, &g.AttemptNumber, &g.GradedAt,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound("Grade not found.")
		}
		if err != nil {
			return err
		}

		if gpa.IsPassing(letter) {
			if err := deregisterCourse(ctx, tx, studentID, courseCode); err != nil {
				return err
			}
		}

		grade = &g
		return recomputePerformance(ctx, tx, studentID)
	})
	return grade, err
}

func (s *Storage) DeleteGrade(ctx context.Context, doctorID, studentID, courseCode string) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		var courseDoctor string
		err := tx.QueryRow(ctx,
			`SELECT doctor_id FROM courses WHERE code = $1;`, courseCode).Scan(&courseDoctor)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound(fmt.Sprintf("Course not found: %s", courseCode))
		}
		if err != nil {
			return err
		}
		if courseDoctor != doctorID {
			return utils.Forbidden("You are not assigned to this course.")
		}

		tag, err := tx.Exec(ctx, `
            DELETE FROM grades WHERE student_id = $1 AND course_code = $2
              AND attempt_number = (SELECT MAX(attempt_number) FROM grades
                                    WHERE student_id = $1 AND course_code = $2);
        `, studentID, courseCode)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return utils.NotFound("Grade not found.")
		}
		return recomputePerformance(ctx, tx, studentID)
	})
}

func (s *Storage) GetStudentGrades(ctx context.Context, studentID string) ([]domain.Grade, error) {
	const query = `
        SELECT g.student_id, g.course_code, c.name, g.doctor_id, g.score, g.letter,
               g.term, g.credit_hours, g.is_retake, g.attempt_number, g.graded_at
        FROM grades g JOIN courses c ON c.code = g.course_code
        WHERE g.student_id = $1
        ORDER BY g.graded_at DESC;
    `
	rows, err := s.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []domain.Grade
	for rows.Next() {
		var g domain.Grade
		if err := rows.Scan(&g.StudentID, &g.CourseCode, &g.CourseName, &g.DoctorID, &g.Score,
			&g.Letter, &g.Term, &g.CreditHours, &g.IsRetake, &g.AttemptNumber, &g.GradedAt); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// GetPerformance returns the stored performance row together with the
// passed/failed course breakdown.
func (s *Storage) GetPerformance(ctx context.Context, studentID string) (*domain.PerformanceView, error) {
	var view domain.PerformanceView
	err := s.pool.QueryRow(ctx, `
        SELECT student_id, cgpa, term_gpa, total_credit_hours, remaining_credit_hours,
               academic_level, max_credit_hours, term_status
        FROM student_performance WHERE student_id = $1;
    `, studentID).Scan(
		&view.StudentID, &view.CGPA, &view.TermGPA, &view.TotalCreditHours,
		&view.RemainingCreditHours, &view.AcademicLevel, &view.MaxAllowedCreditHours,
		&view.TermStatus,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	const query = `
        SELECT g.course_code, c.name, g.credit_hours, g.score, g.letter, g.term, g.attempt_number
        FROM grades g JOIN courses c ON c.code = g.course_code
        WHERE g.student_id = $1
        ORDER BY g.course_code, g.attempt_number;
    `
	rows, err := s.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.CourseResult
		if err := rows.Scan(&r.Code, &r.Name, &r.CreditHours, &r.Score, &r.Grade, &r.Term, &r.AttemptNumber); err != nil {
			return nil, err
		}
		if gpa.IsPassing(r.Grade) {
			view.PassedCourses = append(view.PassedCourses, r)
		} else {
			view.FailedCourses = append(view.FailedCourses, r)
		}
	}
	return &view, rows.Err()
}

// recomputePerformance derives CGPA, term GPA, completed hours, remaining
// hours, academic level and the credit-hour cap from the grades table in
// one pass. Running it twice over the same grades yields identical values.
func recomputePerformance(ctx context.Context, tx pgx.Tx, studentID string) error {
	rows, err := tx.Query(ctx, `
        SELECT course_code, letter, credit_hours, term, attempt_number
        FROM grades WHERE student_id = $1 ORDER BY course_code, attempt_number;
    `, studentID)
	if err != nil {
		return err
	}

	var all []domain.Grade
	for rows.Next() {
		var g domain.Grade
		if err := rows.Scan(&g.CourseCode, &g.Letter, &g.CreditHours, &g.Term, &g.AttemptNumber); err != nil {
			rows.Close()
			return err
		}
		all = append(all, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// Latest attempt per course is the one that counts.
	latest := map[string]domain.Grade{}
	for _, g := range all {
		if have, ok := latest[g.CourseCode]; !ok || g.AttemptNumber > have.AttemptNumber {
			latest[g.CourseCode] = g
		}
	}

	var cumulative, termGrades []gpa.CourseGrade
	term := utils.TermFor(time.Now())
	for _, g := range latest {
		cg := gpa.CourseGrade{Letter: g.Letter, CreditHours: g.CreditHours}
		cumulative = append(cumulative, cg)
		if g.Term == term {
			termGrades = append(termGrades, cg)
		}
	}

	cgpa := gpa.GPA(cumulative)
	termGPA := gpa.GPA(termGrades)
	completed := gpa.CompletedHours(cumulative)

	_, err = tx.Exec(ctx, `
        UPDATE student_performance SET
            cgpa = $2,
            term_gpa = $3,
            total_credit_hours = $4,
            remaining_credit_hours = $5,
            academic_level = $6,
            max_credit_hours = $7
        WHERE student_id = $1;
    `, studentID, cgpa, termGPA, completed, gpa.TotalProgramHours-completed,
		gpa.AcademicLevel(completed), gpa.MaxCreditHours(cgpa))
	return err
}
