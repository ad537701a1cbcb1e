package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/schedule"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

// placedSessions loads the student's current timetable through the given
// querier: lectures of every registered course plus the sessions of each
// registered section, ordered by course code so conflict reports are
// deterministic.
func placedSessions(ctx context.Context, q querier, studentID string) ([]schedule.Placed, error) {
	const query = `
        SELECT cs.day, cs.start_time, cs.end_time, cs.room, cs.kind, cs.course_code, COALESCE(cs.section_id, '')
        FROM class_sessions cs
        WHERE (cs.kind = 'Lecture' AND cs.course_code IN
                  (SELECT course_code FROM course_registrations WHERE student_id = $1))
           OR (cs.kind = 'Section' AND (cs.course_code, cs.section_id) IN
                  (SELECT course_code, section_id FROM section_registrations WHERE student_id = $1))
        ORDER BY cs.course_code, cs.kind DESC, cs.id;
    `
	rows, err := q.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var placed []schedule.Placed
	for rows.Next() {
		var p schedule.Placed
		if err := rows.Scan(&p.Day, &p.StartTime, &p.EndTime, &p.Room, &p.Kind, &p.CourseCode, &p.SectionID); err != nil {
			return nil, err
		}
		placed = append(placed, p)
	}
	return placed, rows.Err()
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type candidateCourse struct {
	code        string
	name        string
	creditHours int
	capacity    int
	registered  int
	prereqs     []string
	lectures    []domain.Session
}

// RegisterForCourses runs the whole registration inside one transaction.
// Course rows are locked before the capacity check so two concurrent
// registrations cannot both squeeze into the last seat. Every failure
// carries the offending course codes in the response body.
func (s *Storage) RegisterForCourses(ctx context.Context, studentID string, codes []string) (*domain.RegisterCoursesResult, error) {
	seen := map[string]bool{}
	for _, code := range codes {
		if seen[code] {
			return nil, utils.BadRequest(fmt.Sprintf("Duplicate course in request: %s", code))
		}
		seen[code] = true
	}

	var result *domain.RegisterCoursesResult
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var role string
		err := tx.QueryRow(ctx, `SELECT role FROM users WHERE id = $1;`, studentID).Scan(&role)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound("Student not found.")
		}
		if err != nil {
			return err
		}
		if role != domain.RoleStudent {
			return utils.BadRequest("User is not a student.")
		}

		var maxHours, remainingHours int
		err = tx.QueryRow(ctx, `
            SELECT max_credit_hours, remaining_credit_hours
            FROM student_performance WHERE student_id = $1;
        `, studentID).Scan(&maxHours, &remainingHours)
		if err != nil {
			return err
		}

		passed, failedAttempts, err := gradeHistory(ctx, tx, studentID)
		if err != nil {
			return err
		}

		registered := map[string]bool{}
		currentHours := 0
		rows, err := tx.Query(ctx, `
            SELECT r.course_code, c.credit_hours
            FROM course_registrations r JOIN courses c ON c.code = r.course_code
            WHERE r.student_id = $1;
        `, studentID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var code string
			var hours int
			if err := rows.Scan(&code, &hours); err != nil {
				rows.Close()
				return err
			}
			registered[code] = true
			currentHours += hours
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		// Lock and load every requested course up front; missing codes
		// reject the batch before anything else.
		var missing, alreadyRegistered, alreadyPassed []string
		candidates := make([]candidateCourse, 0, len(codes))
		for _, code := range codes {
			cand, err := lockCourse(ctx, tx, code)
			if errors.Is(err, utils.ErrNotFound) {
				missing = append(missing, code)
				continue
			}
			if err != nil {
				return err
			}
			if registered[code] {
				alreadyRegistered = append(alreadyRegistered, code)
			}
			if passed[code] {
				alreadyPassed = append(alreadyPassed, code)
			}
			candidates = append(candidates, *cand)
		}
		if len(missing) > 0 {
			return &utils.RequestError{
				Status:  http.StatusNotFound,
				Message: "Some courses were not found.",
				Fields:  map[string]any{"missingCourses": missing},
			}
		}
		if len(alreadyRegistered) > 0 {
			return &utils.RequestError{
				Status:  http.StatusBadRequest,
				Message: "You are already registered for some of these courses.",
				Fields:  map[string]any{"alreadyRegisteredCourses": alreadyRegistered},
			}
		}
		if len(alreadyPassed) > 0 {
			return &utils.RequestError{
				Status:  http.StatusBadRequest,
				Message: "You have already passed some of these courses.",
				Fields:  map[string]any{"alreadyPassedCourses": alreadyPassed},
			}
		}

		// Retakes skip the prerequisite check.
		var prereqErrors []domain.PrerequisiteError
		for _, cand := range candidates {
			if len(failedAttempts[cand.code]) > 0 {
				continue
			}
			var missingPrereqs []string
			for _, prereq := range cand.prereqs {
				if !passed[prereq] {
					missingPrereqs = append(missingPrereqs, prereq)
				}
			}
			if len(missingPrereqs) > 0 {
				prereqErrors = append(prereqErrors, domain.PrerequisiteError{
					CourseCode:           cand.code,
					MissingPrerequisites: missingPrereqs,
				})
			}
		}
		if len(prereqErrors) > 0 {
			return &utils.RequestError{
				Status:  http.StatusBadRequest,
				Message: "Prerequisites are not satisfied.",
				Fields:  map[string]any{"prerequisiteErrors": prereqErrors},
			}
		}

		var fullCourses []string
		newHours := 0
		for _, cand := range candidates {
			if cand.registered >= cand.capacity {
				fullCourses = append(fullCourses, cand.code)
			}
			newHours += cand.creditHours
		}
		if len(fullCourses) > 0 {
			return &utils.RequestError{
				Status:  http.StatusBadRequest,
				Message: "Some courses are already full.",
				Fields:  map[string]any{"fullCourses": fullCourses},
			}
		}

		if currentHours+newHours > maxHours {
			return &utils.RequestError{
				Status:  http.StatusBadRequest,
				Message: "Registration exceeds your allowed credit hours.",
				Fields: map[string]any{
					"currentCreditHours":    currentHours,
					"requestedCreditHours":  newHours,
					"maxAllowedCreditHours": maxHours,
				},
			}
		}
		if newHours > remainingHours {
			return &utils.RequestError{
				Status:  http.StatusBadRequest,
				Message: "Registration exceeds your remaining program hours.",
				Fields: map[string]any{
					"requestedCreditHours": newHours,
					"remainingCreditHours": remainingHours,
				},
			}
		}

		placed, err := placedSessions(ctx, tx, studentID)
		if err != nil {
			return err
		}
		for _, cand := range candidates {
			if conflict := schedule.FindConflict(placed, cand.lectures); conflict != nil {
				return &utils.RequestError{
					Status:  http.StatusConflict,
					Message: conflict.Message(),
					Fields: map[string]any{
						"conflictingCourse": cand.code,
						"conflictsWith":     conflict,
					},
				}
			}
			// Accepted lectures join the timetable snapshot so a later
			// course in the same batch cannot collide with them either.
			for _, sess := range cand.lectures {
				placed = append(placed, schedule.Placed{Session: sess, CourseCode: cand.code})
			}
		}

		term := utils.TermFor(time.Now())
		var registeredCodes []string
		var retakes []domain.RetakeDetail
		for _, cand := range candidates {
			_, err := tx.Exec(ctx, `
                INSERT INTO course_registrations (student_id, course_code, term) VALUES ($1, $2, $3);
            `, studentID, cand.code, term)
			if err != nil {
				return err
			}
			registeredCodes = append(registeredCodes, cand.code)

			if attempts := failedAttempts[cand.code]; len(attempts) > 0 {
				retakes = append(retakes, domain.RetakeDetail{
					CourseCode:        cand.code,
					PreviousAttempts:  attempts,
					NextAttemptNumber: attempts[len(attempts)-1].AttemptNumber + 1,
				})
			}
		}

		result = &domain.RegisterCoursesResult{
			RegisteredCourses: registeredCodes,
			Term:              term,
			TotalCreditHours:  currentHours + newHours,
			RetakeDetails:     retakes,
		}
		return nil
	})
	return result, err
}

// lockCourse reads one course row FOR UPDATE together with its roster
// count, prerequisites and lecture sessions.
func lockCourse(ctx context.Context, tx pgx.Tx, code string) (*candidateCourse, error) {
	cand := candidateCourse{code: code}
	err := tx.QueryRow(ctx, `
        SELECT name, credit_hours, capacity FROM courses WHERE code = $1 AND is_active FOR UPDATE;
    `, code).Scan(&cand.name, &cand.creditHours, &cand.capacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM course_registrations WHERE course_code = $1;`, code).Scan(&cand.registered)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx,
		`SELECT prerequisite_code FROM course_prerequisites WHERE course_code = $1 ORDER BY prerequisite_code;`, code)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return nil, err
		}
		cand.prereqs = append(cand.prereqs, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx, `
        SELECT id, day, start_time, end_time, room, kind
        FROM class_sessions WHERE course_code = $1 AND kind = 'Lecture' ORDER BY id;
    `, code)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var sess domain.Session
		if err := rows.Scan(&sess.ID, &sess.Day, &sess.StartTime, &sess.EndTime, &sess.Room, &sess.Kind); err != nil {
			rows.Close()
			return nil, err
		}
		cand.lectures = append(cand.lectures, sess)
	}
	rows.Close()
	return &cand, rows.Err()
}

// gradeHistory splits the student's grade records into passed course codes
// and failed attempts per course, ordered by attempt number.
func gradeHistory(ctx context.Context, q querier, studentID string) (map[string]bool, map[string][]domain.PreviousResult, error) {
	rows, err := q.Query(ctx, `
        SELECT course_code, letter, term, attempt_number
        FROM grades WHERE student_id = $1 ORDER BY course_code, attempt_number;
    `, studentID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	passed := map[string]bool{}
	failed := map[string][]domain.PreviousResult{}
	for rows.Next() {
		var code, letter, term string
		var attempt int
		if err := rows.Scan(&code, &letter, &term, &attempt); err != nil {
			return nil, nil, err
		}
		if letter == "F" {
			failed[code] = append(failed[code], domain.PreviousResult{
				Term: term, Grade: letter, AttemptNumber: attempt,
			})
		} else {
			passed[code] = true
		}
	}
	return passed, failed, rows.Err()
}

// RegisterForSections validates the whole batch and commits it only when
// every check passes; any failure rejects every registration in the
// request.
func (s *Storage) RegisterForSections(ctx context.Context, studentID string, regs []domain.SectionRegistration) (*domain.SectionValidation, error) {
	seen := map[string]bool{}
	for _, reg := range regs {
		if seen[reg.CourseCode] {
			return nil, utils.BadRequest(fmt.Sprintf("Duplicate course in request: %s", reg.CourseCode))
		}
		seen[reg.CourseCode] = true
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		registered := map[string]bool{}
		sectioned := map[string]bool{}
		rows, err := tx.Query(ctx,
			`SELECT course_code FROM course_registrations WHERE student_id = $1;`, studentID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var code string
			if err := rows.Scan(&code); err != nil {
				rows.Close()
				return err
			}
			registered[code] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		rows, err = tx.Query(ctx,
			`SELECT course_code FROM section_registrations WHERE student_id = $1;`, studentID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var code string
			if err := rows.Scan(&code); err != nil {
				rows.Close()
				return err
			}
			sectioned[code] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, reg := range regs {
			if sectioned[reg.CourseCode] {
				return utils.BadRequest(fmt.Sprintf("You already have a section in %s.", reg.CourseCode))
			}
		}

		placed, err := placedSessions(ctx, tx, studentID)
		if err != nil {
			return err
		}

		var report domain.SectionValidation
		for _, reg := range regs {
			var courseExists bool
			err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM courses WHERE code = $1);`, reg.CourseCode).Scan(&courseExists)
			if err != nil {
				return err
			}
			if !courseExists {
				report.MissingCourses = append(report.MissingCourses, reg.CourseCode)
				continue
			}
			if !registered[reg.CourseCode] {
				report.NotRegisteredCourses = append(report.NotRegisteredCourses, reg.CourseCode)
				continue
			}

			var capacity, roster int
			err = tx.QueryRow(ctx, `
                SELECT capacity,
                       (SELECT COUNT(*) FROM section_registrations r
                        WHERE r.course_code = sections.course_code AND r.section_id = sections.section_id)
                FROM sections WHERE course_code = $1 AND section_id = $2 FOR UPDATE;
            `, reg.CourseCode, reg.SectionID).Scan(&capacity, &roster)
			if errors.Is(err, pgx.ErrNoRows) {
				report.MissingSections = append(report.MissingSections, domain.SectionRef(reg))
				continue
			}
			if err != nil {
				return err
			}
			if roster >= capacity {
				report.FullSections = append(report.FullSections, domain.SectionRef(reg))
				continue
			}

			sectionID := reg.SectionID
			sessions, err := sessionsTx(ctx, tx, reg.CourseCode, &sectionID)
			if err != nil {
				return err
			}
			if conflict := schedule.FindConflict(placed, sessions); conflict != nil {
				report.TimeConflicts = append(report.TimeConflicts, domain.SectionConflict{
					CourseCode: reg.CourseCode,
					SectionID:  reg.SectionID,
					Message:    conflict.Message(),
				})
				continue
			}
			for _, sess := range sessions {
				placed = append(placed, schedule.Placed{
					Session: sess, CourseCode: reg.CourseCode, SectionID: reg.SectionID,
				})
			}
		}
		if report.HasErrors() {
			return &utils.RequestError{
				Status:  http.StatusBadRequest,
				Message: "Section registration failed validation.",
				Fields: map[string]any{
					"missingCourses":       report.MissingCourses,
					"notRegisteredCourses": report.NotRegisteredCourses,
					"missingSections":      report.MissingSections,
					"fullSections":         report.FullSections,
					"timeConflicts":        report.TimeConflicts,
				},
			}
		}

		for _, reg := range regs {
			_, err := tx.Exec(ctx, `
                INSERT INTO section_registrations (student_id, course_code, section_id) VALUES ($1, $2, $3);
            `, studentID, reg.CourseCode, reg.SectionID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.SectionValidation{}, nil
}

func sessionsTx(ctx context.Context, tx pgx.Tx, courseCode string, sectionID *string) ([]domain.Session, error) {
	rows, err := tx.Query(ctx, `
        SELECT id, day, start_time, end_time, room, kind, section_id
        FROM class_sessions
        WHERE course_code = $1 AND section_id IS NOT DISTINCT FROM $2
        ORDER BY id;
    `, courseCode, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var sess domain.Session
		if err := rows.Scan(&sess.ID, &sess.Day, &sess.StartTime, &sess.EndTime, &sess.Room, &sess.Kind, &sess.SectionID); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// courseStanding is the slice of a student's state in a course that the
// drop rules look at.
type courseStanding struct {
	registered     bool
	lastLetter     *string
	failedThisTerm bool
}

func loadCourseStanding(ctx context.Context, tx pgx.Tx, studentID, courseCode string) (courseStanding, error) {
	var st courseStanding
	err := tx.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM course_registrations WHERE student_id = $1 AND course_code = $2);
    `, studentID, courseCode).Scan(&st.registered)
	if err != nil {
		return st, err
	}

	err = tx.QueryRow(ctx, `
        SELECT letter FROM grades WHERE student_id = $1 AND course_code = $2
        ORDER BY attempt_number DESC LIMIT 1;
    `, studentID, courseCode).Scan(&st.lastLetter)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return st, err
	}

	err = tx.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM grades
                       WHERE student_id = $1 AND course_code = $2 AND term = $3 AND letter = 'F');
    `, studentID, courseCode, utils.TermFor(time.Now())).Scan(&st.failedThisTerm)
	return st, err
}

// dropRejection applies the drop rules in order: a passed course stays on
// the record, an unregistered course has nothing to drop, and a course
// failed this term is locked until the next one.
func (st courseStanding) dropRejection() error {
	if st.lastLetter != nil && *st.lastLetter != "F" {
		return utils.BadRequest("You cannot drop a course you have already passed.")
	}
	if !st.registered {
		return utils.BadRequest("You are not registered for this course.")
	}
	if st.failedThisTerm {
		return utils.BadRequest("You cannot drop a course you failed this term.")
	}
	return nil
}

// DropCourse removes the registration and any section of the course in one
// transaction, after the drop rules clear the course.
func (s *Storage) DropCourse(ctx context.Context, studentID, courseCode string) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		standing, err := loadCourseStanding(ctx, tx, studentID, courseCode)
		if err != nil {
			return err
		}
		if err := standing.dropRejection(); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
            DELETE FROM course_registrations WHERE student_id = $1 AND course_code = $2;
        `, studentID, courseCode); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
            DELETE FROM section_registrations WHERE student_id = $1 AND course_code = $2;
        `, studentID, courseCode)
		return err
	})
}

// DropSection removes a single section registration under the same drop
// rules as DropCourse; the course registration itself stays.
func (s *Storage) DropSection(ctx context.Context, studentID, courseCode, sectionID string) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM courses WHERE code = $1);`, courseCode).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return utils.NotFound("Course not found.")
		}

		err = tx.QueryRow(ctx, `
            SELECT EXISTS (SELECT 1 FROM sections WHERE course_code = $1 AND section_id = $2);
        `, courseCode, sectionID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return utils.NotFound("Section not found.")
		}

		standing, err := loadCourseStanding(ctx, tx, studentID, courseCode)
		if err != nil {
			return err
		}
		if err := standing.dropRejection(); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
            DELETE FROM section_registrations WHERE student_id = $1 AND course_code = $2 AND section_id = $3;
        `, studentID, courseCode, sectionID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return utils.BadRequest("You are not registered for this section.")
		}
		return nil
	})
}

// AvailableCourses is the catalog filtered for one student: active courses
// the student has not passed, each flagged when it is a retake or already
// registered.
func (s *Storage) AvailableCourses(ctx context.Context, studentID string) ([]domain.AvailableCourse, error) {
	passed, failedAttempts, err := gradeHistory(ctx, s.pool, studentID)
	if err != nil {
		return nil, err
	}

	registered := map[string]bool{}
	rows, err := s.pool.Query(ctx,
		`SELECT course_code FROM course_registrations WHERE student_id = $1;`, studentID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			rows.Close()
			return nil, err
		}
		registered[code] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	courses, err := s.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	var available []domain.AvailableCourse
	for _, course := range courses {
		if !course.IsActive || passed[course.Code] {
			continue
		}
		entry := domain.AvailableCourse{
			Code:            course.Code,
			Name:            course.Name,
			CreditHours:     course.CreditHours,
			Prerequisites:   course.Prerequisites,
			LectureSessions: course.LectureSessions,
			IsFailedCourse:  len(failedAttempts[course.Code]) > 0,
			IsRegistered:    registered[course.Code],
		}
		if doctor, err := s.GetUserByID(ctx, course.DoctorID); err == nil {
			entry.DoctorName = doctor.Name
		}
		for _, sec := range course.Sections {
			withStaff := domain.SectionWithStaff{Section: sec}
			if sec.TAID != nil {
				if ta, err := s.GetUserByID(ctx, *sec.TAID); err == nil {
					withStaff.TeachingAssistant = ta.Name
				}
			}
			entry.Sections = append(entry.Sections, withStaff)
		}
		available = append(available, entry)
	}
	return available, nil
}

// TimetableFor builds the weekly timetable for any role: students see
// registered lectures plus their own sections, doctors their lectures, TAs
// their sections.
func (s *Storage) TimetableFor(ctx context.Context, user *domain.User) (domain.Timetable, error) {
	var query string
	switch user.Role {
	case domain.RoleStudent:
		return s.studentTimetable(ctx, user.ID)
	case domain.RoleDoctor:
		query = `
            SELECT cs.day, cs.start_time, cs.end_time, cs.room, cs.kind, cs.course_code,
                   COALESCE(cs.section_id, ''), c.name
            FROM class_sessions cs JOIN courses c ON c.code = cs.course_code
            WHERE cs.kind = 'Lecture' AND c.doctor_id = $1
            ORDER BY cs.course_code, cs.id;
        `
	case domain.RoleTA:
		query = `
            SELECT cs.day, cs.start_time, cs.end_time, cs.room, cs.kind, cs.course_code,
                   COALESCE(cs.section_id, ''), c.name
            FROM class_sessions cs
            JOIN sections sec ON sec.course_code = cs.course_code AND sec.section_id = cs.section_id
            JOIN courses c ON c.code = cs.course_code
            WHERE cs.kind = 'Section' AND sec.ta_id = $1
            ORDER BY cs.course_code, cs.id;
        `
	default:
		return nil, utils.Forbidden("No timetable for this role.")
	}

	rows, err := s.pool.Query(ctx, query, user.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timetable := domain.Timetable{}
	for rows.Next() {
		var day, start, end, room, kind, code, sectionID, name string
		if err := rows.Scan(&day, &start, &end, &room, &kind, &code, &sectionID, &name); err != nil {
			return nil, err
		}
		timetable[day] = append(timetable[day], domain.TimetableEntry{
			Type: kind, Code: code, Name: name, Room: room,
			StartTime: start, EndTime: end, SectionID: sectionID,
		})
	}
	return timetable, rows.Err()
}

func (s *Storage) studentTimetable(ctx context.Context, studentID string) (domain.Timetable, error) {
	const query = `
        SELECT cs.day, cs.start_time, cs.end_time, cs.room, cs.kind, cs.course_code,
               COALESCE(cs.section_id, ''), c.name, doc.name,
               COALESCE(ta.name, '')
        FROM class_sessions cs
        JOIN courses c ON c.code = cs.course_code
        JOIN users doc ON doc.id = c.doctor_id
        LEFT JOIN sections sec ON sec.course_code = cs.course_code AND sec.section_id = cs.section_id
        LEFT JOIN users ta ON ta.id = sec.ta_id
        WHERE (cs.kind = 'Lecture' AND cs.course_code IN
                  (SELECT course_code FROM course_registrations WHERE student_id = $1))
           OR (cs.kind = 'Section' AND (cs.course_code, cs.section_id) IN
                  (SELECT course_code, section_id FROM section_registrations WHERE student_id = $1))
        ORDER BY cs.course_code, cs.kind DESC, cs.id;
    `
	rows, err := s.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timetable := domain.Timetable{}
	for rows.Next() {
		var entry domain.TimetableEntry
		var day string
		if err := rows.Scan(&day, &entry.StartTime, &entry.EndTime, &entry.Room, &entry.Type,
			&entry.Code, &entry.SectionID, &entry.Name, &entry.DoctorName, &entry.TeachingAssistant); err != nil {
			return nil, err
		}
		timetable[day] = append(timetable[day], entry)
	}
	return timetable, rows.Err()
}
