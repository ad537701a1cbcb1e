package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

// CreateCourse inserts the course together with its prerequisites, lecture
// sessions and sections in one transaction. Section capacities may not sum
// past the course capacity.
func (s *Storage) CreateCourse(ctx context.Context, req *domain.CreateCourseRequest) (*domain.Course, error) {
	sectionTotal := 0
	for _, sec := range req.Sections {
		sectionTotal += sec.Capacity
	}
	if sectionTotal > req.Capacity {
		return nil, utils.BadRequest("Total section capacity exceeds course capacity.")
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var doctorRole string
		err := tx.QueryRow(ctx, `SELECT role FROM users WHERE id = $1;`, req.DoctorID).Scan(&doctorRole)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound(fmt.Sprintf("Doctor not found: %s", req.DoctorID))
		}
		if err != nil {
			return err
		}
		if doctorRole != domain.RoleDoctor {
			return utils.BadRequest(fmt.Sprintf("User %s is not a doctor.", req.DoctorID))
		}

		start := time.Now()
		end := start
		if req.StartDate != nil {
			start = *req.StartDate
		}
		if req.EndDate != nil {
			end = *req.EndDate
		}

		const insertCourse = `
        INSERT INTO courses (code, name, doctor_id, credit_hours, semester, department, capacity, start_date, end_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
		_, err = tx.Exec(ctx, insertCourse,
			req.Code, req.Name, req.DoctorID, req.CreditHours, req.Semester,
			req.Department, req.Capacity, start, end,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return utils.Conflict(fmt.Sprintf("Course already exists: %s", req.Code))
			}
			return err
		}

		for _, prereq := range req.Prerequisites {
			_, err = tx.Exec(ctx,
				`INSERT INTO course_prerequisites (course_code, prerequisite_code) VALUES ($1, $2);`,
				req.Code, prereq)
			if err != nil {
				return err
			}
		}

		for _, sess := range req.LectureSessions {
			if err := insertSession(ctx, tx, req.Code, nil, sess, domain.KindLecture); err != nil {
				return err
			}
		}

		for _, sec := range req.Sections {
			if err := insertSection(ctx, tx, req.Code, &sec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCourse(ctx, req.Code)
}

func insertSection(ctx context.Context, tx pgx.Tx, courseCode string, sec *domain.SectionInput) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO sections (course_code, section_id, ta_id, capacity) VALUES ($1, $2, $3, $4);`,
		courseCode, sec.SectionID, sec.TAID, sec.Capacity)
	if err != nil {
		if isUniqueViolation(err) {
			return utils.Conflict(fmt.Sprintf("Section already exists: %s", sec.SectionID))
		}
		return err
	}
	for _, sess := range sec.Sessions {
		if err := insertSession(ctx, tx, courseCode, &sec.SectionID, sess, domain.KindSection); err != nil {
			return err
		}
	}
	return nil
}

func insertSession(ctx context.Context, tx pgx.Tx, courseCode string, sectionID *string, sess domain.SessionInput, kind string) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO class_sessions (course_code, section_id, day, start_time, end_time, room, kind)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `, courseCode, sectionID, sess.Day, sess.StartTime, sess.EndTime, sess.Room, kind)
	return err
}

// GetCourse loads the course with prerequisites, lecture sessions and
// fully populated sections.
func (s *Storage) GetCourse(ctx context.Context, code string) (*domain.Course, error) {
	const query = `
        SELECT c.code, c.name, c.doctor_id, c.credit_hours, c.semester, c.department,
               c.capacity, c.start_date, c.end_date, c.is_active,
               (SELECT COUNT(*) FROM course_registrations r WHERE r.course_code = c.code)
        FROM courses c WHERE c.code = $1;
    `
	var course domain.Course
	err := s.pool.QueryRow(ctx, query, code).Scan(
		&course.Code, &course.Name, &course.DoctorID, &course.CreditHours,
		&course.Semester, &course.Department, &course.Capacity,
		&course.StartDate, &course.EndDate, &course.IsActive, &course.Registered,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if course.Prerequisites, err = s.coursePrerequisites(ctx, code); err != nil {
		return nil, err
	}
	if course.LectureSessions, err = s.courseSessions(ctx, code, nil); err != nil {
		return nil, err
	}
	if course.Sections, err = s.courseSections(ctx, code); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Storage) coursePrerequisites(ctx context.Context, code string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT prerequisite_code FROM course_prerequisites WHERE course_code = $1 ORDER BY prerequisite_code;`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prereqs []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		prereqs = append(prereqs, p)
	}
	return prereqs, rows.Err()
}

// courseSessions returns lecture sessions when sectionID is nil, otherwise
// the sessions of that section.
func (s *Storage) courseSessions(ctx context.Context, code string, sectionID *string) ([]domain.Session, error) {
	const query = `
        SELECT id, day, start_time, end_time, room, kind, section_id
        FROM class_sessions
        WHERE course_code = $1 AND section_id IS NOT DISTINCT FROM $2
        ORDER BY id;
    `
	rows, err := s.pool.Query(ctx, query, code, sectionID)
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

func (s *Storage) courseSections(ctx context.Context, code string) ([]domain.Section, error) {
	const query = `
        SELECT sec.course_code, sec.section_id, sec.ta_id, sec.capacity,
               (SELECT COUNT(*) FROM section_registrations r
                WHERE r.course_code = sec.course_code AND r.section_id = sec.section_id)
        FROM sections sec WHERE sec.course_code = $1
        ORDER BY sec.section_id;
    `
	rows, err := s.pool.Query(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		var sec domain.Section
		if err := rows.Scan(&sec.CourseCode, &sec.SectionID, &sec.TAID, &sec.Capacity, &sec.Registered); err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sections {
		sessions, err := s.courseSessions(ctx, code, &sections[i].SectionID)
		if err != nil {
			return nil, err
		}
		sections[i].Sessions = sessions
	}
	return sections, nil
}

func (s *Storage) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.pool.Query(ctx, `SELECT code FROM courses ORDER BY code;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	courses := make([]domain.Course, 0, len(codes))
	for _, code := range codes {
		course, err := s.GetCourse(ctx, code)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

// UpdateCourse patches scalar fields and, when provided, replaces the
// prerequisite list and lecture sessions wholesale.
func (s *Storage) UpdateCourse(ctx context.Context, code string, req *domain.UpdateCourseRequest) (*domain.Course, error) {
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		const query = `
        UPDATE courses SET
            name = COALESCE($2, name),
            doctor_id = COALESCE($3, doctor_id),
            credit_hours = COALESCE($4, credit_hours),
            semester = COALESCE($5, semester),
            department = COALESCE($6, department),
            capacity = COALESCE($7, capacity)
        WHERE code = $1;
    `
		tag, err := tx.Exec(ctx, query, code, req.Name, req.DoctorID, req.CreditHours,
			req.Semester, req.Department, req.Capacity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return utils.ErrNotFound
		}

		if req.Prerequisites != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM course_prerequisites WHERE course_code = $1;`, code); err != nil {
				return err
			}
			for _, prereq := range req.Prerequisites {
				if _, err := tx.Exec(ctx,
					`INSERT INTO course_prerequisites (course_code, prerequisite_code) VALUES ($1, $2);`,
					code, prereq); err != nil {
					return err
				}
			}
		}

		if req.LectureSessions != nil {
			if _, err := tx.Exec(ctx,
				`DELETE FROM class_sessions WHERE course_code = $1 AND kind = $2;`,
				code, domain.KindLecture); err != nil {
				return err
			}
			for _, sess := range req.LectureSessions {
				if err := insertSession(ctx, tx, code, nil, sess, domain.KindLecture); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCourse(ctx, code)
}

// DeleteCourse removes the course; sections, sessions, registrations,
// prerequisites, grades and exams cascade.
func (s *Storage) DeleteCourse(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM courses WHERE code = $1;`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// AddSection attaches a new section to an existing course, keeping the
// capacity invariant.
func (s *Storage) AddSection(ctx context.Context, courseCode string, sec *domain.SectionInput) (*domain.Section, error) {
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var courseCapacity, sectionTotal int
		err := tx.QueryRow(ctx, `
            SELECT c.capacity, COALESCE((SELECT SUM(capacity) FROM sections WHERE course_code = c.code), 0)
            FROM courses c WHERE c.code = $1 FOR UPDATE;
        `, courseCode).Scan(&courseCapacity, &sectionTotal)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound(fmt.Sprintf("Course not found: %s", courseCode))
		}
		if err != nil {
			return err
		}
		if sectionTotal+sec.Capacity > courseCapacity {
			return utils.BadRequest("Total section capacity exceeds course capacity.")
		}
		return insertSection(ctx, tx, courseCode, sec)
	})
	if err != nil {
		return nil, err
	}
	return s.GetSection(ctx, courseCode, sec.SectionID)
}

func (s *Storage) GetSection(ctx context.Context, courseCode, sectionID string) (*domain.Section, error) {
	const query = `
        SELECT sec.course_code, sec.section_id, sec.ta_id, sec.capacity,
               (SELECT COUNT(*) FROM section_registrations r
                WHERE r.course_code = sec.course_code AND r.section_id = sec.section_id)
        FROM sections sec WHERE sec.course_code = $1 AND sec.section_id = $2;
    `
	var sec domain.Section
	err := s.pool.QueryRow(ctx, query, courseCode, sectionID).Scan(
		&sec.CourseCode, &sec.SectionID, &sec.TAID, &sec.Capacity, &sec.Registered,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if sec.Sessions, err = s.courseSessions(ctx, courseCode, &sectionID); err != nil {
		return nil, err
	}
	return &sec, nil
}

// UpdateSection patches a section; renames carry registrations and
// sessions along.
func (s *Storage) UpdateSection(ctx context.Context, courseCode, sectionID string, req *domain.UpdateSectionRequest) (*domain.Section, error) {
	finalID := sectionID
	if req.NewSectionID != nil {
		finalID = *req.NewSectionID
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            UPDATE sections SET
                section_id = COALESCE($3, section_id),
                ta_id = COALESCE($4, ta_id),
                capacity = COALESCE($5, capacity)
            WHERE course_code = $1 AND section_id = $2;
        `, courseCode, sectionID, req.NewSectionID, req.TAID, req.Capacity)
		if err != nil {
			if isUniqueViolation(err) {
				return utils.Conflict(fmt.Sprintf("Section already exists: %s", finalID))
			}
			return err
		}
		if tag.RowsAffected() == 0 {
			return utils.ErrNotFound
		}

		// Registration rows follow the rename through ON UPDATE CASCADE;
		// class_sessions carries no FK, so it moves by hand.
		if req.NewSectionID != nil {
			if _, err := tx.Exec(ctx, `
                UPDATE class_sessions SET section_id = $3
                WHERE course_code = $1 AND section_id = $2;
            `, courseCode, sectionID, finalID); err != nil {
				return err
			}
		}

		if req.Sessions != nil {
			if _, err := tx.Exec(ctx, `
                DELETE FROM class_sessions WHERE course_code = $1 AND section_id = $2;
            `, courseCode, finalID); err != nil {
				return err
			}
			for _, sess := range req.Sessions {
				if err := insertSession(ctx, tx, courseCode, &finalID, sess, domain.KindSection); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetSection(ctx, courseCode, finalID)
}

func (s *Storage) DeleteSection(ctx context.Context, courseCode, sectionID string) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM sections WHERE course_code = $1 AND section_id = $2;`, courseCode, sectionID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return utils.ErrNotFound
		}
		_, err = tx.Exec(ctx,
			`DELETE FROM class_sessions WHERE course_code = $1 AND section_id = $2;`, courseCode, sectionID)
		return err
	})
}

// CourseSectionsWithStaff resolves TA names for the section listing shown
// to students before they pick a section.
func (s *Storage) CourseSectionsWithStaff(ctx context.Context, courseCode string) ([]domain.SectionWithStaff, error) {
	if _, err := s.GetCourse(ctx, courseCode); err != nil {
		return nil, err
	}

	sections, err := s.courseSections(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SectionWithStaff, 0, len(sections))
	for _, sec := range sections {
		entry := domain.SectionWithStaff{Section: sec}
		if sec.TAID != nil {
			if ta, err := s.GetUserByID(ctx, *sec.TAID); err == nil {
				entry.TeachingAssistant = ta.Name
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
