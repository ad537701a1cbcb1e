package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/examroom"
	"github.com/marwa-agamy/collegeSystem-app/internal/schedule"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

// CreateExam persists the exam together with its room distribution. The
// roster is every student currently registered for the course, seated in
// student-id order so repeated runs produce the same layout.
func (s *Storage) CreateExam(ctx context.Context, req *domain.CreateExamRequest) (*domain.Exam, error) {
	if req.RoomCapacity <= 0 {
		return nil, utils.BadRequest("Room capacity must be positive.")
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var courseName string
		err := tx.QueryRow(ctx, `SELECT name FROM courses WHERE code = $1;`, req.CourseCode).Scan(&courseName)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound(fmt.Sprintf("Course not found: %s", req.CourseCode))
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO exams (exam_id, course_code, exam_date, start_time, end_time,
                               room_capacity, semester, academic_year, exam_type, department)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
        `, req.ExamID, req.CourseCode, req.ExamDate, req.StartTime, req.EndTime,
			req.RoomCapacity, req.Semester, req.AcademicYear, req.ExamType, req.Department)
		if err != nil {
			if isUniqueViolation(err) {
				return utils.Conflict(fmt.Sprintf("Exam already exists: %s", req.ExamID))
			}
			return err
		}

		return distributeExamRooms(ctx, tx, req.ExamID, req.CourseCode, req.RoomNumbers, req.RoomCapacity)
	})
	if err != nil {
		return nil, err
	}
	return s.GetExam(ctx, req.ExamID)
}

func distributeExamRooms(ctx context.Context, tx pgx.Tx, examID, courseCode string, roomNumbers []string, capacity int) error {
	rows, err := tx.Query(ctx, `
        SELECT u.id, u.name
        FROM course_registrations r JOIN users u ON u.id = r.student_id
        WHERE r.course_code = $1
        ORDER BY u.id;
    `, courseCode)
	if err != nil {
		return err
	}
	var roster []domain.ExamSeat
	for rows.Next() {
		var seat domain.ExamSeat
		if err := rows.Scan(&seat.StudentID, &seat.Name); err != nil {
			rows.Close()
			return err
		}
		roster = append(roster, seat)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rooms, err := examroom.Distribute(roster, roomNumbers, capacity)
	if err != nil {
		var capErr *examroom.CapacityError
		if errors.As(err, &capErr) {
			return &utils.RequestError{
				Status:  http.StatusBadRequest,
				Message: capErr.Error(),
				Fields: map[string]any{
					"unassignedStudents": capErr.Unassigned,
					"requiredRooms":      capErr.RequiredRooms,
				},
			}
		}
		return err
	}

	for pos, room := range rooms {
		if _, err := tx.Exec(ctx, `
            INSERT INTO exam_rooms (exam_id, room_number, position) VALUES ($1, $2, $3);
        `, examID, room.RoomNumber, pos); err != nil {
			return err
		}
		for seatNo, seat := range room.Students {
			if _, err := tx.Exec(ctx, `
                INSERT INTO exam_seats (exam_id, room_number, student_id, seat) VALUES ($1, $2, $3, $4);
            `, examID, room.RoomNumber, seat.StudentID, seatNo); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Storage) GetExam(ctx context.Context, examID string) (*domain.Exam, error) {
	var exam domain.Exam
	err := s.pool.QueryRow(ctx, `
        SELECT e.exam_id, e.course_code, c.name, e.exam_date, e.start_time, e.end_time,
               e.room_capacity, e.semester, e.academic_year, e.exam_type, e.department, e.created_at
        FROM exams e JOIN courses c ON c.code = e.course_code
        WHERE e.exam_id = $1;
    `, examID).Scan(
		&exam.ExamID, &exam.CourseCode, &exam.CourseName, &exam.ExamDate,
		&exam.StartTime, &exam.EndTime, &exam.RoomCapacity, &exam.Semester,
		&exam.AcademicYear, &exam.ExamType, &exam.Department, &exam.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
        SELECT r.room_number, COALESCE(st.student_id, ''), COALESCE(u.name, '')
        FROM exam_rooms r
        LEFT JOIN exam_seats st ON st.exam_id = r.exam_id AND st.room_number = r.room_number
        LEFT JOIN users u ON u.id = st.student_id
        WHERE r.exam_id = $1
        ORDER BY r.position, st.seat;
    `, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.ExamRoom
	for rows.Next() {
		var roomNumber, studentID, name string
		if err := rows.Scan(&roomNumber, &studentID, &name); err != nil {
			return nil, err
		}
		if len(rooms) == 0 || rooms[len(rooms)-1].RoomNumber != roomNumber {
			rooms = append(rooms, domain.ExamRoom{RoomNumber: roomNumber})
		}
		if studentID != "" {
			last := &rooms[len(rooms)-1]
			last.Students = append(last.Students, domain.ExamSeat{StudentID: studentID, Name: name})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	exam.Rooms = rooms
	return &exam, nil
}

func (s *Storage) ListExams(ctx context.Context) ([]domain.Exam, error) {
	rows, err := s.pool.Query(ctx, `SELECT exam_id FROM exams ORDER BY exam_date, exam_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exams := make([]domain.Exam, 0, len(ids))
	for _, id := range ids {
		exam, err := s.GetExam(ctx, id)
		if err != nil {
			return nil, err
		}
		exams = append(exams, *exam)
	}
	return exams, nil
}

// UpdateExam patches scalar fields; touching the rooms or the capacity
// redistributes every seat from scratch.
func (s *Storage) UpdateExam(ctx context.Context, examID string, req *domain.UpdateExamRequest) (*domain.Exam, error) {
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var courseCode string
		var capacity int
		err := tx.QueryRow(ctx, `
            UPDATE exams SET
                course_code = COALESCE($2, course_code),
                exam_date = COALESCE($3, exam_date),
                start_time = COALESCE($4, start_time),
                end_time = COALESCE($5, end_time),
                room_capacity = COALESCE($6, room_capacity),
                semester = COALESCE($7, semester),
                exam_type = COALESCE($8, exam_type)
            WHERE exam_id = $1
            RETURNING course_code, room_capacity;
        `, examID, req.CourseCode, req.ExamDate, req.StartTime, req.EndTime,
			req.RoomCapacity, req.Semester, req.ExamType).Scan(&courseCode, &capacity)
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrNotFound
		}
		if err != nil {
			return err
		}

		if req.RoomNumbers == nil && req.RoomCapacity == nil && req.CourseCode == nil {
			return nil
		}

		roomNumbers := req.RoomNumbers
		if roomNumbers == nil {
			rows, err := tx.Query(ctx,
				`SELECT room_number FROM exam_rooms WHERE exam_id = $1 ORDER BY position;`, examID)
			if err != nil {
				return err
			}
			for rows.Next() {
				var number string
				if err := rows.Scan(&number); err != nil {
					rows.Close()
					return err
				}
				roomNumbers = append(roomNumbers, number)
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM exam_seats WHERE exam_id = $1;`, examID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM exam_rooms WHERE exam_id = $1;`, examID); err != nil {
			return err
		}
		return distributeExamRooms(ctx, tx, examID, courseCode, roomNumbers, capacity)
	})
	if err != nil {
		return nil, err
	}
	return s.GetExam(ctx, examID)
}

func (s *Storage) DeleteExam(ctx context.Context, examID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM exams WHERE exam_id = $1;`, examID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// StudentExams lists the exams the student is seated in, flagging pairs
// that share a date with overlapping times.
func (s *Storage) StudentExams(ctx context.Context, studentID string) ([]domain.StudentExam, error) {
	const query = `
        SELECT e.exam_id, e.course_code, c.name, e.exam_type, e.exam_date,
               e.start_time, e.end_time, st.room_number
        FROM exam_seats st
        JOIN exams e ON e.exam_id = st.exam_id
        JOIN courses c ON c.code = e.course_code
        WHERE st.student_id = $1
        ORDER BY e.exam_date, e.start_time;
    `
	rows, err := s.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type examRow struct {
		view  domain.StudentExam
		date  string
		start string
		end   string
	}
	var all []examRow
	for rows.Next() {
		var r examRow
		var room string
		if err := rows.Scan(&r.view.ExamID, &r.view.CourseCode, &r.view.CourseName,
			&r.view.ExamType, &r.date, &r.start, &r.end, &room); err != nil {
			return nil, err
		}
		r.view.Date = r.date
		r.view.Time = r.start + " - " + r.end
		r.view.Location = "Room " + room
		if parsed, err := time.Parse("2006-01-02", r.date); err == nil {
			r.view.Day = parsed.Weekday().String()
			if parsed.Before(time.Now().Truncate(24 * time.Hour)) {
				r.view.Status = "completed"
			} else {
				r.view.Status = "upcoming"
			}
		} else {
			r.view.Status = "upcoming"
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range all {
		for j := range all {
			if i == j || all[i].date != all[j].date {
				continue
			}
			s1, ok1 := schedule.ClockMinutes(all[i].start)
			e1, ok2 := schedule.ClockMinutes(all[i].end)
			s2, ok3 := schedule.ClockMinutes(all[j].start)
			e2, ok4 := schedule.ClockMinutes(all[j].end)
			if ok1 && ok2 && ok3 && ok4 && s1 < e2 && s2 < e1 {
				all[i].view.HasConflict = true
			}
		}
	}

	exams := make([]domain.StudentExam, 0, len(all))
	for _, r := range all {
		exams = append(exams, r.view)
	}
	return exams, nil
}
