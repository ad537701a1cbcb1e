package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// FinalizeTerm sweeps every student with open registrations: courses that
// have been graded leave the roster, and students with nothing left in
// flight get their term marked completed. Each student commits in its own
// transaction so one failure never blocks the rest of the sweep, and the
// sweep can run alongside live registration traffic.
func (s *Storage) FinalizeTerm(ctx context.Context) error {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT student_id FROM course_registrations;`)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	var errs []error
	for _, id := range ids {
		if err := s.finalizeStudentTerm(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Storage) finalizeStudentTerm(ctx context.Context, studentID string) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
            DELETE FROM section_registrations sr
            WHERE sr.student_id = $1
              AND EXISTS (SELECT 1 FROM grades g
                          JOIN course_registrations cr
                            ON cr.student_id = g.student_id AND cr.course_code = g.course_code
                          WHERE g.student_id = sr.student_id
                            AND g.course_code = sr.course_code
                            AND g.term = cr.term);
        `, studentID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
            DELETE FROM course_registrations cr
            WHERE cr.student_id = $1
              AND EXISTS (SELECT 1 FROM grades g
                          WHERE g.student_id = cr.student_id
                            AND g.course_code = cr.course_code
                            AND g.term = cr.term);
        `, studentID); err != nil {
			return err
		}

		var open int
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM course_registrations WHERE student_id = $1;`, studentID).Scan(&open); err != nil {
			return err
		}
		if open == 0 {
			_, err := tx.Exec(ctx, `
                UPDATE student_performance SET term_status = 'completed' WHERE student_id = $1;
            `, studentID)
			return err
		}
		return nil
	})
}
