package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

// CreateFee records the fee and attaches it to every active student of the
// given level and department, all in one transaction.
func (s *Storage) CreateFee(ctx context.Context, req *domain.CreateFeeRequest) (*domain.Fee, error) {
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
            INSERT INTO fees (fee_id, academic_level, department, amount, due_date)
            VALUES ($1, $2, $3, $4, $5);
        `, req.FeeID, req.AcademicLevel, req.Department, req.Amount, req.DueDate)
		if err != nil {
			if isUniqueViolation(err) {
				return utils.Conflict(fmt.Sprintf("Fee already exists: %s", req.FeeID))
			}
			return err
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO fee_students (fee_id, student_id)
            SELECT $1, p.student_id
            FROM student_performance p JOIN users u ON u.id = p.student_id
            WHERE p.academic_level = $2 AND u.department = $3 AND u.is_active;
        `, req.FeeID, req.AcademicLevel, req.Department)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetFee(ctx, req.FeeID)
}

func (s *Storage) GetFee(ctx context.Context, feeID string) (*domain.Fee, error) {
	var fee domain.Fee
	err := s.pool.QueryRow(ctx, `
        SELECT fee_id, academic_level, department, amount, due_date, created_at
        FROM fees WHERE fee_id = $1;
    `, feeID).Scan(&fee.FeeID, &fee.AcademicLevel, &fee.Department, &fee.Amount, &fee.DueDate, &fee.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
        SELECT fs.fee_id, fs.student_id, f.amount, f.due_date, fs.status, fs.paid_at
        FROM fee_students fs JOIN fees f ON f.fee_id = fs.fee_id
        WHERE fs.fee_id = $1 ORDER BY fs.student_id;
    `, feeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sf domain.StudentFee
		if err := rows.Scan(&sf.FeeID, &sf.StudentID, &sf.Amount, &sf.DueDate, &sf.Status, &sf.PaidAt); err != nil {
			return nil, err
		}
		fee.Students = append(fee.Students, sf)
	}
	return &fee, rows.Err()
}

func (s *Storage) ListFees(ctx context.Context) ([]domain.Fee, error) {
	rows, err := s.pool.Query(ctx, `SELECT fee_id FROM fees ORDER BY created_at DESC;`)
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

	fees := make([]domain.Fee, 0, len(ids))
	for _, id := range ids {
		fee, err := s.GetFee(ctx, id)
		if err != nil {
			return nil, err
		}
		fees = append(fees, *fee)
	}
	return fees, nil
}

// StudentFees lists one student's fee rows.
func (s *Storage) StudentFees(ctx context.Context, studentID string) ([]domain.StudentFee, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT fs.fee_id, fs.student_id, f.amount, f.due_date, fs.status, fs.paid_at
        FROM fee_students fs JOIN fees f ON f.fee_id = fs.fee_id
        WHERE fs.student_id = $1 ORDER BY f.due_date;
    `, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []domain.StudentFee
	for rows.Next() {
		var sf domain.StudentFee
		if err := rows.Scan(&sf.FeeID, &sf.StudentID, &sf.Amount, &sf.DueDate, &sf.Status, &sf.PaidAt); err != nil {
			return nil, err
		}
		fees = append(fees, sf)
	}
	return fees, rows.Err()
}

// UpdateFeeStatus marks one student's fee Paid or back to Pending.
func (s *Storage) UpdateFeeStatus(ctx context.Context, feeID, studentID, status string) error {
	query := `UPDATE fee_students SET status = $3, paid_at = NULL WHERE fee_id = $1 AND student_id = $2;`
	if status == "Paid" {
		query = `UPDATE fee_students SET status = $3, paid_at = now() WHERE fee_id = $1 AND student_id = $2;`
	}
	tag, err := s.pool.Exec(ctx, query, feeID, studentID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *Storage) DeleteFee(ctx context.Context, feeID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM fees WHERE fee_id = $1;`, feeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}
