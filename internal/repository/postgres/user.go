package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

const userColumns = `id, name, email, password_hash, phone_number, role, date_of_birth, gender,
        address, department, academic_level, status, academic_advisor, profile_picture,
        is_active, last_login, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PhoneNumber, &u.Role,
		&u.DateOfBirth, &u.Gender, &u.Address, &u.Department, &u.AcademicLevel,
		&u.Status, &u.AcademicAdvisor, &u.ProfilePicture, &u.IsActive,
		&u.LastLogin, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateUser inserts the user and, for students, seeds the performance row
// with its defaults in the same transaction.
func (s *Storage) CreateUser(ctx context.Context, req *domain.CreateUserRequest, passwordHash string) (*domain.User, error) {
	var user *domain.User
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		const query = `
        INSERT INTO users (id, name, email, password_hash, phone_number, role, date_of_birth,
                           gender, address, department, academic_level, status, academic_advisor, profile_picture)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING ` + userColumns + `;
    `
		var err error
		user, err = scanUser(tx.QueryRow(ctx, query,
			req.ID, req.Name, req.Email, passwordHash, req.PhoneNumber, req.Role,
			req.DateOfBirth, req.Gender, req.Address, req.Department,
			req.AcademicLevel, req.Status, req.AcademicAdvisor, req.ProfilePicture,
		))
		if err != nil {
			if isUniqueViolation(err) {
				return utils.Conflict(fmt.Sprintf("User with id or email already exists: %s", req.ID))
			}
			return err
		}

		if req.Role == domain.RoleStudent {
			_, err = tx.Exec(ctx, `INSERT INTO student_performance (student_id) VALUES ($1);`, req.ID)
		}
		return err
	})
	return user, err
}

// BulkCreateUsers creates each entry independently and reports per-item
// outcomes; one bad entry never blocks the rest.
func (s *Storage) BulkCreateUsers(ctx context.Context, reqs []domain.CreateUserRequest, hash func(string) (string, error)) domain.BulkResult {
	var result domain.BulkResult
	for i := range reqs {
		req := &reqs[i]
		passwordHash, err := hash(req.Password)
		if err != nil {
			result.Errors = append(result.Errors, domain.BulkItemResult{ID: req.ID, Message: "could not hash password"})
			continue
		}
		if _, err := s.CreateUser(ctx, req, passwordHash); err != nil {
			result.Errors = append(result.Errors, domain.BulkItemResult{ID: req.ID, Message: err.Error()})
			continue
		}
		result.Success = append(result.Success, domain.BulkItemResult{ID: req.ID, Message: "created"})
	}
	return result
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// ListUsers returns users, optionally filtered to one role.
func (s *Storage) ListUsers(ctx context.Context, role string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC;`
	args := []any{}
	if role != "" {
		query = `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC;`
		args = append(args, role)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *Storage) UpdateUser(ctx context.Context, id string, req *domain.UpdateUserRequest) (*domain.User, error) {
	const query = `
        UPDATE users SET
            name = COALESCE($2, name),
            email = COALESCE($3, email),
            phone_number = COALESCE($4, phone_number),
            address = COALESCE($5, address),
            department = COALESCE($6, department),
            academic_level = COALESCE($7, academic_level),
            status = COALESCE($8, status),
            academic_advisor = COALESCE($9, academic_advisor)
        WHERE id = $1
        RETURNING ` + userColumns + `;
    `
	user, err := scanUser(s.pool.QueryRow(ctx, query,
		id, req.Name, req.Email, req.PhoneNumber, req.Address,
		req.Department, req.AcademicLevel, req.Status, req.AcademicAdvisor,
	))
	if err != nil && isUniqueViolation(err) {
		return nil, utils.Conflict("Email already in use.")
	}
	return user, err
}

// DeleteUser removes the user; registrations, grades, performance, seats,
// messages and fee rows cascade at the schema level.
func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *Storage) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1;`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *Storage) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE email = $1;`, email, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *Storage) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1;`, id, at)
	return err
}
