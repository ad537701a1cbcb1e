package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

func (s *Storage) CreateComplaint(ctx context.Context, userID, role, body string) (*domain.Complaint, error) {
	var c domain.Complaint
	err := s.pool.QueryRow(ctx, `
        INSERT INTO complaints (id, user_id, role, body)
        VALUES ($1, $2, $3, $4)
        RETURNING id, user_id, role, body, status, admin_response, resolved_at, created_at;
    `, uuid.NewString(), userID, role, body).Scan(
		&c.ID, &c.UserID, &c.Role, &c.Body, &c.Status, &c.AdminResponse, &c.ResolvedAt, &c.CreatedAt,
	)
	return &c, err
}

func (s *Storage) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, user_id, role, body, status, admin_response, resolved_at, created_at
        FROM complaints ORDER BY created_at DESC;
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []domain.Complaint
	for rows.Next() {
		var c domain.Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.Role, &c.Body, &c.Status,
			&c.AdminResponse, &c.ResolvedAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (s *Storage) UserComplaints(ctx context.Context, userID string) ([]domain.Complaint, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, user_id, role, body, status, admin_response, resolved_at, created_at
        FROM complaints WHERE user_id = $1 ORDER BY created_at DESC;
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []domain.Complaint
	for rows.Next() {
		var c domain.Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.Role, &c.Body, &c.Status,
			&c.AdminResponse, &c.ResolvedAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (s *Storage) ResolveComplaint(ctx context.Context, id, adminResponse string) (*domain.Complaint, error) {
	var c domain.Complaint
	err := s.pool.QueryRow(ctx, `
        UPDATE complaints SET status = 'Resolved', admin_response = $2, resolved_at = now()
        WHERE id = $1
        RETURNING id, user_id, role, body, status, admin_response, resolved_at, created_at;
    `, id, adminResponse).Scan(
		&c.ID, &c.UserID, &c.Role, &c.Body, &c.Status, &c.AdminResponse, &c.ResolvedAt, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}
