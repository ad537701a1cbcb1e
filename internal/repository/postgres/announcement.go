package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

// CreateAnnouncement inserts with a fresh uuid; on the (vanishingly rare)
// id collision it retries with a new id, giving up after three attempts.
func (s *Storage) CreateAnnouncement(ctx context.Context, sender *domain.User, req *domain.SendAnnouncementRequest) (*domain.Announcement, error) {
	switch sender.Role {
	case domain.RoleAdmin:
		// admins may announce anywhere
	case domain.RoleDoctor:
		if req.CourseCode == nil {
			return nil, utils.Forbidden("Doctors must announce to one of their courses.")
		}
		var assigned bool
		err := s.pool.QueryRow(ctx, `
            SELECT EXISTS (SELECT 1 FROM courses WHERE code = $1 AND doctor_id = $2);
        `, *req.CourseCode, sender.ID).Scan(&assigned)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, utils.Forbidden("You are not assigned to this course.")
		}
	case domain.RoleTA:
		if req.CourseCode == nil || req.SectionID == nil {
			return nil, utils.Forbidden("TAs must announce to one of their sections.")
		}
		var assigned bool
		err := s.pool.QueryRow(ctx, `
            SELECT EXISTS (SELECT 1 FROM sections WHERE course_code = $1 AND section_id = $2 AND ta_id = $3);
        `, *req.CourseCode, *req.SectionID, sender.ID).Scan(&assigned)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, utils.Forbidden("You are not assigned to this section.")
		}
	default:
		return nil, utils.Forbidden("Students cannot send announcements.")
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		id := uuid.NewString()
		var a domain.Announcement
		err := s.pool.QueryRow(ctx, `
            INSERT INTO announcements (id, sender_id, sender_role, title, content, course_code, section_id)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            RETURNING id, sender_id, sender_role, title, content, course_code, section_id, created_at;
        `, id, sender.ID, sender.Role, req.Title, req.Content, req.CourseCode, req.SectionID).Scan(
			&a.ID, &a.SenderID, &a.SenderRole, &a.Title, &a.Content,
			&a.CourseCode, &a.SectionID, &a.CreatedAt,
		)
		if err == nil {
			a.Sender = domain.AnnouncementSender{
				ID: sender.ID, Name: sender.Name, Role: sender.Role,
				ProfilePicture: sender.ProfilePicture,
			}
			return &a, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("could not allocate announcement id: %w", lastErr)
}

// StudentFeed returns the undeleted announcements visible to one student:
// admin-wide posts plus those of registered courses and sections, newest
// first.
func (s *Storage) StudentFeed(ctx context.Context, studentID string) ([]domain.Announcement, error) {
	const query = `
        SELECT a.id, a.sender_id, a.sender_role, a.title, a.content, a.course_code, a.section_id,
               a.created_at, u.name, u.profile_picture
        FROM announcements a JOIN users u ON u.id = a.sender_id
        WHERE NOT a.is_deleted
          AND (a.sender_role = 'admin'
               OR (a.section_id IS NULL AND a.course_code IN
                      (SELECT course_code FROM course_registrations WHERE student_id = $1))
               OR ((a.course_code, a.section_id) IN
                      (SELECT course_code, section_id FROM section_registrations WHERE student_id = $1)))
        ORDER BY a.created_at DESC;
    `
	rows, err := s.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feed []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.SenderID, &a.SenderRole, &a.Title, &a.Content,
			&a.CourseCode, &a.SectionID, &a.CreatedAt, &a.Sender.Name, &a.Sender.ProfilePicture); err != nil {
			return nil, err
		}
		a.Sender.ID = a.SenderID
		a.Sender.Role = a.SenderRole
		feed = append(feed, a)
	}
	return feed, rows.Err()
}

// DeleteAnnouncement soft-deletes; only the sender or an admin may delete.
func (s *Storage) DeleteAnnouncement(ctx context.Context, id string, caller *domain.User) error {
	var senderID string
	err := s.pool.QueryRow(ctx,
		`SELECT sender_id FROM announcements WHERE id = $1 AND NOT is_deleted;`, id).Scan(&senderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin && caller.ID != senderID {
		return utils.Forbidden("Only the sender or an admin can delete an announcement.")
	}

	_, err = s.pool.Exec(ctx, `
        UPDATE announcements SET is_deleted = TRUE, deleted_by = $2, deleted_at = now() WHERE id = $1;
    `, id, caller.ID)
	return err
}
