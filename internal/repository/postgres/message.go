package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

func (s *Storage) SendMessage(ctx context.Context, sender *domain.User, req *domain.SendMessageRequest) (*domain.Message, error) {
	receiver, err := s.GetUserByID(ctx, req.ReceiverID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.NotFound("Receiver not found.")
	}
	if err != nil {
		return nil, err
	}

	var m domain.Message
	err = s.pool.QueryRow(ctx, `
        INSERT INTO messages (id, sender_id, sender_role, receiver_id, receiver_role, content)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, sender_id, sender_role, receiver_id, receiver_role, content, status, created_at;
    `, uuid.NewString(), sender.ID, sender.Role, receiver.ID, receiver.Role, req.Content).Scan(
		&m.ID, &m.SenderID, &m.SenderRole, &m.ReceiverID, &m.ReceiverRole,
		&m.Content, &m.Status, &m.CreatedAt,
	)
	return &m, err
}

// Conversation returns the two-way history between the caller and one
// counterpart, oldest first, skipping messages the caller deleted.
// Fetching marks the counterpart's unread messages as read.
func (s *Storage) Conversation(ctx context.Context, callerID, otherID string) ([]domain.Message, error) {
	const query = `
        SELECT m.id, m.sender_id, m.sender_role, m.receiver_id, m.receiver_role,
               m.content, m.status, m.created_at
        FROM messages m
        WHERE ((m.sender_id = $1 AND m.receiver_id = $2) OR (m.sender_id = $2 AND m.receiver_id = $1))
          AND NOT EXISTS (SELECT 1 FROM message_deletions d
                          WHERE d.message_id = m.id AND d.user_id = $1)
        ORDER BY m.created_at;
    `
	rows, err := s.pool.Query(ctx, query, callerID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderRole, &m.ReceiverID, &m.ReceiverRole,
			&m.Content, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	_, err = s.pool.Exec(ctx, `
        UPDATE messages SET status = 'read'
        WHERE sender_id = $2 AND receiver_id = $1 AND status <> 'read';
    `, callerID, otherID)
	return messages, err
}

// Conversations summarizes the caller's message history, one row per
// counterpart with the latest message and the unread count.
func (s *Storage) Conversations(ctx context.Context, callerID string) ([]domain.Conversation, error) {
	const query = `
        SELECT DISTINCT ON (other.id)
               other.id, other.name, other.role, m.content, m.created_at,
               (SELECT COUNT(*) FROM messages u
                WHERE u.sender_id = other.id AND u.receiver_id = $1 AND u.status <> 'read')
        FROM messages m
        JOIN users other ON other.id = CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END
        WHERE (m.sender_id = $1 OR m.receiver_id = $1)
          AND NOT EXISTS (SELECT 1 FROM message_deletions d
                          WHERE d.message_id = m.id AND d.user_id = $1)
        ORDER BY other.id, m.created_at DESC;
    `
	rows, err := s.pool.Query(ctx, query, callerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.WithUser, &c.Name, &c.Role, &c.LastMessage, &c.LastAt, &c.UnreadCount); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// DeleteMessage hides the message for the caller only; the other side
// keeps their copy.
func (s *Storage) DeleteMessage(ctx context.Context, messageID, callerID string) error {
	var senderID, receiverID string
	err := s.pool.QueryRow(ctx,
		`SELECT sender_id, receiver_id FROM messages WHERE id = $1;`, messageID).Scan(&senderID, &receiverID)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	if err != nil {
		return err
	}
	if callerID != senderID && callerID != receiverID {
		return utils.Forbidden("You are not part of this conversation.")
	}

	_, err = s.pool.Exec(ctx, `
        INSERT INTO message_deletions (message_id, user_id) VALUES ($1, $2)
        ON CONFLICT DO NOTHING;
    `, messageID, callerID)
	return err
}
