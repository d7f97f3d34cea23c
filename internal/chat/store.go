package chat

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mydpo/mydpo/internal/db"
)

// Store persists chat sessions and their messages.
type Store struct {
	db *db.DB
}

// NewStore creates a new chat store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// CreateSession starts a new conversation.
func (s *Store) CreateSession(ctx context.Context, orgID, userID string) (*Session, error) {
	if userID == "" {
		userID = "anonymous"
	}
	sess := Session{
		ID:        uuid.NewString(),
		OrgID:     orgID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (id, org_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.OrgID, sess.UserID,
		sess.CreatedAt.Format(time.DateTime), sess.UpdatedAt.Format(time.DateTime),
	)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetSession returns a session by id, or nil when absent.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, org_id, user_id, created_at, updated_at FROM chat_sessions WHERE id = ?`, id)

	var sess Session
	var createdAt, updatedAt string
	err := row.Scan(&sess.ID, &sess.OrgID, &sess.UserID, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if t, err := time.Parse(time.DateTime, createdAt); err == nil {
		sess.CreatedAt = t
	}
	if t, err := time.Parse(time.DateTime, updatedAt); err == nil {
		sess.UpdatedAt = t
	}
	return &sess, nil
}

// AppendMessage records one conversation turn.
func (s *Store) AppendMessage(ctx context.Context, sessionID, role, content string) error {
	now := time.Now().UTC().Format(time.DateTime)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, session_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionID, role, content, now,
	)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, now, sessionID)
	return err
}

// History returns a session's messages oldest first, capped at limit.
func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]StoredMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, created_at FROM chat_messages
		WHERE session_id = ? ORDER BY created_at ASC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []StoredMessage
	for rows.Next() {
		var m StoredMessage
		var createdAt string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &createdAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.DateTime, createdAt); err == nil {
			m.CreatedAt = t
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
