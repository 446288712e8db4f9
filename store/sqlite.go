package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voxchat/backend/domain"
)

// SQLiteStore implements Store using SQLite. Timestamps are stored as unix
// nanoseconds so that two writes within the same request keep their order.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store on top of an already-migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

var _ Store = (*SQLiteStore)(nil)

// CreateSession creates a new active session owned by userID.
func (s *SQLiteStore) CreateSession(ctx context.Context, userID, title string) (*domain.Session, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, user_id, title, is_active, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?)`,
		session.ID, session.UserID, session.Title, now.UnixNano(), now.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by ID, active or not.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, is_active, created_at, updated_at FROM chat_sessions WHERE id = ?`, id)
	return scanSession(row)
}

// ListSessions returns the owner's active sessions, most recently updated first.
func (s *SQLiteStore) ListSessions(ctx context.Context, userID string) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, is_active, created_at, updated_at
		 FROM chat_sessions WHERE user_id = ? AND is_active = 1
		 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		var sess domain.Session
		var active int
		var createdAt, updatedAt int64
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.Title, &active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sess.IsActive = active != 0
		sess.CreatedAt = time.Unix(0, createdAt).UTC()
		sess.UpdatedAt = time.Unix(0, updatedAt).UTC()
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// UpdateSessionTitle sets a session's title. Returns (nil, nil) if the
// session does not exist.
func (s *SQLiteStore) UpdateSessionTitle(ctx context.Context, id, title string) (*domain.Session, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chat_sessions SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now().UTC().UnixNano(), id)
	if err != nil {
		return nil, fmt.Errorf("updating session title: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetSession(ctx, id)
}

// DeactivateSession soft-deletes a session. Messages already written stay in
// place. Returns (nil, nil) if the session does not exist.
func (s *SQLiteStore) DeactivateSession(ctx context.Context, id string) (*domain.Session, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chat_sessions SET is_active = 0, updated_at = ? WHERE id = ?`,
		time.Now().UTC().UnixNano(), id)
	if err != nil {
		return nil, fmt.Errorf("deactivating session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetSession(ctx, id)
}

// CreateMessage appends a turn to a session and bumps the session's
// updated_at so recency ordering reflects conversation activity.
func (s *SQLiteStore) CreateMessage(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Message, error) {
	now := time.Now().UTC()
	msg := &domain.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, session_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, string(msg.Role), msg.Content, now.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, now.UnixNano(), sessionID); err != nil {
		return nil, fmt.Errorf("touching session: %w", err)
	}
	return msg, nil
}

// GetRecentMessages returns up to limit messages of a session, newest first.
func (s *SQLiteStore) GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, created_at, updated_at
		 FROM chat_messages WHERE session_id = ?
		 ORDER BY created_at DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("getting recent messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListMessages returns all messages of a session in chronological order.
func (s *SQLiteStore) ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, created_at, updated_at
		 FROM chat_messages WHERE session_id = ?
		 ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// CountMessages returns the number of messages in a session.
func (s *SQLiteStore) CountMessages(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return count, nil
}

// CreateDocument stores an uploaded document. The caller sets all fields
// except CreatedAt.
func (s *SQLiteStore) CreateDocument(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, user_id, file_name, file_type, file_size, status, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.UserID, doc.FileName, doc.FileType, doc.FileSize, doc.Status, doc.Content, now.UnixNano())
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, file_name, file_type, file_size, status, content, created_at
		 FROM documents WHERE id = ?`, id).
		Scan(&doc.ID, &doc.UserID, &doc.FileName, &doc.FileType, &doc.FileSize, &doc.Status, &doc.Content, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	doc.CreatedAt = time.Unix(0, createdAt).UTC()
	return &doc, nil
}

// ListDocuments returns the owner's documents, newest first, without content.
func (s *SQLiteStore) ListDocuments(ctx context.Context, userID string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, file_name, file_type, file_size, status, created_at
		 FROM documents WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var doc domain.Document
		var createdAt int64
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.FileName, &doc.FileType, &doc.FileSize, &doc.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.CreatedAt = time.Unix(0, createdAt).UTC()
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func scanSession(row *sql.Row) (*domain.Session, error) {
	var sess domain.Session
	var active int
	var createdAt, updatedAt int64
	err := row.Scan(&sess.ID, &sess.UserID, &sess.Title, &active, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	sess.IsActive = active != 0
	sess.CreatedAt = time.Unix(0, createdAt).UTC()
	sess.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &sess, nil
}

func scanMessages(rows *sql.Rows) ([]domain.Message, error) {
	messages := []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		var role string
		var createdAt int64
		var updatedAt sql.NullInt64
		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Content, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Role = domain.Role(role)
		msg.CreatedAt = time.Unix(0, createdAt).UTC()
		if updatedAt.Valid {
			t := time.Unix(0, updatedAt.Int64).UTC()
			msg.UpdatedAt = &t
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
