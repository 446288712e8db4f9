// Package store defines the storage interface and its SQLite implementation.
package store

import (
	"context"

	"github.com/voxchat/backend/domain"
)

// Store defines the interface for data persistence. Lookup methods return
// (nil, nil) when the row does not exist; callers decide what absence means.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, userID, title string) (*domain.Session, error)
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	ListSessions(ctx context.Context, userID string) ([]domain.Session, error)
	UpdateSessionTitle(ctx context.Context, id, title string) (*domain.Session, error)
	DeactivateSession(ctx context.Context, id string) (*domain.Session, error)

	// Message operations
	CreateMessage(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Message, error)
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)
	ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error)
	CountMessages(ctx context.Context, sessionID string) (int, error)

	// Document operations
	CreateDocument(ctx context.Context, doc *domain.Document) error
	GetDocument(ctx context.Context, id string) (*domain.Document, error)
	ListDocuments(ctx context.Context, userID string) ([]domain.Document, error)
}
