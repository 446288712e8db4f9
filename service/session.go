package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/voxchat/backend/domain"
)

const (
	defaultTitle = "New Chat"
	titleMaxLen  = 50
	// Seeds at or below this length produce the default title.
	titleMinSeed = 3
)

// deriveTitle builds a session title from the first message.
func deriveTitle(seed string) string {
	if utf8.RuneCountInString(seed) <= titleMinSeed {
		return defaultTitle
	}
	runes := []rune(seed)
	if len(runes) > titleMaxLen {
		runes = runes[:titleMaxLen]
	}
	return string(runes)
}

// resolveSession returns the session a request operates on. With an empty
// sessionRef it creates a new session titled title; otherwise it parses and
// looks up the reference. A session that is missing, inactive, or owned by
// someone else is reported as domain.ErrNotFound in all three cases.
func (s *Service) resolveSession(ctx context.Context, owner, sessionRef, title string) (*domain.Session, bool, error) {
	if sessionRef == "" {
		session, err := s.store.CreateSession(ctx, owner, title)
		if err != nil {
			return nil, false, fmt.Errorf("creating session: %w", err)
		}
		return session, true, nil
	}

	id, err := uuid.Parse(sessionRef)
	if err != nil {
		return nil, false, domain.ErrInvalidReference
	}
	session, err := s.store.GetSession(ctx, id.String())
	if err != nil {
		return nil, false, fmt.Errorf("getting session: %w", err)
	}
	if session == nil || session.UserID != owner || !session.IsActive {
		return nil, false, domain.ErrNotFound
	}
	return session, false, nil
}

// verifyOwned looks up a session for an administrative operation. Unlike
// resolveSession it accepts inactive sessions, so deactivation stays
// idempotent for the owner.
func (s *Service) verifyOwned(ctx context.Context, owner, sessionRef string) (*domain.Session, error) {
	id, err := uuid.Parse(sessionRef)
	if err != nil {
		return nil, domain.ErrInvalidReference
	}
	session, err := s.store.GetSession(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	if session == nil || session.UserID != owner {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

// ListSessions returns the owner's active sessions.
func (s *Service) ListSessions(ctx context.Context, owner string) ([]domain.Session, error) {
	return s.store.ListSessions(ctx, owner)
}

// CreateSession creates a session with an explicit title.
func (s *Service) CreateSession(ctx context.Context, owner, title string) (*domain.Session, error) {
	if title == "" {
		title = defaultTitle
	}
	return s.store.CreateSession(ctx, owner, title)
}

// RenameSession updates a session's title after verifying ownership.
func (s *Service) RenameSession(ctx context.Context, owner, sessionRef, title string) (*domain.Session, error) {
	session, err := s.verifyOwned(ctx, owner, sessionRef)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateSessionTitle(ctx, session.ID, title)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

// DeactivateSession soft-deletes a session after verifying ownership. The
// session's messages are not removed.
func (s *Service) DeactivateSession(ctx context.Context, owner, sessionRef string) (*domain.Session, error) {
	session, err := s.verifyOwned(ctx, owner, sessionRef)
	if err != nil {
		return nil, err
	}
	deactivated, err := s.store.DeactivateSession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if deactivated == nil {
		return nil, domain.ErrNotFound
	}
	return deactivated, nil
}

// History returns a session's full message history in chronological order
// with the total count.
func (s *Service) History(ctx context.Context, owner, sessionRef string) (*domain.ChatHistory, error) {
	session, err := s.verifyOwned(ctx, owner, sessionRef)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.ListMessages(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return &domain.ChatHistory{
		SessionID:     session.ID,
		Messages:      messages,
		TotalMessages: len(messages),
	}, nil
}
