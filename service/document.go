package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voxchat/backend/domain"
)

// UploadDocument stores an uploaded file. Content is hex-encoded for
// storage; no parsing or indexing happens here.
func (s *Service) UploadDocument(ctx context.Context, owner, fileName, fileType string, content []byte) (*domain.Document, error) {
	doc := &domain.Document{
		ID:       uuid.New().String(),
		UserID:   owner,
		FileName: fileName,
		FileType: fileType,
		FileSize: int64(len(content)),
		Status:   "uploaded",
		Content:  hex.EncodeToString(content),
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument returns a document including its content. Ownership mismatch
// reports domain.ErrNotFound.
func (s *Service) GetDocument(ctx context.Context, owner, docRef string) (*domain.Document, error) {
	id, err := uuid.Parse(docRef)
	if err != nil {
		return nil, domain.ErrInvalidReference
	}
	doc, err := s.store.GetDocument(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	if doc == nil || doc.UserID != owner {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// ListDocuments returns the owner's documents without content.
func (s *Service) ListDocuments(ctx context.Context, owner string) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx, owner)
}

// QueryDocument answers a natural-language question about a document.
// Retrieval is stubbed: the answer is a canned response until a real
// retrieval pipeline exists.
func (s *Service) QueryDocument(ctx context.Context, owner, docRef, query string) (*domain.DocumentAnswer, error) {
	doc, err := s.GetDocument(ctx, owner, docRef)
	if err != nil {
		return nil, err
	}
	return &domain.DocumentAnswer{
		Answer:         fmt.Sprintf("This is a mock answer to your query: '%s' about the document '%s'.", query, doc.FileName),
		SourceDocument: doc.FileName,
		Confidence:     0.85,
		Timestamp:      time.Now().UTC(),
	}, nil
}
