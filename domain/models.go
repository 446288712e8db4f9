// Package domain defines the core domain models for the chat backend.
package domain

import (
	"time"
)

// Role classifies the origin of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Session represents a conversation session. Sessions are soft-deleted:
// IsActive=false hides the session but leaves its messages in place.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents a single turn in a session. Messages are append-only
// and never mutated after creation.
type Message struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Document represents an uploaded document. Content is hex-encoded.
type Document struct {
	ID        string    `json:"document_id"`
	UserID    string    `json:"-"`
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	Status    string    `json:"status"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"uploaded_at"`
}

// ChatReply is the synchronous completion result.
type ChatReply struct {
	Message   string    `json:"message"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// VoiceReply is the result of a voice exchange. AudioResponse is nil until
// TTS is implemented.
type VoiceReply struct {
	TextResponse  string    `json:"text_response"`
	AudioResponse *string   `json:"audio_response"`
	SessionID     string    `json:"session_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// ChatHistory is the full message history of a session, oldest first.
type ChatHistory struct {
	SessionID     string    `json:"session_id"`
	Messages      []Message `json:"messages"`
	TotalMessages int       `json:"total_messages"`
}

// DocumentAnswer is the result of a natural-language document query.
type DocumentAnswer struct {
	Answer         string    `json:"answer"`
	SourceDocument string    `json:"source_document"`
	Confidence     float64   `json:"confidence"`
	Timestamp      time.Time `json:"timestamp"`
}
