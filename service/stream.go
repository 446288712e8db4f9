package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/voxchat/backend/domain"
	"github.com/voxchat/backend/llm"
)

// CompleteStream runs a streaming exchange, delivering events through emit.
//
// Failures before or during generation are encoded as a terminal ErrorEvent
// rather than returned, because by the time they occur the transport has
// usually already committed to a success status. CompleteStream itself
// returns an error only when emit fails or the caller's context is
// canceled; in both cases the caller is gone, generation stops, and no
// assistant turn is persisted.
//
// The assistant turn is written once, from the full concatenation of all
// chunks, only after the model finished cleanly. A mid-stream model failure
// persists nothing: already-delivered chunks are the client's to discard.
func (s *Service) CompleteStream(ctx context.Context, owner, message, sessionRef string, emit func(domain.StreamEvent) error) error {
	session, created, err := s.resolveSession(ctx, owner, sessionRef, deriveTitle(message))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReference):
			return emit(domain.ErrorEvent("Invalid session ID format"))
		case errors.Is(err, domain.ErrNotFound):
			return emit(domain.ErrorEvent("Chat session not found"))
		default:
			log.Printf("ERROR: resolving session for stream: %v", err)
			return emit(domain.ErrorEvent("Internal server error"))
		}
	}
	if created {
		if err := emit(domain.SessionStartedEvent(session.ID)); err != nil {
			return err
		}
	}

	if _, err := s.store.CreateMessage(ctx, session.ID, domain.RoleUser, message); err != nil {
		log.Printf("ERROR: saving user message for session %s: %v", session.ID, err)
		return emit(domain.ErrorEvent("Internal server error"))
	}

	turns, err := s.buildWindow(ctx, session.ID, true)
	if err != nil {
		log.Printf("ERROR: building context window for session %s: %v", session.ID, err)
		return emit(domain.ErrorEvent("Internal server error"))
	}
	turns = append(turns, llm.Turn{Role: llm.RoleUser, Text: message})

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.LLMTimeout)
	defer cancel()

	var full strings.Builder
	err = s.llm.GenerateStream(genCtx, turns, llm.Config{
		Temperature:     temperature,
		MaxOutputTokens: streamMaxOutputTokens,
		DisableThinking: true,
	}, func(chunk string) error {
		full.WriteString(chunk)
		return emit(domain.ChunkEvent(chunk))
	})
	if err != nil {
		if ctx.Err() != nil {
			// Client is gone; nothing to tell it and nothing to save.
			return ctx.Err()
		}
		log.Printf("ERROR: streaming model call failed for session %s: %v", session.ID, err)
		return emit(domain.ErrorEvent("AI service temporarily unavailable"))
	}

	if _, err := s.store.CreateMessage(ctx, session.ID, domain.RoleAssistant, full.String()); err != nil {
		log.Printf("ERROR: saving assistant message for session %s: %v", session.ID, err)
		return emit(domain.ErrorEvent("Internal server error"))
	}

	return emit(domain.CompleteEvent())
}
