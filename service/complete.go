package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/voxchat/backend/domain"
	"github.com/voxchat/backend/llm"
)

// Complete runs a synchronous exchange: resolve the session, persist the
// user turn, build the context window, call the model, persist the reply.
//
// Each store write commits independently. If the model call fails the user
// turn stays persisted, leaving the conversation in an "awaiting reply"
// state the caller can retry without re-sending. If persisting the user
// turn fails, the model is never called.
func (s *Service) Complete(ctx context.Context, owner, message, sessionRef string) (*domain.ChatReply, error) {
	session, _, err := s.resolveSession(ctx, owner, sessionRef, deriveTitle(message))
	if err != nil {
		return nil, err
	}

	if _, err := s.store.CreateMessage(ctx, session.ID, domain.RoleUser, message); err != nil {
		return nil, fmt.Errorf("saving user message: %w", err)
	}

	turns, err := s.buildWindow(ctx, session.ID, true)
	if err != nil {
		return nil, err
	}
	turns = append(turns, llm.Turn{Role: llm.RoleUser, Text: message})

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.LLMTimeout)
	defer cancel()
	reply, err := s.llm.Generate(genCtx, turns, llm.Config{
		Temperature:     temperature,
		MaxOutputTokens: maxOutputTokens,
		DisableThinking: true,
	})
	if err != nil {
		log.Printf("ERROR: model call failed for session %s: %v", session.ID, err)
		return nil, domain.ErrServiceUnavailable
	}

	if _, err := s.store.CreateMessage(ctx, session.ID, domain.RoleAssistant, reply); err != nil {
		return nil, fmt.Errorf("saving assistant message: %w", err)
	}

	return &domain.ChatReply{
		Message:   reply,
		SessionID: session.ID,
		Timestamp: time.Now().UTC(),
	}, nil
}
