package service

import (
	"context"
	"fmt"

	"github.com/voxchat/backend/domain"
	"github.com/voxchat/backend/llm"
)

// Per-message framing overhead and end-of-conversation overhead, in tokens.
const (
	messageTokenOverhead      = 4
	conversationTokenOverhead = 3
)

// buildWindow assembles the context window for a model call: the most
// recent HistoryWindow turns in chronological order, trimmed oldest-first
// to the configured token budget. With excludeLast the newest turn, the
// caller's just-persisted user message, is dropped: the orchestrator appends
// the original text itself so nothing the store did to the stored copy can
// alter what the model sees.
//
// Role mapping collapses the conversation to two parties: assistant turns
// become model turns, everything else (user and system alike) becomes a
// user turn. This is a deliberate simplification, not a general multi-role
// protocol.
func (s *Service) buildWindow(ctx context.Context, sessionID string, excludeLast bool) ([]llm.Turn, error) {
	messages, err := s.store.GetRecentMessages(ctx, sessionID, s.cfg.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("getting recent messages: %w", err)
	}

	// Newest first; the just-persisted turn is messages[0].
	if excludeLast && len(messages) > 0 {
		messages = messages[1:]
	}

	// Reverse to chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	messages = s.trimToBudget(messages)

	turns := make([]llm.Turn, 0, len(messages))
	for _, msg := range messages {
		role := llm.RoleUser
		if msg.Role == domain.RoleAssistant {
			role = llm.RoleModel
		}
		turns = append(turns, llm.Turn{Role: role, Text: msg.Content})
	}
	return turns, nil
}

// trimToBudget keeps the longest suffix of messages that fits the token
// budget, so the most recent turns survive.
func (s *Service) trimToBudget(messages []domain.Message) []domain.Message {
	budget := s.cfg.HistoryTokenBudget
	if budget <= 0 {
		return messages
	}
	total := conversationTokenOverhead
	start := len(messages)
	for i := len(messages) - 1; i >= 0; i-- {
		cost := s.estimator.count(messages[i].Content) + messageTokenOverhead
		if total+cost > budget {
			break
		}
		total += cost
		start = i
	}
	return messages[start:]
}
