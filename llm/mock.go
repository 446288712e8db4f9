package llm

import (
	"context"
	"strings"
)

// MockGenerator is a scriptable Generator for tests. Zero value echoes the
// last user turn.
type MockGenerator struct {
	// Reply is returned by Generate when non-empty.
	Reply string
	// Chunks are emitted one by one by GenerateStream. When nil, Reply (or
	// the echo) is split into small fragments.
	Chunks []string
	// Err, when set, fails Generate immediately and fails GenerateStream
	// after all Chunks have been emitted.
	Err error

	// Calls counts invocations of either mode.
	Calls int
	// LastTurns records the turn sequence of the most recent call.
	LastTurns []Turn
}

var _ Generator = (*MockGenerator)(nil)

// Generate returns the scripted reply.
func (m *MockGenerator) Generate(ctx context.Context, turns []Turn, cfg Config) (string, error) {
	m.Calls++
	m.LastTurns = turns
	if m.Err != nil {
		return "", m.Err
	}
	return m.reply(turns), nil
}

// GenerateStream emits the scripted chunks, then the scripted error if any.
func (m *MockGenerator) GenerateStream(ctx context.Context, turns []Turn, cfg Config, callback StreamCallback) error {
	m.Calls++
	m.LastTurns = turns
	chunks := m.Chunks
	if chunks == nil {
		chunks = splitChunks(m.reply(turns), 8)
	}
	for _, chunk := range chunks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := callback(chunk); err != nil {
			return err
		}
	}
	if m.Err != nil {
		return m.Err
	}
	return ctx.Err()
}

func (m *MockGenerator) reply(turns []Turn) string {
	if m.Reply != "" {
		return m.Reply
	}
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == RoleUser {
			return "You said: " + turns[i].Text
		}
	}
	return "Hello."
}

func splitChunks(s string, size int) []string {
	var chunks []string
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(r)
		if b.Len() >= size {
			chunks = append(chunks, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
