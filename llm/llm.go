// Package llm provides an abstraction over the generative model capability.
package llm

import "context"

// Role tags a turn sent to the model. The model only understands a
// two-party conversation: user turns and its own prior turns.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one role-tagged text turn of model input.
type Turn struct {
	Role Role
	Text string
}

// Config bounds a single generation call.
type Config struct {
	Temperature     float32
	MaxOutputTokens int32
	// DisableThinking requests non-deliberative, low-latency generation
	// where the model supports it.
	DisableThinking bool
}

// StreamCallback is called for each text fragment of a streaming response,
// in generation order. Return an error to abort the stream.
type StreamCallback func(text string) error

// Generator defines the model capability: whole-response and incremental
// generation over an ordered turn sequence. Both modes honor context
// cancellation.
type Generator interface {
	Generate(ctx context.Context, turns []Turn, cfg Config) (string, error)
	GenerateStream(ctx context.Context, turns []Turn, cfg Config, callback StreamCallback) error
}
