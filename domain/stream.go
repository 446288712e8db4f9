package domain

// StreamEventType tags a streaming completion event.
type StreamEventType string

const (
	// StreamSessionStarted is emitted once, before any content, when the
	// request created a new session.
	StreamSessionStarted StreamEventType = "session_started"
	// StreamChunk carries one fragment of the reply in generation order.
	StreamChunk StreamEventType = "chunk"
	// StreamComplete is the terminal success marker.
	StreamComplete StreamEventType = "complete"
	// StreamError is the terminal failure marker, emitted instead of
	// StreamComplete. Already-sent chunks are not retracted.
	StreamError StreamEventType = "error"
)

// StreamEvent is one event of a streaming completion. Exactly one terminal
// event (StreamComplete or StreamError) ends every sequence.
type StreamEvent struct {
	Type      StreamEventType
	SessionID string
	Chunk     string
	Error     string
}

// SessionStartedEvent announces a newly created session id.
func SessionStartedEvent(sessionID string) StreamEvent {
	return StreamEvent{Type: StreamSessionStarted, SessionID: sessionID}
}

// ChunkEvent carries one reply fragment.
func ChunkEvent(text string) StreamEvent {
	return StreamEvent{Type: StreamChunk, Chunk: text}
}

// CompleteEvent is the terminal success event.
func CompleteEvent() StreamEvent {
	return StreamEvent{Type: StreamComplete}
}

// ErrorEvent is the terminal failure event.
func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: StreamError, Error: message}
}
