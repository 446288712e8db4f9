package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voxchat/backend/domain"
)

// TextChatRequest is the request body for text chat, sync and streaming.
type TextChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// VoiceChatRequest is the request body for voice chat.
type VoiceChatRequest struct {
	AudioData string `json:"audio_data"`
	SessionID string `json:"session_id"`
}

// TextChat handles a synchronous chat exchange.
// POST /api/v1/chat/text
func (h *Handler) TextChat(c echo.Context) error {
	var req TextChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	reply, err := h.svc.Complete(c.Request().Context(), owner(c), req.Message, req.SessionID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, reply)
}

// TextChatStream handles a streaming chat exchange over server-sent events.
// POST /api/v1/chat/text/stream
//
// The wire format is one event per line pair: "data: <JSON>\n\n", flushed
// immediately. Event shapes: {"session_id": id}, {"chunk": text},
// {"complete": true}, {"error": message}. Resolution failures arrive as a
// terminal error event on an already-started stream, never as an HTTP error
// status.
func (h *Handler) TextChatStream(c echo.Context) error {
	var req TextChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return fmt.Errorf("response writer does not support streaming")
	}

	emit := func(ev domain.StreamEvent) error {
		data, err := encodeStreamEvent(ev)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Response().Writer, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := h.svc.CompleteStream(c.Request().Context(), owner(c), req.Message, req.SessionID, emit); err != nil {
		// The client disconnected or the write failed; the stream is over
		// either way.
		return nil
	}
	return nil
}

// encodeStreamEvent produces the exact JSON shape for each event type.
func encodeStreamEvent(ev domain.StreamEvent) ([]byte, error) {
	switch ev.Type {
	case domain.StreamSessionStarted:
		return json.Marshal(struct {
			SessionID string `json:"session_id"`
		}{ev.SessionID})
	case domain.StreamChunk:
		return json.Marshal(struct {
			Chunk string `json:"chunk"`
		}{ev.Chunk})
	case domain.StreamComplete:
		return json.Marshal(struct {
			Complete bool `json:"complete"`
		}{true})
	case domain.StreamError:
		return json.Marshal(struct {
			Error string `json:"error"`
		}{ev.Error})
	default:
		return nil, fmt.Errorf("unknown stream event type %q", ev.Type)
	}
}

// VoiceChat handles a voice exchange with stubbed STT/TTS.
// POST /api/v1/chat/voice
func (h *Handler) VoiceChat(c echo.Context) error {
	var req VoiceChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.AudioData == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "audio_data is required"})
	}

	reply, err := h.svc.VoiceChat(c.Request().Context(), owner(c), req.AudioData, req.SessionID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, reply)
}
