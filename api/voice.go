package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// STTRequest is the request body for speech-to-text.
type STTRequest struct {
	AudioData string `json:"audio_data"`
	Language  string `json:"language"`
}

// TTSRequest is the request body for text-to-speech.
type TTSRequest struct {
	Text     string `json:"text"`
	Voice    string `json:"voice"`
	Language string `json:"language"`
}

// SpeechToText converts audio to text. Mock implementation.
// POST /api/v1/voice/stt
func (h *Handler) SpeechToText(c echo.Context) error {
	var req STTRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.AudioData == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "audio_data is required"})
	}
	if req.Language == "" {
		req.Language = "en-US"
	}
	return c.JSON(http.StatusOK, h.svc.Transcribe(req.AudioData, req.Language))
}

// TextToSpeech converts text to audio. Mock implementation.
// POST /api/v1/voice/tts
func (h *Handler) TextToSpeech(c echo.Context) error {
	var req TTSRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}
	if req.Voice == "" {
		req.Voice = "alloy"
	}
	return c.JSON(http.StatusOK, h.svc.Synthesize(req.Text, req.Voice))
}
