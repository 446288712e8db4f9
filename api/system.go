package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Version is the reported service version.
const Version = "1.0.0"

// ModelInfo describes one entry of the model catalog.
type ModelInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Capabilities []string `json:"capabilities"`
	IsAvailable  bool     `json:"is_available"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// ListModels returns the static model catalog.
// GET /api/v1/models
func (h *Handler) ListModels(c echo.Context) error {
	models := []ModelInfo{
		{
			ID:           "gemini-2.0-flash-001",
			Name:         "Gemini 2.0 Flash",
			Type:         "text-generation",
			Capabilities: []string{"text-chat", "document-query", "code-generation"},
			IsAvailable:  true,
		},
		{
			ID:           "whisper-1",
			Name:         "Whisper",
			Type:         "speech-to-text",
			Capabilities: []string{"voice-transcription"},
			IsAvailable:  false,
		},
		{
			ID:           "tts-1",
			Name:         "TTS-1",
			Type:         "text-to-speech",
			Capabilities: []string{"voice-synthesis"},
			IsAvailable:  false,
		},
	}
	return c.JSON(http.StatusOK, models)
}

// Health reports service health.
// GET /api/v1/health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Services: map[string]string{
			"database":         "healthy",
			"ai_models":        "healthy",
			"voice_processing": "stubbed",
			"document_storage": "healthy",
		},
	})
}
