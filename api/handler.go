// Package api provides the HTTP handlers for the chat backend.
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voxchat/backend/domain"
	"github.com/voxchat/backend/service"
)

// Handler handles HTTP requests.
type Handler struct {
	svc *service.Service
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all routes under /api/v1. Every route except the
// system endpoints requires an owner identity.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	// System endpoints are unauthenticated.
	v1.GET("/health", h.Health)
	v1.GET("/models", h.ListModels)

	authed := v1.Group("", RequireOwner)

	authed.POST("/chat/text", h.TextChat)
	authed.POST("/chat/text/stream", h.TextChatStream)
	authed.POST("/chat/voice", h.VoiceChat)
	authed.GET("/chat/history/:session_id", h.GetChatHistory)
	authed.GET("/chat/sessions", h.ListSessions)
	authed.POST("/chat/sessions", h.CreateSession)
	authed.PUT("/chat/sessions/:session_id/title", h.UpdateSessionTitle)
	authed.DELETE("/chat/sessions/:session_id", h.DeleteSession)

	authed.POST("/voice/stt", h.SpeechToText)
	authed.POST("/voice/tts", h.TextToSpeech)

	authed.POST("/documents/upload", h.UploadDocument)
	authed.GET("/documents", h.ListDocuments)
	authed.GET("/documents/:doc_id", h.GetDocument)
	authed.POST("/documents/query", h.QueryDocument)
}

// ownerKey is the echo context key the owner identity is stored under.
const ownerKey = "owner"

// RequireOwner extracts the opaque owner identity supplied by the auth
// collaborator. Requests without one are rejected.
func RequireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner := c.Request().Header.Get("X-User-ID")
		if owner == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user identity"})
		}
		c.Set(ownerKey, owner)
		return next(c)
	}
}

func owner(c echo.Context) string {
	id, _ := c.Get(ownerKey).(string)
	return id
}

// jsonError maps domain errors to HTTP responses. Unknown errors are logged
// with context and surfaced as an opaque 500.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidReference):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid session ID format"})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrServiceUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "The AI service is currently unavailable. Please try again later."})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
