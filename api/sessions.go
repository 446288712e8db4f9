package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UpdateTitleRequest is the request body for renaming a session.
type UpdateTitleRequest struct {
	Title string `json:"title"`
}

// ListSessions returns the caller's active sessions.
// GET /api/v1/chat/sessions
func (h *Handler) ListSessions(c echo.Context) error {
	sessions, err := h.svc.ListSessions(c.Request().Context(), owner(c))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, sessions)
}

// CreateSession creates a session with an explicit title.
// POST /api/v1/chat/sessions?title=...
func (h *Handler) CreateSession(c echo.Context) error {
	title := c.QueryParam("title")
	session, err := h.svc.CreateSession(c.Request().Context(), owner(c), title)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// UpdateSessionTitle renames a session.
// PUT /api/v1/chat/sessions/:session_id/title
func (h *Handler) UpdateSessionTitle(c echo.Context) error {
	var req UpdateTitleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}

	session, err := h.svc.RenameSession(c.Request().Context(), owner(c), c.Param("session_id"), req.Title)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// DeleteSession soft-deletes a session. Its messages are kept.
// DELETE /api/v1/chat/sessions/:session_id
func (h *Handler) DeleteSession(c echo.Context) error {
	session, err := h.svc.DeactivateSession(c.Request().Context(), owner(c), c.Param("session_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message":    "Chat session deleted successfully",
		"session_id": session.ID,
	})
}

// GetChatHistory returns the full message history of a session.
// GET /api/v1/chat/history/:session_id
func (h *Handler) GetChatHistory(c echo.Context) error {
	history, err := h.svc.History(c.Request().Context(), owner(c), c.Param("session_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, history)
}
