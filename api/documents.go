package api

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DocumentQueryRequest is the request body for querying a document.
type DocumentQueryRequest struct {
	DocumentID string `json:"document_id"`
	Query      string `json:"query"`
	SessionID  string `json:"session_id"`
}

// UploadDocument stores an uploaded file for later querying.
// POST /api/v1/documents/upload (multipart, field "file")
func (h *Handler) UploadDocument(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return jsonError(c, err)
	}

	fileType := fileHeader.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	doc, err := h.svc.UploadDocument(c.Request().Context(), owner(c), fileHeader.Filename, fileType, content)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"document_id": doc.ID,
		"file_name":   doc.FileName,
		"file_type":   doc.FileType,
		"status":      doc.Status,
		"uploaded_at": doc.CreatedAt,
	})
}

// GetDocument returns document metadata and content.
// GET /api/v1/documents/:doc_id
func (h *Handler) GetDocument(c echo.Context) error {
	doc, err := h.svc.GetDocument(c.Request().Context(), owner(c), c.Param("doc_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"document_id": doc.ID,
		"file_name":   doc.FileName,
		"file_type":   doc.FileType,
		"file_size":   doc.FileSize,
		"status":      doc.Status,
		"uploaded_at": doc.CreatedAt,
		"content":     doc.Content,
	})
}

// ListDocuments returns the caller's documents without content.
// GET /api/v1/documents
func (h *Handler) ListDocuments(c echo.Context) error {
	docs, err := h.svc.ListDocuments(c.Request().Context(), owner(c))
	if err != nil {
		return jsonError(c, err)
	}

	out := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		out = append(out, map[string]interface{}{
			"document_id": doc.ID,
			"file_name":   doc.FileName,
			"file_type":   doc.FileType,
			"file_size":   doc.FileSize,
			"status":      doc.Status,
			"uploaded_at": doc.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// QueryDocument answers a natural-language question about a document.
// POST /api/v1/documents/query
func (h *Handler) QueryDocument(c echo.Context) error {
	var req DocumentQueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.DocumentID == "" || req.Query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "document_id and query are required"})
	}

	answer, err := h.svc.QueryDocument(c.Request().Context(), owner(c), req.DocumentID, req.Query)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, answer)
}
