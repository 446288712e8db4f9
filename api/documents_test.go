package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxchat/backend/llm"
)

func multipartFile(t *testing.T, fieldName, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadDocumentEndpoint(t *testing.T) {
	e := echo.New()
	h, st := newTestHandler(t, &llm.MockGenerator{})

	body, contentType := multipartFile(t, "file", "notes.txt", "hello world")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := newOwnedContext(e, req, rec, "u1")

	if err := h.UploadDocument(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		DocumentID string `json:"document_id"`
		FileName   string `json:"file_name"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "notes.txt", resp.FileName)
	assert.Equal(t, "uploaded", resp.Status)
	require.NotEmpty(t, resp.DocumentID)

	doc, err := st.GetDocument(context.Background(), resp.DocumentID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, int64(len("hello world")), doc.FileSize)
}

func TestUploadDocumentMissingFile(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &llm.MockGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", nil)
	rec := httptest.NewRecorder()
	c := newOwnedContext(e, req, rec, "u1")

	if err := h.UploadDocument(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetAndListDocumentEndpoints(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &llm.MockGenerator{})

	body, contentType := multipartFile(t, "file", "report.txt", "contents")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	if err := h.UploadDocument(newOwnedContext(e, req, rec, "u1")); err != nil {
		t.Fatalf("upload error: %v", err)
	}
	var uploaded struct {
		DocumentID string `json:"document_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))

	// Fetch with content.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+uploaded.DocumentID, nil)
	rec = httptest.NewRecorder()
	c := newOwnedContext(e, req, rec, "u1")
	c.SetParamNames("doc_id")
	c.SetParamValues(uploaded.DocumentID)
	if err := h.GetDocument(c); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	assert.Contains(t, rec.Body.String(), `"content"`)

	// List without content.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec = httptest.NewRecorder()
	if err := h.ListDocuments(newOwnedContext(e, req, rec, "u1")); err != nil {
		t.Fatalf("list error: %v", err)
	}
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "content")

	// Other users see nothing.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+uploaded.DocumentID, nil)
	rec = httptest.NewRecorder()
	c = newOwnedContext(e, req, rec, "u2")
	c.SetParamNames("doc_id")
	c.SetParamValues(uploaded.DocumentID)
	if err := h.GetDocument(c); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign document, got %d", rec.Code)
	}
}

func TestQueryDocumentEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &llm.MockGenerator{})

	body, contentType := multipartFile(t, "file", "paper.pdf", "pdf bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	if err := h.UploadDocument(newOwnedContext(e, req, rec, "u1")); err != nil {
		t.Fatalf("upload error: %v", err)
	}
	var uploaded struct {
		DocumentID string `json:"document_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))

	queryBody := `{"document_id": "` + uploaded.DocumentID + `", "query": "What is this about?"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/documents/query", strings.NewReader(queryBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	if err := h.QueryDocument(newOwnedContext(e, req, rec, "u1")); err != nil {
		t.Fatalf("query error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var answer struct {
		Answer         string `json:"answer"`
		SourceDocument string `json:"source_document"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &answer))
	assert.Contains(t, answer.Answer, "What is this about?")
	assert.Equal(t, "paper.pdf", answer.SourceDocument)
}

func TestQueryDocumentMissingFields(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &llm.MockGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/query", strings.NewReader(`{"query": "q"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.QueryDocument(newOwnedContext(e, req, rec, "u1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
