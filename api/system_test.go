package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxchat/backend/llm"
)

func TestHealth(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &llm.MockGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, Version, resp.Version)
	assert.NotEmpty(t, resp.Services)
}

func TestListModelsCatalog(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &llm.MockGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListModels(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var models []ModelInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &models))
	require.NotEmpty(t, models)

	var hasTextModel bool
	for _, m := range models {
		if m.Type == "text-generation" && m.IsAvailable {
			hasTextModel = true
		}
	}
	assert.True(t, hasTextModel, "catalog must advertise an available text model")
}

func TestSpeechToTextEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &llm.MockGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/stt",
		strings.NewReader(`{"audio_data": "base64stuff"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newOwnedContext(e, req, rec, "u1")

	if err := h.SpeechToText(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Text)
	assert.Equal(t, "en-US", resp.Language)
}

func TestTextToSpeechEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &llm.MockGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/tts",
		strings.NewReader(`{"text": "hello"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newOwnedContext(e, req, rec, "u1")

	if err := h.TextToSpeech(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		AudioData string  `json:"audio_data"`
		Duration  float64 `json:"duration"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AudioData)
	assert.Greater(t, resp.Duration, 0.0)
}

func TestTextToSpeechMissingText(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &llm.MockGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/tts", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newOwnedContext(e, req, rec, "u1")

	if err := h.TextToSpeech(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
