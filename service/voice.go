package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/voxchat/backend/domain"
	"github.com/voxchat/backend/llm"
)

const voiceSessionTitle = "Voice Chat"

// Placeholder until speech-to-text is wired up.
const sttPlaceholder = "Voice message received"

const voiceFallbackReply = "I'm sorry, I couldn't process your voice message right now. Please try again."

// Transcription is the result of speech-to-text.
type Transcription struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// Synthesis is the result of text-to-speech.
type Synthesis struct {
	AudioData string  `json:"audio_data"`
	Duration  float64 `json:"duration"`
}

// VoiceChat runs one voice exchange. STT and TTS are stubbed; the exchange
// otherwise follows the text path, except that a model failure degrades to
// a canned reply instead of failing the request, so the voice client always
// gets something speakable back.
func (s *Service) VoiceChat(ctx context.Context, owner, audioData, sessionRef string) (*domain.VoiceReply, error) {
	// TODO: run STT on audioData once a speech backend is chosen.
	text := sttPlaceholder

	session, _, err := s.resolveSession(ctx, owner, sessionRef, voiceSessionTitle)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.CreateMessage(ctx, session.ID, domain.RoleUser, text); err != nil {
		return nil, fmt.Errorf("saving voice message: %w", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.LLMTimeout)
	defer cancel()
	reply, err := s.llm.Generate(genCtx, []llm.Turn{{Role: llm.RoleUser, Text: text}}, llm.Config{
		Temperature:     temperature,
		MaxOutputTokens: voiceMaxOutputTokens,
		DisableThinking: true,
	})
	if err != nil {
		log.Printf("ERROR: voice model call failed for session %s: %v", session.ID, err)
		reply = voiceFallbackReply
	}

	if _, err := s.store.CreateMessage(ctx, session.ID, domain.RoleAssistant, reply); err != nil {
		return nil, fmt.Errorf("saving voice reply: %w", err)
	}

	return &domain.VoiceReply{
		TextResponse:  reply,
		AudioResponse: nil, // TODO: TTS
		SessionID:     session.ID,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// Transcribe converts audio to text. Mock implementation.
func (s *Service) Transcribe(audioData, language string) *Transcription {
	return &Transcription{
		Text:       "This is a mock transcription of your audio message.",
		Confidence: 0.95,
		Language:   language,
	}
}

// Synthesize converts text to audio. Mock implementation; duration is a
// rough per-character estimate.
func (s *Service) Synthesize(text, voice string) *Synthesis {
	return &Synthesis{
		AudioData: "mock_audio_data_base64_encoded",
		Duration:  float64(len(text)) * 0.1,
	}
}
