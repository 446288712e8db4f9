// Package service implements the completion orchestrator and the
// administrative operations layered on the store.
package service

import (
	"log"

	"github.com/pkoukk/tiktoken-go"

	"github.com/voxchat/backend/config"
	"github.com/voxchat/backend/llm"
	"github.com/voxchat/backend/store"
)

// Generation parameters passed to the model capability.
const (
	temperature           = 0.7
	maxOutputTokens       = 2048
	streamMaxOutputTokens = 4096
	voiceMaxOutputTokens  = 1024
)

// Service coordinates the store and the model capability. It holds no
// mutable state of its own; all coordination between concurrent requests
// goes through the store.
type Service struct {
	store     store.Store
	llm       llm.Generator
	cfg       *config.Config
	estimator *tokenEstimator
}

// New creates a service. The generator is an explicit dependency; pass
// llm.Unavailable() when the model is not configured.
func New(st store.Store, gen llm.Generator, cfg *config.Config) *Service {
	return &Service{
		store:     st,
		llm:       gen,
		cfg:       cfg,
		estimator: newTokenEstimator(),
	}
}

// tokenEstimator counts tokens with tiktoken's cl100k_base encoding, falling
// back to a bytes/4 estimate when the encoding is not available.
type tokenEstimator struct {
	encoding *tiktoken.Tiktoken
}

func newTokenEstimator() *tokenEstimator {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		log.Printf("WARN: tiktoken encoding unavailable, using byte estimate: %v", err)
		return &tokenEstimator{}
	}
	return &tokenEstimator{encoding: enc}
}

func (t *tokenEstimator) count(text string) int {
	if t.encoding == nil {
		return len(text) / 4
	}
	return len(t.encoding.Encode(text, nil, nil))
}
