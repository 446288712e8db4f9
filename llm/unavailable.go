package llm

import (
	"context"

	"github.com/voxchat/backend/domain"
)

// Unavailable returns a Generator whose calls always fail with
// domain.ErrServiceUnavailable. It stands in for the real client when the
// deployment has no API key, so a misconfigured service reaches the
// unavailable path through normal control flow instead of a nil check.
func Unavailable() Generator {
	return unavailable{}
}

type unavailable struct{}

var _ Generator = unavailable{}

func (unavailable) Generate(ctx context.Context, turns []Turn, cfg Config) (string, error) {
	return "", domain.ErrServiceUnavailable
}

func (unavailable) GenerateStream(ctx context.Context, turns []Turn, cfg Config, callback StreamCallback) error {
	return domain.ErrServiceUnavailable
}
