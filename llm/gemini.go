package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient implements Generator using the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed generator.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

var _ Generator = (*GeminiClient)(nil)

// Generate sends a whole-response generation request.
func (g *GeminiClient) Generate(ctx context.Context, turns []Turn, cfg Config) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, toContents(turns), toGenaiConfig(cfg))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("generate content: empty response")
	}
	return resp.Text(), nil
}

// GenerateStream sends a streaming generation request, invoking callback for
// each non-empty text fragment. Canceling ctx stops the stream.
func (g *GeminiClient) GenerateStream(ctx context.Context, turns []Turn, cfg Config, callback StreamCallback) error {
	for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, toContents(turns), toGenaiConfig(cfg)) {
		if err != nil {
			return fmt.Errorf("generate content stream: %w", err)
		}
		if text := resp.Text(); text != "" {
			if err := callback(text); err != nil {
				return err
			}
		}
	}
	return nil
}

func toContents(turns []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.Role(genai.RoleUser)
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	return contents
}

func toGenaiConfig(cfg Config) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(cfg.Temperature),
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
	if cfg.DisableThinking {
		out.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(int32(0))}
	}
	return out
}
