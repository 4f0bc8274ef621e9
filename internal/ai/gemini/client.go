package gemini

import (
	"context"
	"fmt"

	genai "google.golang.org/genai"

	"github.com/codehive-ide/codehive-backend/internal/ai/domain"
)

// Client is a thin wrapper around the official genai client. It only
// covers the API call itself; classification happens in the service.
type Client struct {
	cli   *genai.Client
	model string
}

// NewClient builds a Gemini-backed generator. The API key is read from
// the environment by the genai client.
func NewClient(ctx context.Context, model string) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	return &Client{cli: cli, model: model}, nil
}

// Generate runs one prompt through the model and returns the generated
// text.
func (c *Client) Generate(ctx context.Context, req domain.Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: req.MaxOutputTokens,
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}},
		cfg,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty generation response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
