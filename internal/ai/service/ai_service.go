package service

import (
	"context"
	"strings"

	"github.com/codehive-ide/codehive-backend/internal/ai/domain"
	"github.com/codehive-ide/codehive-backend/internal/apperr"
)

const systemPrompt = "You are a helpful code assistant."

// TextGenerator is the narrow capability the AI endpoints depend on. The
// core never sees the provider's concrete protocol.
type TextGenerator interface {
	Generate(ctx context.Context, req domain.Request) (string, error)
}

// AIService shapes editor requests into prompts and passes them through
// the generator. Pure plumbing; every failure maps to upstream_error.
type AIService struct {
	gen TextGenerator
}

func NewAIService(gen TextGenerator) *AIService {
	return &AIService{gen: gen}
}

func (s *AIService) AutoComplete(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", apperr.Validationf("code is required")
	}
	return s.generate(ctx, domain.Request{
		System:          systemPrompt,
		Prompt:          "Suggest code completions for:\n" + code,
		Temperature:     0.2,
		MaxOutputTokens: 50,
	})
}

func (s *AIService) Lint(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", apperr.Validationf("code is required")
	}
	return s.generate(ctx, domain.Request{
		System:          systemPrompt,
		Prompt:          "Analyze this code for syntax errors and suggest fixes:\n" + code,
		Temperature:     0.1,
		MaxOutputTokens: 100,
	})
}

func (s *AIService) GenerateDocs(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", apperr.Validationf("code is required")
	}
	return s.generate(ctx, domain.Request{
		System:          systemPrompt,
		Prompt:          "Generate documentation for this code:\n" + code,
		Temperature:     0.3,
		MaxOutputTokens: 300,
	})
}

func (s *AIService) GenerateSnippet(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", apperr.Validationf("description is required")
	}
	return s.generate(ctx, domain.Request{
		System:          systemPrompt,
		Prompt:          "Generate a code snippet for: " + description,
		Temperature:     0.5,
		MaxOutputTokens: 200,
	})
}

func (s *AIService) generate(ctx context.Context, req domain.Request) (string, error) {
	text, err := s.gen.Generate(ctx, req)
	if err != nil {
		return "", apperr.Upstream(err, "failed to generate text")
	}
	return text, nil
}
