package ai

import (
	"context"
	"fmt"

	domsvc "StockAI/internal/domain/service"
	"StockAI/pkg/config"
)

// OpenRouterGenerator implements TextGenerator against the OpenRouter
// chat-completions API.
type OpenRouterGenerator struct {
	base        *HTTPServiceBase
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	referer     string
	title       string
}

// NewOpenRouterGenerator builds the generator from config. With an empty API
// key the generator reports unavailable and callers use the static fallback.
func NewOpenRouterGenerator(cfg *config.Config) *OpenRouterGenerator {
	return &OpenRouterGenerator{
		base:        NewHTTPServiceBase(cfg),
		apiKey:      cfg.AI.APIKey,
		model:       cfg.AI.Model,
		maxTokens:   cfg.AI.MaxTokens,
		temperature: cfg.AI.Temperature,
		referer:     cfg.AI.Referer,
		title:       cfg.AI.Title,
	}
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	MaxTokens   int                     `json:"max_tokens,omitempty"`
	Temperature float64                 `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
}

// Available reports whether the provider is configured.
func (g *OpenRouterGenerator) Available() bool { return g.apiKey != "" }

// Generate sends the prompt as a single user message and returns the text of
// the first choice.
func (g *OpenRouterGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.Available() {
		return "", fmt.Errorf("openrouter api key not configured")
	}

	req := chatCompletionRequest{
		Model:       g.model,
		Messages:    []chatCompletionMessage{{Role: "user", Content: prompt}},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	}
	if g.referer != "" {
		headers["HTTP-Referer"] = g.referer
	}
	if g.title != "" {
		headers["X-Title"] = g.title
	}

	var resp chatCompletionResponse
	if err := g.base.PostJSON(ctx, "/chat/completions", headers, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ domsvc.TextGenerator = (*OpenRouterGenerator)(nil)
