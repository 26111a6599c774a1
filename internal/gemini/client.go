// Package gemini wraps the Gemini generative-language API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Client generates text with a fixed model.
type Client struct {
	client *genai.Client
	model  string
}

// Option customizes the underlying client configuration.
type Option func(*genai.ClientConfig)

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = baseURL
	}
}

// NewClient creates a Client for the Gemini developer API.
func NewClient(ctx context.Context, apiKey, model string, opts ...Option) (*Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// Generate sends prompt with an optional system instruction and returns the trimmed text.
func (c *Client) Generate(ctx context.Context, systemPrompt, prompt string, temperature float32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:    genai.Ptr(temperature),
		CandidateCount: 1,
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return strings.TrimSpace(result.Text()), nil
}
