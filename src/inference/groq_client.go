package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/casefile-ai/casefile/src/config"
	"github.com/casefile-ai/casefile/src/models"
)

// GroqClient serves completions through Groq's OpenAI-compatible endpoint.
// The model is chosen per call, so a single client serves both routing tiers.
type GroqClient struct {
	llm llms.Model
}

func NewGroqClient(cfg *config.GroqConfig) (*GroqClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is empty (check GROQ_API_KEY environment variable)")
	}

	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Groq client: %w", err)
	}

	return &GroqClient{llm: llm}, nil
}

func (c *GroqClient) Complete(ctx context.Context, profile models.ModelProfile, prompt string) (string, error) {
	if profile.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, profile.Timeout)
		defer cancel()
	}

	temperature := profile.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	callOptions := []llms.CallOption{
		llms.WithModel(profile.Name),
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(profile.MaxTokens),
	}

	response, err := llms.GenerateFromSinglePrompt(
		ctx,
		c.llm,
		prompt,
		callOptions...,
	)
	if err != nil {
		return "", fmt.Errorf("model %s generation failed: %w", profile.Name, err)
	}

	if strings.TrimSpace(response) == "" {
		return "", fmt.Errorf("model %s returned an empty completion", profile.Name)
	}

	return response, nil
}
