package aisuggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/okrhub/okrhub-lambda/internal/config"
)

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]KeySuggestion, error)
}

type geminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]KeySuggestion, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(
		ctx,
		"gemini-2.0-flash",
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return nil, errors.New("empty response from model")
	}

	suggestions, err := DecodeSuggestions(raw)
	if err != nil {
		log.WithError(err).Errorf("Failed to decode model output:\n%s", raw)
		return nil, err
	}

	log.Infof("Generated %d key result suggestions", len(suggestions))
	return suggestions, nil
}

// DecodeSuggestions strips the markdown code fences the model sometimes
// wraps around its JSON and unmarshals the array.
func DecodeSuggestions(raw string) ([]KeySuggestion, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")

	var suggestions []KeySuggestion
	if err := json.Unmarshal([]byte(clean), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return suggestions, nil
}
