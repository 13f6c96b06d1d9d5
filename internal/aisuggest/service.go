package aisuggest

import (
	"context"
	"errors"
	"strings"

	"github.com/okrhub/okrhub-lambda/internal/apperror"
)

type Service interface {
	SuggestKeyResults(ctx context.Context, req SuggestionRequest) ([]KeySuggestion, error)
}

type service struct {
	provider Provider
}

func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) SuggestKeyResults(ctx context.Context, req SuggestionRequest) ([]KeySuggestion, error) {
	if strings.TrimSpace(req.Objective) == "" {
		return nil, apperror.NewValidation("objective")
	}
	if s.provider == nil {
		return nil, errors.New("suggestion provider not configured")
	}

	return s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(req))
}
