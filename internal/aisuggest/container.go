package aisuggest

import (
	"context"

	"github.com/sirupsen/logrus"
)

type AISuggestContainer struct {
	Handler *Handler
}

func NewAISuggestContainer() *AISuggestContainer {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Gemini provider unavailable; key result suggestions disabled")
	}
	service := NewService(provider)
	handler := NewHandler(service)

	return &AISuggestContainer{
		Handler: handler,
	}
}
