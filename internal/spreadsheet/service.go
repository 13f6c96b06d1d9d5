package spreadsheet

import (
	"context"

	"github.com/okrhub/okrhub-lambda/internal/config"
)

type Service interface {
	ExtractDraft(ctx context.Context, data []byte, draft Draft) (Draft, error)
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) ExtractDraft(ctx context.Context, data []byte, draft Draft) (Draft, error) {
	log := config.WithContext(ctx)

	result, err := Extract(data, draft)
	if err != nil {
		log.WithError(err).Warn("Spreadsheet extraction failed")
		return draft, err
	}

	log.Infof("Extracted OKR draft with %d key results", len(result.KeyResults))
	return result, nil
}
