package okr

import (
	"gorm.io/gorm"

	"github.com/okrhub/okrhub-lambda/internal/notifier"
	"github.com/okrhub/okrhub-lambda/internal/user"
)

type OKRContainer struct {
	Handler *Handler
	Service Service
}

func NewOKRContainer(db *gorm.DB, users user.UserRepository, n notifier.Notifier) *OKRContainer {
	repo := NewRepository(db)
	service := NewService(repo, users, n)
	handler := NewHandler(service)

	return &OKRContainer{
		Handler: handler,
		Service: service,
	}
}
