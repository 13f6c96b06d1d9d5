package user

import (
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/okrhub/okrhub-lambda/internal/config"
	"github.com/okrhub/okrhub-lambda/internal/notifier"
)

type UserContainer struct {
	Handler *Handler
	Service Service
	Repo    UserRepository
}

func NewUserContainer(db *gorm.DB, mailer notifier.Mailer) *UserContainer {
	oauthConfig := &oauth2.Config{
		ClientID:     config.Env.GoogleClientID,
		ClientSecret: config.Env.GoogleClientSecret,
		RedirectURL:  config.Env.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}

	repo := NewRepository(db)
	service := NewService(repo, mailer, oauthConfig)
	handler := NewHandler(service)

	return &UserContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
