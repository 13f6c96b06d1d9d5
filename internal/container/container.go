package container

import (
	"context"
	"log"

	"github.com/okrhub/okrhub-lambda/internal/aisuggest"
	"github.com/okrhub/okrhub-lambda/internal/auth"
	"github.com/okrhub/okrhub-lambda/internal/config"
	"github.com/okrhub/okrhub-lambda/internal/notifier"
	"github.com/okrhub/okrhub-lambda/internal/okr"
	"github.com/okrhub/okrhub-lambda/internal/spreadsheet"
	"github.com/okrhub/okrhub-lambda/internal/user"
)

type Container struct {
	UserContainer        *user.UserContainer
	OKRContainer         *okr.OKRContainer
	SpreadsheetContainer *spreadsheet.SpreadsheetContainer
	AISuggestContainer   *aisuggest.AISuggestContainer
	NotifierContainer    *notifier.NotifierContainer
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	if err := config.Connect(context.Background(), config.Env.DatabaseDSN); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(&user.User{}, &user.Profile{}, &okr.OKR{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	notifierContainer := notifier.NewNotifierContainer()
	userContainer := user.NewUserContainer(config.DB, notifierContainer.Mailer)
	spreadsheetContainer := spreadsheet.NewSpreadsheetContainer()
	aiSuggestContainer := aisuggest.NewAISuggestContainer()

	okrContainer := okr.NewOKRContainer(
		config.DB,
		userContainer.Repo,
		notifierContainer.Notifier,
	)

	return &Container{
		UserContainer:        userContainer,
		OKRContainer:         okrContainer,
		SpreadsheetContainer: spreadsheetContainer,
		AISuggestContainer:   aiSuggestContainer,
		NotifierContainer:    notifierContainer,
	}
}
