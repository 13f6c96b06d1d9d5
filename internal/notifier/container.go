package notifier

import "github.com/okrhub/okrhub-lambda/internal/config"

type NotifierContainer struct {
	Mailer   Mailer
	Notifier Notifier
}

func NewNotifierContainer() *NotifierContainer {
	mailer := NewResendMailer(config.Env.ResendAPIKey, config.Env.MailFrom)

	return &NotifierContainer{
		Mailer:   mailer,
		Notifier: NewNotifier(mailer),
	}
}
