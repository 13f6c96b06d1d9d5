package notifier

import (
	"context"
	"fmt"

	"github.com/okrhub/okrhub-lambda/internal/config"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Mailer is the low-level transactional email boundary.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Notifier sends the OKR change notification email. Callers treat it as
// fire-and-forget: a failed send is logged, never surfaced.
type Notifier interface {
	Notify(ctx context.Context, recipientEmail, okrTitle string, action Action) error
}

type emailNotifier struct {
	mailer Mailer
}

func NewNotifier(mailer Mailer) Notifier {
	return &emailNotifier{mailer: mailer}
}

func (n *emailNotifier) Notify(ctx context.Context, recipientEmail, okrTitle string, action Action) error {
	log := config.WithContext(ctx)

	subject := fmt.Sprintf("OKR %s: %s", action, okrTitle)
	html := fmt.Sprintf(
		"<p>Your OKR <strong>%s</strong> was %s.</p><p>Open OKRHub to review it.</p>",
		okrTitle, action,
	)

	if err := n.mailer.Send(ctx, recipientEmail, subject, html); err != nil {
		log.WithError(err).Warnf("Failed to send %s notification for %q", action, okrTitle)
		return err
	}

	log.Infof("Sent %s notification for %q", action, okrTitle)
	return nil
}
