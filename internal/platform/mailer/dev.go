package mailer

import (
	"context"

	"github.com/diagnosis/local-hotel/pkg/logger"
)

// DevMailer logs outgoing mail instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	msg := welcomeMessage(toName)
	logger.InfoContext(ctx, "[DEV MAIL] Welcome email",
		"to", toEmail,
		"name", toName,
		"subject", msg.subject,
	)
	return nil
}
