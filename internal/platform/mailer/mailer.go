package mailer

import (
	"context"
	"fmt"
	"html"

	"github.com/diagnosis/local-hotel/pkg/config"
	"github.com/diagnosis/local-hotel/pkg/logger"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
}

// New returns a MailerSend client when an API key and sender are configured
// and dev mode is off. Otherwise mail is only logged.
func New(cfg config.EmailConfig) Service {
	if cfg.DevMode || cfg.MailerSendKey == "" || cfg.FromEmail == "" {
		logger.Info("Email delivery disabled, using dev mailer")
		return NewDevMailer()
	}
	return NewMailerSend(cfg.MailerSendKey, cfg.FromName, cfg.FromEmail)
}

type message struct {
	subject string
	text    string
	html    string
}

func welcomeMessage(name string) message {
	return message{
		subject: "Welcome to Local Hotel",
		text: fmt.Sprintf("Hi %s,\n\nYour Local Hotel account is ready. "+
			"You can now sign in and manage your bookings.", name),
		html: fmt.Sprintf(`
		<h2>Welcome to Local Hotel!</h2>
		<p>Hi %s,</p>
		<p>Your account is ready. You can now sign in and manage your bookings.</p>
	`, html.EscapeString(name)),
	}
}
