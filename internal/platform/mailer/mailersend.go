package mailer

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
	"github.com/samber/oops"
)

type MailerSend struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSend {
	return &MailerSend{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (m *MailerSend) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	return m.send(ctx, toEmail, toName, welcomeMessage(toName))
}

func (m *MailerSend) send(ctx context.Context, toEmail, toName string, msg message) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	email := m.client.Email.NewMessage()
	email.SetFrom(m.from)
	email.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	email.SetSubject(msg.subject)
	if strings.TrimSpace(msg.text) != "" {
		email.SetText(msg.text)
	}
	if strings.TrimSpace(msg.html) != "" {
		email.SetHTML(msg.html)
	}

	res, err := m.client.Email.Send(ctx, email)
	if err != nil {
		return oops.Code("MAIL_SEND_FAILED").Wrap(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return oops.Code("MAIL_SEND_FAILED").
			With("status", res.StatusCode).
			Errorf("mailersend rejected message: %s", strings.TrimSpace(string(body)))
	}
	return nil
}
