package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diagnosis/local-hotel/pkg/config"
)

func TestNew_SelectsImplementation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.EmailConfig
		dev  bool
	}{
		{"dev mode", config.EmailConfig{DevMode: true, MailerSendKey: "k", FromEmail: "a@b.co"}, true},
		{"missing key", config.EmailConfig{FromEmail: "a@b.co"}, true},
		{"missing sender", config.EmailConfig{MailerSendKey: "k"}, true},
		{"configured", config.EmailConfig{MailerSendKey: "k", FromName: "Hotel", FromEmail: "a@b.co"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(tt.cfg)
			_, isDev := svc.(*DevMailer)
			assert.Equal(t, tt.dev, isDev)
		})
	}
}

func TestWelcomeMessage_EscapesName(t *testing.T) {
	msg := welcomeMessage(`<script>x</script>`)
	assert.NotContains(t, msg.html, "<script>")
	assert.Contains(t, msg.text, "<script>x</script>")
	assert.Equal(t, "Welcome to Local Hotel", msg.subject)
}

func TestDevMailer_NeverFails(t *testing.T) {
	assert.NoError(t, NewDevMailer().SendWelcomeEmail(context.Background(), "a@b.co", "Ada"))
}
