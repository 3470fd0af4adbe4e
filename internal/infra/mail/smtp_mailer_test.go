package mail

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"morgenstar/config"
	"morgenstar/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("shop@morgenstar.de", &service.MailMessage{
		To:       "anna@example.de",
		Subject:  "Willkommen bei Morgenstar!",
		HTMLBody: "<p>Hallo</p>",
		TextBody: "Hallo",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, `From: "Morgenstar" <shop@morgenstar.de>`)
	assert.Contains(t, raw, "To: <anna@example.de>")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	_, err := buildMessage("shop@morgenstar.de", &service.MailMessage{To: "not an address"})
	assert.ErrorContains(t, err, "invalid recipient address")
}

func TestNewMailer_WithoutHostLogsOnly(t *testing.T) {
	var logs bytes.Buffer
	mailer, err := NewMailer(Params{
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})
	require.NoError(t, err)

	require.NoError(t, mailer.Send(context.Background(), &service.MailMessage{To: "anna@example.de", Subject: "Test"}))
	assert.Contains(t, logs.String(), "SMTP disabled")
}

func TestNewMailer_SMTP(t *testing.T) {
	mailer, err := NewMailer(Params{
		Config: &config.Config{SMTP: &config.SMTPConfig{Host: "smtp.example.de", Port: 587, From: "shop@morgenstar.de"}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	_, ok := mailer.(*smtpMailer)
	assert.True(t, ok)
}
