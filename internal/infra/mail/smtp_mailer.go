// Package mail renders and delivers transactional mail.
package mail

import (
	"context"
	"log/slog"

	"morgenstar/config"
	"morgenstar/internal/domain/constants"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/fx"
)

const smtpsPort = 465

// Params defines the dependencies of the mailer
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMailer returns the SMTP mailer, or a logging mailer when no SMTP host is configured.
func NewMailer(params Params) (service.Mailer, error) {
	cfg := params.Config.SMTP
	if cfg == nil || cfg.Host == "" {
		params.Logger.Info("SMTP not configured, mails are only logged")

		return &logMailer{logger: params.Logger}, nil
	}

	return NewSMTPMailer(cfg)
}

type smtpMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer builds a go-mail client. Port 465 uses implicit TLS, other ports STARTTLS when offered.
func NewSMTPMailer(cfg *config.SMTPConfig) (service.Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
	}
	if cfg.Port == smtpsPort {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SMTP client")
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &smtpMailer{client: client, from: from}, nil
}

// Send delivers msg with the shop as display name of the sender.
func (m *smtpMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	mailMsg, err := buildMessage(m.from, msg)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, mailMsg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}

func buildMessage(from string, msg *service.MailMessage) (*gomail.Msg, error) {
	mailMsg := gomail.NewMsg()
	if err := mailMsg.FromFormat(constants.ShopName, from); err != nil {
		return nil, errors.Wrap(err, "invalid sender address")
	}
	if err := mailMsg.To(msg.To); err != nil {
		return nil, errors.Wrap(err, "invalid recipient address")
	}
	mailMsg.Subject(msg.Subject)
	mailMsg.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		mailMsg.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	}

	return mailMsg, nil
}

// logMailer stands in for SMTP in development.
type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	m.logger.InfoContext(ctx, "Mail not sent, SMTP disabled",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}
