package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fairline/tictactoe-league/internal/config"
	"github.com/wneessen/go-mail"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	client *mail.Client
	from   string
}

// NewSMTP - builds a mailer over a plain SMTP client.
func NewSMTP(conf config.SMTP) (Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(conf.Port),
	}

	if conf.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(conf.Username),
			mail.WithPassword(conf.Password),
		)
	}

	client, err := mail.NewClient(conf.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &smtpMailer{
		client: client,
		from:   conf.From,
	}, nil
}

func (that *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if err := msg.From(that.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := that.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

type logMailer struct {
	logger *slog.Logger
}

// NewLog - a mailer that only logs; used when no SMTP host is configured.
func NewLog(logger *slog.Logger) Mailer {
	return &logMailer{
		logger: logger.With("component", "mailer"),
	}
}

func (that *logMailer) Send(_ context.Context, to, subject, body string) error {
	that.logger.Info("mail suppressed, no SMTP host configured", "to", to, "subject", subject, "body", body)

	return nil
}
