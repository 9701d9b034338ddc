// Package email sends transactional email over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dtroode/userkeeper-server/internal/config"
	"github.com/dtroode/userkeeper-server/internal/logger"
	"github.com/dtroode/userkeeper-server/internal/model"
)

type mailClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

var _ model.Notifier = (*Sender)(nil)

// Sender delivers plain-text messages through an SMTP relay.
type Sender struct {
	client mailClient
	from   string
	logger *logger.Logger
}

// NewClient creates an SMTP client from configuration.
func NewClient(cfg config.SMTP) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.NoTLS),
	}
	if cfg.TLS {
		opts[1] = mail.WithTLSPortPolicy(mail.TLSMandatory)
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return client, nil
}

// NewSender creates a Sender using client for delivery.
func NewSender(client mailClient, from string, logger *logger.Logger) *Sender {
	return &Sender{
		client: client,
		from:   from,
		logger: logger,
	}
}

// Send delivers a single message. Delivery errors are logged and returned unchanged.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Error("Email sender: error sending email",
			"to", to,
			"error", err.Error())
		return err
	}

	s.logger.Info("Email sender: email sent",
		"to", to)

	return nil
}
