package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/hrsuite/hr-management/internal"
)

// Mailer delivers verification codes. Delivery itself is an external
// concern; the auth flows only depend on this interface.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email string, code int) error
}

// NewMailer picks an implementation from config. The log driver is the
// development default.
func NewMailer(cfg internal.MailerConfig, logger *slog.Logger) Mailer {
	if cfg.Driver == "smtp" {
		return &SMTPMailer{cfg: cfg}
	}
	return &LogMailer{logger: logger}
}

type SMTPMailer struct {
	cfg internal.MailerConfig
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, email string, code int) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your verification code\r\n\r\nYour verification code is %d. It expires in 10 minutes.\r\n",
		m.cfg.From, email, code)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer writes the code to the log instead of sending anything. Useful
// for local development and tests.
type LogMailer struct {
	logger *slog.Logger
}

func (m *LogMailer) SendVerificationCode(_ context.Context, email string, code int) error {
	m.logger.Info("verification code (log mailer)", "email", email, "code", code)
	return nil
}
