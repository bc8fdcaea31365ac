package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/config"
)

// Mailer delivers outbound mail. The SMTP implementation below is the only
// one in production; tests substitute their own.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Config struct {
	Addr     string
	From     string
	User     string
	Password string
}

type smtpMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	log := config.WithContext(ctx)

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.cfg.User != "" {
		host := m.cfg.Addr
		if i := strings.Index(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, host)
	}

	if err := smtp.SendMail(m.cfg.Addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		log.WithError(err).Error("Failed to send email")
		return apperr.Upstream("email delivery failed", err)
	}

	log.WithField("to", to).Info("Email sent")
	return nil
}

// ResetCodeBody renders the password-reset email.
func ResetCodeBody(code string) string {
	return fmt.Sprintf("<div><h2>Your password reset code is: %s</h2></div>", code)
}
