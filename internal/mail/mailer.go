package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/beamcollective/portal-api/internal/config"
)

// Mailer delivers invitation notifications. Sending is best-effort; a failed
// send never fails the invitation itself.
type Mailer interface {
	SendInvitation(to, name, confirmationURL string) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates a mailer for the configured relay.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendInvitation delivers the invitation mail with the confirmation link.
func (m *SMTPMailer) SendInvitation(to, name, confirmationURL string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: You have been invited\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", name)
	b.WriteString("You have been invited to join one of our projects.\r\n")
	fmt.Fprintf(&b, "Confirm or decline here: %s\r\n\r\n", confirmationURL)
	b.WriteString("This invitation expires in 30 days.\r\n")

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(m.cfg.Addr(), auth, m.cfg.From, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to send invitation mail: %w", err)
	}
	return nil
}

// NoopMailer is used when no relay is configured.
type NoopMailer struct{}

func (NoopMailer) SendInvitation(string, string, string) error { return nil }
