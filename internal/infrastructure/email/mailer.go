package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// Config captures the SMTP settings for outbound mail. An empty Host means
// no provider is configured and callers fall back to a mailto handoff.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers notifications through a plain SMTP submission.
type SMTPMailer struct {
	cfg Config
	log zerolog.Logger
}

func NewSMTPMailer(cfg Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

// Configured reports whether an SMTP host is set.
func (m *SMTPMailer) Configured() bool {
	return m.cfg.Host != ""
}

// Send submits one message. The context is consulted before dialing; net/smtp
// itself does not take a context.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	if !m.Configured() {
		return fmt.Errorf("smtp not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	payload := buildMessage(m.cfg.From, msg)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	m.log.Debug().Str("to", msg.To).Str("invoice_id", msg.InvoiceID).Msg("smtp submission accepted")
	return nil
}

func buildMessage(from string, msg ports.EmailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
