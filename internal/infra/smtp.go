package infra

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/juanmzaragoza/billing-dad-project/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends documents as PDF attachments through the configured relay.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Configurado is false when no SMTP host was set; delivery jobs then fail
// into the DLQ instead of dialing nowhere.
func (m *Mailer) Configurado() bool { return m.host != "" }

func (m *Mailer) EnviarDocumento(to, subject, body, filename string, pdf []byte) error {
	if !m.Configurado() {
		return fmt.Errorf("mailer: SMTP_HOST not configured")
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	if _, err := e.Attach(bytes.NewReader(pdf), filename, "application/pdf"); err != nil {
		return fmt.Errorf("mailer: attach PDF: %w", err)
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
