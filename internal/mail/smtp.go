// Package mail delivers account lifecycle notifications. Delivery is
// best-effort: no failure in this package is ever surfaced to the operation
// that triggered the message.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/qzplatform/account-service/internal/model"
)

var _ model.Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends messages through a plain SMTP relay with AUTH PLAIN.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
	// send is swappable in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates an SMTPMailer for the given relay.
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		auth: auth,
		from: from,
		send: smtp.SendMail,
	}
}

// Send delivers a single HTML message.
func (m *SMTPMailer) Send(_ context.Context, msg model.MailMessage) error {
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.from, msg.To, msg.Subject, msg.HTML,
	)

	if err := m.send(m.addr, m.auth, m.from, []string{msg.To}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}
