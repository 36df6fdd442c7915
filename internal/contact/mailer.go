package contact

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	applog "folio/internal/log"
)

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer forwards messages to a mailbox over SMTP.
type Mailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
	// Send defaults to smtp.SendMail.
	Send SendFunc
}

func (m Mailer) Submit(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	send := m.Send
	if send == nil {
		send = smtp.SendMail
	}

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	from := m.From
	if from == "" {
		from = m.To
	}

	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	if err := send(addr, auth, from, []string{m.To}, m.compose(from, msg)); err != nil {
		return fmt.Errorf("send contact mail via %s: %w", addr, err)
	}
	applog.Info(ctx, "contact message mailed", "to", m.To)
	return nil
}

func (m Mailer) compose(from string, msg Message) []byte {
	var b strings.Builder
	header := func(key, value string) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(sanitizeHeader(value))
		b.WriteString("\r\n")
	}
	header("From", from)
	header("To", m.To)
	header("Reply-To", msg.Email)
	header("Subject", "Portfolio contact from "+msg.Name)
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=utf-8")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

func sanitizeHeader(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
}
