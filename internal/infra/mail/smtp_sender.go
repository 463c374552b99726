// Package mail provides the SMTP-backed implementation of the mail sender.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"member/config"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/service"
)

type smtpSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender builds a service.MailSender that delivers through the SMTP
// relay named in the configuration.
func NewSMTPSender(cfg *config.Config) service.MailSender {
	var auth smtp.Auth
	if cfg.Mail.Username != "" {
		auth = smtp.PlainAuth("", cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.Host)
	}

	return &smtpSender{
		addr: net.JoinHostPort(cfg.Mail.Host, strconv.Itoa(cfg.Mail.Port)),
		from: cfg.Mail.From,
		auth: auth,
	}
}

// Send delivers a single plain-text message. Delivery failures are surfaced
// as ErrMailDeliveryFailed so callers can map them uniformly.
func (s *smtpSender) Send(ctx context.Context, to string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return domainerrors.ErrMailDeliveryFailed.Wrap(err)
	}

	msg := buildMessage(s.from, to, subject, body)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		return domainerrors.ErrMailDeliveryFailed.Wrap(err)
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return []byte(b.String())
}
