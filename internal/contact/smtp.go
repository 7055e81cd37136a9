package contact

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrSMTPNotConfigured is returned when SMTP credentials are missing.
var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

// SMTPConfig holds mail server settings.
type SMTPConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	User string `koanf:"user"`
	Pass string `koanf:"pass"`
	To   string `koanf:"to"`
}

// SMTP emails each message to the site owner.
type SMTP struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(cfg SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *SMTP) Send(ctx context.Context, m Message) (string, error) {
	if s.cfg.User == "" || s.cfg.Pass == "" {
		return "", ErrSMTPNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	if err := s.sendMail(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.User, []string{s.cfg.To}, s.compose(m)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return MsgSent, nil
}

func (s *SMTP) compose(m Message) []byte {
	subject := m.Subject
	if subject == "" {
		subject = fmt.Sprintf("Portfolio Contact: %s", m.Name)
	}
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Message)

	return []byte("To: " + s.cfg.To + "\r\n" +
		"Subject: " + headerValue(subject) + "\r\n" +
		"From: " + s.cfg.User + "\r\n" +
		"Reply-To: " + headerValue(m.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

var headerBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// headerValue keeps user input on one header line.
func headerValue(v string) string { return headerBreaks.Replace(v) }
