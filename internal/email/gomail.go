package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// GomailService sends mail through an SMTP relay.
type GomailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailService(cfg SMTPConfig) *GomailService {
	return &GomailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *GomailService) SendWelcome(ctx context.Context, email, name string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to the alumni portal. Your account is ready.\n\nVisit your dashboard to explore upcoming events, mentorship and giving opportunities.",
		name,
	)
	return s.SendCustom(ctx, email, "Welcome to the Alumni Portal", body)
}

func (s *GomailService) SendCustom(ctx context.Context, to, subject, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
