package email

import (
	"context"
)

type Service interface {
	SendWelcome(ctx context.Context, email string, name string) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

// NoopService discards all mail. Used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendWelcome(ctx context.Context, email, name string) error { return nil }

func (NoopService) SendCustom(ctx context.Context, to, subject, content string) error { return nil }
