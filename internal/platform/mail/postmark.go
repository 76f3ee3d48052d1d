package mail

import (
	"context"
	"errors"
	"fmt"

	"tourbase/internal/platform/config"

	"github.com/mrz1836/postmark"
)

type postmarkMailer struct {
	client *postmark.Client
	from   string
}

// NewPostmarkMailer creates the production sender. The server token is
// required up front so a misconfigured process fails at startup, not on the
// first forgotten-password request.
func NewPostmarkMailer(cfg *config.Config) (Mailer, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, errors.New("postmark mailer: POSTMARK_SERVER_TOKEN is required")
	}
	if cfg.MailFrom == "" {
		return nil, errors.New("postmark mailer: MAIL_FROM is required")
	}
	return &postmarkMailer{
		client: postmark.NewClient(cfg.PostmarkServerToken, ""),
		from:   cfg.MailFrom,
	}, nil
}

func (m *postmarkMailer) Send(ctx context.Context, to, subject, body string) error {
	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.from,
		To:       to,
		Subject:  subject,
		TextBody: body,
	})
	if err != nil {
		return fmt.Errorf("postmark send: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark send: %d - %s", resp.ErrorCode, resp.Message)
	}
	return nil
}
