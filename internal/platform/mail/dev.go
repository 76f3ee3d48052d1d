package mail

import (
	"context"
	"log"
)

// devMailer logs messages instead of sending them. Used outside production
// so the reset flow is fully exercisable without a Postmark account.
type devMailer struct{}

func NewDevMailer() Mailer {
	return devMailer{}
}

func (devMailer) Send(_ context.Context, to, subject, body string) error {
	log.Printf("mail (dev): to=%s subject=%q\n%s", to, subject, body)
	return nil
}
