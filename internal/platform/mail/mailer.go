package mail

import "context"

// Mailer is the out-of-band delivery collaborator. Implementations return
// an error on any delivery failure so callers can roll back state that must
// not outlive an unsent message (e.g. a stored reset token).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
