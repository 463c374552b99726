package service

import "context"

// MailSender is the external mail collaborator. The core only produces
// subject and body strings; formatting and transport are infrastructure
// concerns.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
