package model

import "context"

// MailMessage is a single outbound email.
type MailMessage struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a single message. Delivery failures are never fatal to the
// operation that triggered the message.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailDispatcher accepts messages for asynchronous, best-effort delivery.
type MailDispatcher interface {
	Enqueue(ctx context.Context, msg MailMessage)
}
