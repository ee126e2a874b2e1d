package ports

import "context"

// EmailMessage is one outbound notification.
type EmailMessage struct {
	// InvoiceID shards delivery so messages about one invoice stay ordered.
	InvoiceID string
	To        string
	Subject   string
	Body      string
}

// Mailer delivers a single email synchronously.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
	// Configured reports whether a real provider is available; when false the
	// caller should fall back to a mailto handoff.
	Configured() bool
}

// NotificationDispatcher enqueues emails for asynchronous delivery.
type NotificationDispatcher interface {
	Enqueue(msg EmailMessage)
}
