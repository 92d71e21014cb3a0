// Package mail abstracts outbound email delivery behind a small interface so
// callers stay independent from the concrete provider.
package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From is an optional explicit sender; the fallback depends on the
	// implementation.
	From string
	// To lists the recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail sends email through the underlying provider (SMTP, third-party API).
type Mail interface {
	io.Closer
	// Send dispatches the message.
	Send(ctx context.Context, msg Message) error
}
