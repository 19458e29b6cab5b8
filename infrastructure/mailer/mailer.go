package mailer

import (
	"context"

	"github.com/daylightco/finops-reporter/internal/domain"
)

// Message is one outbound report email.
type Message struct {
	Subject     string
	HTML        string
	Recipient   string
	Attachments []domain.Attachment
}

// Mailer delivers a report email with its CSV attachments. Delivery is
// best-effort: there is no retry policy, the caller just logs the failure.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
