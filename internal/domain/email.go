package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RSVPReceivedEmailData holds data for the host notification sent on each new RSVP.
type RSVPReceivedEmailData struct {
	Email string
	RSVP  *RSVP
}

// Notifier tells the event host about new RSVPs.
type Notifier interface {
	RSVPReceived(ctx context.Context, rsvp *RSVP) error
}
