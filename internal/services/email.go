package services

import (
	"context"
	"fmt"
	"log/slog"

	"rsvpbackend/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	hostTo   string
	logger   *slog.Logger
}

// NewEmailNotifier returns a Notifier that emails hostTo about each new RSVP
// using the "rsvp_received" template.
func NewEmailNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, hostTo string, logger *slog.Logger) domain.Notifier {
	return &emailService{mailer: mailer, renderer: renderer, hostTo: hostTo, logger: logger}
}

func (s *emailService) RSVPReceived(ctx context.Context, rsvp *domain.RSVP) error {
	if rsvp == nil {
		return fmt.Errorf("rsvp is nil")
	}
	data := &domain.RSVPReceivedEmailData{Email: s.hostTo, RSVP: rsvp}
	subject, htmlBody, textBody, err := s.renderer.Render("rsvp_received", data)
	if err != nil {
		return fmt.Errorf("failed to render rsvp_received template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send rsvp_received email: %w", err)
	}
	s.logger.InfoContext(ctx, "rsvp notification sent", "to", data.Email, "rsvp_id", rsvp.ID)
	return nil
}
