package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/swiftfreight/forwarding-backend/internal/inquiries"
	"github.com/swiftfreight/forwarding-backend/internal/quotes"
	"github.com/swiftfreight/forwarding-backend/pkg/logging"
)

// Service emails the operations inbox when a new lead arrives. A nil Service
// is a no-op, so callers never need to guard the happy path.
type Service struct {
	email    EmailSender
	opsEmail string
	logger   *logging.Logger
}

// NewService creates a notification service. Returns nil when no sender or
// destination inbox is configured.
func NewService(email EmailSender, opsEmail string, logger *logging.Logger) *Service {
	if email == nil || strings.TrimSpace(opsEmail) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:    email,
		opsEmail: opsEmail,
		logger:   logger,
	}
}

// NotifyNewQuote emails the operations inbox about a fresh quote request.
func (s *Service) NotifyNewQuote(ctx context.Context, q *quotes.QuoteRequest) error {
	if s == nil {
		return nil
	}

	body := fmt.Sprintf(
		"New quote request from %s.\n\nRoute: %s %s -> %s %s\nWeight: %.2f kg\nCalculated rate: %.2f\nEmail: %s\nPhone: %s\n",
		q.Name,
		q.OriginCountry, q.OriginPincode,
		q.DestinationCountry, q.DestinationPincode,
		q.Weight,
		q.CalculatedRate,
		q.Email,
		q.Phone,
	)

	msg := EmailMessage{
		To:      s.opsEmail,
		Subject: fmt.Sprintf("New quote request: %s", q.Name),
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: new quote email: %w", err)
	}
	return nil
}

// NotifyNewInquiry emails the operations inbox about a fresh contact inquiry.
func (s *Service) NotifyNewInquiry(ctx context.Context, in *inquiries.ContactInquiry) error {
	if s == nil {
		return nil
	}

	body := fmt.Sprintf(
		"New contact inquiry from %s.\n\nSubject: %s\n\n%s\n\nEmail: %s\nPhone: %s\n",
		in.Name,
		in.Subject,
		in.Message,
		in.Email,
		in.Phone,
	)

	msg := EmailMessage{
		To:      s.opsEmail,
		Subject: fmt.Sprintf("New contact inquiry: %s", in.Subject),
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: new inquiry email: %w", err)
	}
	return nil
}
