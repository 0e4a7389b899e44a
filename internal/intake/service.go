// Package intake accepts raw lead submissions from the public forms,
// validates them, computes derived values and writes new lead records.
package intake

import (
	"context"
	"strings"
	"time"

	"github.com/swiftfreight/forwarding-backend/internal/inquiries"
	"github.com/swiftfreight/forwarding-backend/internal/lead"
	"github.com/swiftfreight/forwarding-backend/internal/notify"
	"github.com/swiftfreight/forwarding-backend/internal/observability/metrics"
	"github.com/swiftfreight/forwarding-backend/internal/quotes"
	"github.com/swiftfreight/forwarding-backend/pkg/logging"
)

// QuoteReceipt is returned to the submitter of a quote request.
type QuoteReceipt struct {
	QuoteID        string
	CalculatedRate float64
}

// ContactReceipt is returned to the submitter of a contact inquiry.
type ContactReceipt struct {
	InquiryID string
}

// Service is the lead intake service.
type Service struct {
	quotes    quotes.Repository
	inquiries inquiries.Repository
	notifier  *notify.Service
	metrics   *metrics.LeadMetrics
	logger    *logging.Logger
}

// NewService wires the intake service. notifier and leadMetrics may be nil.
func NewService(
	quoteRepo quotes.Repository,
	inquiryRepo inquiries.Repository,
	notifier *notify.Service,
	leadMetrics *metrics.LeadMetrics,
	logger *logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		quotes:    quoteRepo,
		inquiries: inquiryRepo,
		notifier:  notifier,
		metrics:   leadMetrics,
		logger:    logger,
	}
}

// SubmitQuote validates a quote submission, fixes the calculated rate and
// inserts the record with status pending. The anti-forgery token is checked
// for presence before any field validation runs; token verification against
// an issued value is intentionally not performed.
func (s *Service) SubmitQuote(ctx context.Context, token string, sub QuoteSubmission) (*QuoteReceipt, error) {
	if strings.TrimSpace(token) == "" {
		s.metrics.ObserveSubmission("quote", "forbidden")
		return nil, lead.ErrForbidden
	}

	weight, err := sub.Validate()
	if err != nil {
		s.metrics.ObserveSubmission("quote", "invalid")
		return nil, err
	}

	record := &quotes.QuoteRequest{
		Name:               strings.TrimSpace(sub.Name),
		Email:              strings.TrimSpace(sub.Email),
		Phone:              strings.TrimSpace(sub.Phone),
		Weight:             weight,
		OriginCountry:      strings.TrimSpace(sub.OriginCountry),
		OriginPincode:      strings.TrimSpace(sub.OriginPincode),
		DestinationCountry: strings.TrimSpace(sub.DestinationCountry),
		DestinationPincode: strings.TrimSpace(sub.DestinationPincode),
		HSNCode:            optional(sub.HSNCode),
		AdditionalInfo:     optional(sub.AdditionalInfo),
		CalculatedRate:     quotes.CalculateRate(weight),
		Status:             quotes.StatusPending,
	}

	start := time.Now()
	created, err := s.quotes.Create(ctx, record)
	s.metrics.ObserveStoreLatency("insert_quote", time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveSubmission("quote", "error")
		return nil, &lead.PersistenceError{Op: "intake: insert quote request", Err: err}
	}

	s.logger.Info("quote request created",
		"id", created.ID,
		"weight_kg", created.Weight,
		"calculated_rate", created.CalculatedRate,
	)
	s.metrics.ObserveSubmission("quote", "accepted")

	// Notification failures never fail the submission.
	if err := s.notifier.NotifyNewQuote(ctx, created); err != nil {
		s.logger.Error("new quote notification failed", "error", err, "id", created.ID)
	}

	return &QuoteReceipt{QuoteID: created.ID, CalculatedRate: created.CalculatedRate}, nil
}

// SubmitContact validates a contact submission and inserts the record with
// status unread. Token handling matches SubmitQuote.
func (s *Service) SubmitContact(ctx context.Context, token string, sub ContactSubmission) (*ContactReceipt, error) {
	if strings.TrimSpace(token) == "" {
		s.metrics.ObserveSubmission("contact", "forbidden")
		return nil, lead.ErrForbidden
	}

	if err := sub.Validate(); err != nil {
		s.metrics.ObserveSubmission("contact", "invalid")
		return nil, err
	}

	record := &inquiries.ContactInquiry{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Phone:   strings.TrimSpace(sub.Phone),
		Subject: strings.TrimSpace(sub.Subject),
		Message: strings.TrimSpace(sub.Message),
		Status:  inquiries.StatusUnread,
	}

	start := time.Now()
	created, err := s.inquiries.Create(ctx, record)
	s.metrics.ObserveStoreLatency("insert_inquiry", time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveSubmission("contact", "error")
		return nil, &lead.PersistenceError{Op: "intake: insert contact inquiry", Err: err}
	}

	s.logger.Info("contact inquiry created", "id", created.ID, "subject", created.Subject)
	s.metrics.ObserveSubmission("contact", "accepted")

	if err := s.notifier.NotifyNewInquiry(ctx, created); err != nil {
		s.logger.Error("new inquiry notification failed", "error", err, "id", created.ID)
	}

	return &ContactReceipt{InquiryID: created.ID}, nil
}
