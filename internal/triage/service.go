// Package triage lets an authorized admin inspect and mutate lead state.
package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/swiftfreight/forwarding-backend/internal/audit"
	"github.com/swiftfreight/forwarding-backend/internal/inquiries"
	"github.com/swiftfreight/forwarding-backend/internal/lead"
	"github.com/swiftfreight/forwarding-backend/internal/observability/metrics"
	"github.com/swiftfreight/forwarding-backend/internal/quotes"
	"github.com/swiftfreight/forwarding-backend/pkg/logging"
)

// Service is the lead triage service. Every operation runs the authorizer
// first; unauthorized calls return lead.ErrForbidden and touch nothing.
type Service struct {
	quotes    quotes.Repository
	inquiries inquiries.Repository
	authz     lead.Authorizer
	recorder  *audit.Recorder
	metrics   *metrics.LeadMetrics
	logger    *logging.Logger
}

// NewService wires the triage service. recorder and leadMetrics may be nil.
func NewService(
	quoteRepo quotes.Repository,
	inquiryRepo inquiries.Repository,
	authz lead.Authorizer,
	recorder *audit.Recorder,
	leadMetrics *metrics.LeadMetrics,
	logger *logging.Logger,
) *Service {
	if authz == nil {
		panic("triage: authorizer required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		quotes:    quoteRepo,
		inquiries: inquiryRepo,
		authz:     authz,
		recorder:  recorder,
		metrics:   leadMetrics,
		logger:    logger,
	}
}

func (s *Service) authorize(ctx context.Context, action string) (lead.Identity, error) {
	identity, ok := s.authz.Authorize(ctx)
	if !ok {
		s.metrics.ObserveTriageAction(action, "forbidden")
		return lead.Identity{}, lead.ErrForbidden
	}
	return identity, nil
}

// recordAudit logs triage activity; a failed audit write never fails the
// operation it describes.
func (s *Service) recordAudit(ctx context.Context, eventType audit.EventType, leadID, actor string, details any) {
	if s.recorder == nil {
		return
	}
	var raw json.RawMessage
	if details != nil {
		raw, _ = json.Marshal(details)
	}
	err := s.recorder.Record(ctx, audit.Event{
		EventType: eventType,
		LeadID:    leadID,
		Actor:     actor,
		Details:   raw,
	})
	if err != nil {
		s.logger.Error("audit write failed", "error", err, "event_type", eventType, "lead_id", leadID)
	}
}

// GetQuote fetches one quote request.
func (s *Service) GetQuote(ctx context.Context, id string) (*quotes.QuoteRequest, error) {
	if _, err := s.authorize(ctx, "get_quote"); err != nil {
		return nil, err
	}

	q, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, quotes.ErrNotFound) {
			return nil, err
		}
		return nil, &lead.PersistenceError{Op: "triage: fetch quote", Err: err}
	}
	s.metrics.ObserveTriageAction("get_quote", "ok")
	return q, nil
}

// GetInquiry fetches one contact inquiry. The first authorized read flips an
// unread inquiry to read before returning; later reads leave it alone.
func (s *Service) GetInquiry(ctx context.Context, id string) (*inquiries.ContactInquiry, error) {
	identity, err := s.authorize(ctx, "get_inquiry")
	if err != nil {
		return nil, err
	}

	in, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, inquiries.ErrNotFound) {
			return nil, err
		}
		return nil, &lead.PersistenceError{Op: "triage: fetch inquiry", Err: err}
	}

	if in.Status == inquiries.StatusUnread {
		if err := s.inquiries.UpdateStatus(ctx, id, inquiries.StatusRead); err != nil {
			return nil, &lead.PersistenceError{Op: "triage: mark inquiry read", Err: err}
		}
		in.Status = inquiries.StatusRead
		s.recordAudit(ctx, audit.EventInquiryViewed, id, identity.Subject, nil)
	}

	s.metrics.ObserveTriageAction("get_inquiry", "ok")
	return in, nil
}

// ListQuotes returns all quote requests, newest first.
func (s *Service) ListQuotes(ctx context.Context) ([]*quotes.QuoteRequest, error) {
	if _, err := s.authorize(ctx, "list_quotes"); err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := s.quotes.List(ctx)
	s.metrics.ObserveStoreLatency("list_quotes", time.Since(start).Seconds())
	if err != nil {
		return nil, &lead.PersistenceError{Op: "triage: list quotes", Err: err}
	}
	return out, nil
}

// ListInquiries returns all contact inquiries, newest first.
func (s *Service) ListInquiries(ctx context.Context) ([]*inquiries.ContactInquiry, error) {
	if _, err := s.authorize(ctx, "list_inquiries"); err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := s.inquiries.List(ctx)
	s.metrics.ObserveStoreLatency("list_inquiries", time.Since(start).Seconds())
	if err != nil {
		return nil, &lead.PersistenceError{Op: "triage: list inquiries", Err: err}
	}
	return out, nil
}

// SetQuoteStatus moves a quote to the given status. All transitions between
// valid statuses are permitted, and repeating the current status is a no-op
// write.
func (s *Service) SetQuoteStatus(ctx context.Context, id, status string) (*quotes.QuoteRequest, error) {
	identity, err := s.authorize(ctx, "set_quote_status")
	if err != nil {
		return nil, err
	}

	st := quotes.Status(status)
	if !st.Valid() {
		s.metrics.ObserveTriageAction("set_quote_status", "invalid")
		return nil, &lead.ValidationError{Field: "status", Reason: "must be one of pending, approved, rejected"}
	}

	if err := s.quotes.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, quotes.ErrNotFound) {
			return nil, err
		}
		return nil, &lead.PersistenceError{Op: "triage: update quote status", Err: err}
	}

	s.logger.Info("quote status updated", "id", id, "status", st, "actor", identity.Subject)
	s.metrics.ObserveTriageAction("set_quote_status", "ok")
	s.recordAudit(ctx, audit.EventQuoteStatusChanged, id, identity.Subject, map[string]string{"status": status})

	return s.fetchQuote(ctx, id)
}

// SetInquiryStatus toggles an inquiry between unread and read.
func (s *Service) SetInquiryStatus(ctx context.Context, id, status string) (*inquiries.ContactInquiry, error) {
	identity, err := s.authorize(ctx, "set_inquiry_status")
	if err != nil {
		return nil, err
	}

	st := inquiries.Status(status)
	if !st.Valid() {
		s.metrics.ObserveTriageAction("set_inquiry_status", "invalid")
		return nil, &lead.ValidationError{Field: "status", Reason: "must be one of unread, read"}
	}

	if err := s.inquiries.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, inquiries.ErrNotFound) {
			return nil, err
		}
		return nil, &lead.PersistenceError{Op: "triage: update inquiry status", Err: err}
	}

	s.logger.Info("inquiry status updated", "id", id, "status", st, "actor", identity.Subject)
	s.metrics.ObserveTriageAction("set_inquiry_status", "ok")
	s.recordAudit(ctx, audit.EventInquiryStatusChanged, id, identity.Subject, map[string]string{"status": status})

	return s.fetchInquiry(ctx, id)
}

// UpdateQuoteAdminFields applies a partial update to a quote's notes and
// override rate. Unset fields stay untouched; a set field with a nil value is
// cleared. The calculated rate is never altered.
func (s *Service) UpdateQuoteAdminFields(ctx context.Context, id string, fields quotes.AdminFields) (*quotes.QuoteRequest, error) {
	identity, err := s.authorize(ctx, "update_quote_fields")
	if err != nil {
		return nil, err
	}

	if fields.OverrideSet && fields.OverrideRate != nil {
		rate := *fields.OverrideRate
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
			s.metrics.ObserveTriageAction("update_quote_fields", "invalid")
			return nil, &lead.ValidationError{Field: "adminOverrideRate", Reason: "must be a non-negative number or null"}
		}
	}

	if !fields.NotesSet && !fields.OverrideSet {
		return s.fetchQuote(ctx, id)
	}

	if err := s.quotes.UpdateAdminFields(ctx, id, fields); err != nil {
		if errors.Is(err, quotes.ErrNotFound) {
			return nil, err
		}
		return nil, &lead.PersistenceError{Op: "triage: update quote admin fields", Err: err}
	}

	s.logger.Info("quote admin fields updated", "id", id, "actor", identity.Subject)
	s.metrics.ObserveTriageAction("update_quote_fields", "ok")
	s.recordAudit(ctx, audit.EventQuoteFieldsUpdated, id, identity.Subject, auditFieldDetails(fields))

	return s.fetchQuote(ctx, id)
}

// UpdateInquiryNotes replaces an inquiry's admin notes; nil clears them.
func (s *Service) UpdateInquiryNotes(ctx context.Context, id string, notes *string) (*inquiries.ContactInquiry, error) {
	identity, err := s.authorize(ctx, "update_inquiry_notes")
	if err != nil {
		return nil, err
	}

	if err := s.inquiries.UpdateNotes(ctx, id, notes); err != nil {
		if errors.Is(err, inquiries.ErrNotFound) {
			return nil, err
		}
		return nil, &lead.PersistenceError{Op: "triage: update inquiry notes", Err: err}
	}

	s.logger.Info("inquiry notes updated", "id", id, "actor", identity.Subject)
	s.metrics.ObserveTriageAction("update_inquiry_notes", "ok")
	s.recordAudit(ctx, audit.EventInquiryNotesUpdated, id, identity.Subject, nil)

	return s.fetchInquiry(ctx, id)
}

func (s *Service) fetchQuote(ctx context.Context, id string) (*quotes.QuoteRequest, error) {
	q, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, quotes.ErrNotFound) {
			return nil, err
		}
		return nil, &lead.PersistenceError{Op: "triage: fetch quote", Err: err}
	}
	return q, nil
}

func (s *Service) fetchInquiry(ctx context.Context, id string) (*inquiries.ContactInquiry, error) {
	in, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, inquiries.ErrNotFound) {
			return nil, err
		}
		return nil, &lead.PersistenceError{Op: "triage: fetch inquiry", Err: err}
	}
	return in, nil
}

func auditFieldDetails(fields quotes.AdminFields) map[string]string {
	details := map[string]string{}
	if fields.NotesSet {
		details["admin_notes"] = "updated"
		if fields.Notes == nil {
			details["admin_notes"] = "cleared"
		}
	}
	if fields.OverrideSet {
		if fields.OverrideRate == nil {
			details["admin_override_rate"] = "cleared"
		} else {
			details["admin_override_rate"] = fmt.Sprintf("%.2f", *fields.OverrideRate)
		}
	}
	return details
}
