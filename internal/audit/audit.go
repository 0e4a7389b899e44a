// Package audit keeps an append-only trail of admin triage activity.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of triage activity being recorded.
type EventType string

const (
	// EventQuoteStatusChanged is logged when an admin moves a quote between statuses.
	EventQuoteStatusChanged EventType = "triage.quote_status_changed"
	// EventQuoteFieldsUpdated is logged when an admin edits notes or the override rate.
	EventQuoteFieldsUpdated EventType = "triage.quote_fields_updated"
	// EventInquiryStatusChanged is logged when an admin toggles an inquiry's read status.
	EventInquiryStatusChanged EventType = "triage.inquiry_status_changed"
	// EventInquiryNotesUpdated is logged when an admin edits inquiry notes.
	EventInquiryNotesUpdated EventType = "triage.inquiry_notes_updated"
	// EventInquiryViewed is logged when a first read flips an inquiry to read.
	EventInquiryViewed EventType = "triage.inquiry_viewed"
)

// Event is an immutable audit record. LeadID references either a quote
// request or a contact inquiry; Actor is the admin identity that performed
// the action.
type Event struct {
	ID        string          `json:"id"`
	EventType EventType       `json:"event_type"`
	LeadID    string          `json:"lead_id"`
	Actor     string          `json:"actor"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Recorder writes audit events. Rows are never updated or deleted.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates an audit recorder backed by the relational store.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Record inserts one audit event.
func (r *Recorder) Record(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO lead_audit_events (id, event_type, lead_id, actor, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var details any
	if len(event.Details) > 0 {
		details = string(event.Details)
	}

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.LeadID,
		event.Actor,
		details,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("audit: failed to record event: %w", err)
	}

	return nil
}

// RecordStatusChange logs a status transition on a lead.
func (r *Recorder) RecordStatusChange(ctx context.Context, eventType EventType, leadID, actor, status string) error {
	details, _ := json.Marshal(map[string]string{"status": status})
	return r.Record(ctx, Event{
		EventType: eventType,
		LeadID:    leadID,
		Actor:     actor,
		Details:   details,
	})
}
