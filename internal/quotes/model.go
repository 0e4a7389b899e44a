package quotes

import "time"

// Status is a quote request's position in the triage workflow. The transition
// graph is fully connected: an admin may move a quote between any two
// statuses, and back to pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known quote statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// QuoteRequest is a shipping quote submitted through the public form.
// Submitted fields and CalculatedRate are immutable after creation; only the
// admin fields (status, notes, override rate) change during triage.
type QuoteRequest struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Weight             float64   `json:"weight"`
	OriginCountry      string    `json:"origin_country"`
	OriginPincode      string    `json:"origin_pincode"`
	DestinationCountry string    `json:"destination_country"`
	DestinationPincode string    `json:"destination_pincode"`
	HSNCode            *string   `json:"hsn_code"`
	AdditionalInfo     *string   `json:"additional_info"`
	CalculatedRate     float64   `json:"calculated_rate"`
	AdminOverrideRate  *float64  `json:"admin_override_rate"`
	AdminNotes         *string   `json:"admin_notes"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// BillingRate returns the admin override when one is set, otherwise the rate
// calculated at submission time.
func (q *QuoteRequest) BillingRate() float64 {
	if q.AdminOverrideRate != nil {
		return *q.AdminOverrideRate
	}
	return q.CalculatedRate
}
