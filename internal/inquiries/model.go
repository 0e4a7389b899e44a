package inquiries

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no contact inquiry exists for the given id.
var ErrNotFound = errors.New("contact inquiry not found")

// Status marks whether an admin has seen the inquiry. The first authorized
// read flips unread to read; after that the status can be toggled either way.
type Status string

const (
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// Valid reports whether s is one of the known inquiry statuses.
func (s Status) Valid() bool {
	return s == StatusUnread || s == StatusRead
}

// ContactInquiry is a message submitted through the public contact form.
// Submitted fields are immutable after creation.
type ContactInquiry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	AdminNotes *string   `json:"admin_notes"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
