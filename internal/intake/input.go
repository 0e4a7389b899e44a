package intake

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/swiftfreight/forwarding-backend/internal/lead"
)

// Number decodes a JSON number or a numeric string. The public forms post
// both shapes.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = Number(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = Number(num.String())
	return nil
}

// QuoteSubmission is the untrusted quote form payload.
type QuoteSubmission struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Weight             Number `json:"weight"`
	OriginCountry      string `json:"originCountry"`
	OriginPincode      string `json:"originPincode"`
	DestinationCountry string `json:"destinationCountry"`
	DestinationPincode string `json:"destinationPincode"`
	HSNCode            string `json:"hsnCode"`
	AdditionalInfo     string `json:"additionalInfo"`
}

// Validate checks the required fields in submission order, failing fast on
// the first problem, and returns the parsed weight.
func (s *QuoteSubmission) Validate() (float64, error) {
	required := []struct {
		field string
		value string
	}{
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"weight", string(s.Weight)},
		{"originCountry", s.OriginCountry},
		{"originPincode", s.OriginPincode},
		{"destinationCountry", s.DestinationCountry},
		{"destinationPincode", s.DestinationPincode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return 0, lead.Required(r.field)
		}
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(string(s.Weight)), 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return 0, &lead.ValidationError{Field: "weight", Reason: "must be a positive number"}
	}
	return weight, nil
}

// ContactSubmission is the untrusted contact form payload.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks the required fields in submission order, failing fast.
func (s *ContactSubmission) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"subject", s.Subject},
		{"message", s.Message},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return lead.Required(r.field)
		}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
