package intake

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/swiftfreight/forwarding-backend/internal/lead"
	"github.com/swiftfreight/forwarding-backend/pkg/logging"
)

// CSRFHeader carries the anti-forgery token on public form posts.
const CSRFHeader = "X-CSRF-Token"

// Handler handles HTTP requests for the public lead forms.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new intake handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// SubmitQuote handles POST /quote requests.
func (h *Handler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	var sub QuoteSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	receipt, err := h.svc.SubmitQuote(r.Context(), r.Header.Get(CSRFHeader), sub)
	if err != nil {
		h.writeError(w, err, "Failed to save quote request")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"quoteId":        receipt.QuoteID,
		"calculatedRate": receipt.CalculatedRate,
		"message":        "Quote request submitted successfully",
	})
}

// SubmitContact handles POST /contact requests.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var sub ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	receipt, err := h.svc.SubmitContact(r.Context(), r.Header.Get(CSRFHeader), sub)
	if err != nil {
		h.writeError(w, err, "Failed to save contact inquiry")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"inquiryId": receipt.InquiryID,
		"message":   "Contact inquiry submitted successfully",
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, persistMsg string) {
	var vErr *lead.ValidationError
	var pErr *lead.PersistenceError
	switch {
	case errors.Is(err, lead.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "CSRF token is missing"})
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Error()})
	case errors.As(err, &pErr):
		h.logger.Error("store write failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": persistMsg})
	default:
		h.logger.Error("submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "An unexpected error occurred"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
