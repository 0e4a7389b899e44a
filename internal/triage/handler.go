package triage

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftfreight/forwarding-backend/internal/inquiries"
	"github.com/swiftfreight/forwarding-backend/internal/lead"
	"github.com/swiftfreight/forwarding-backend/internal/quotes"
	"github.com/swiftfreight/forwarding-backend/pkg/logging"
)

// Handler handles the admin triage HTTP routes.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new triage handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// ListQuotes handles GET /quotes.
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListQuotes(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quotes": out, "count": len(out)})
}

// GetQuote handles GET /quote/{id}.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quote": q})
}

// SetQuoteStatus handles PATCH /quote/{id}/status.
func (h *Handler) SetQuoteStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	q, err := h.svc.SetQuoteStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quote": q})
}

// UpdateQuoteAdminFields handles PATCH /quote/{id}/admin. Absent fields are
// left unchanged; an explicit null clears the field.
func (h *Handler) UpdateQuoteAdminFields(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminNotes        json.RawMessage `json:"adminNotes"`
		AdminOverrideRate json.RawMessage `json:"adminOverrideRate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	var fields quotes.AdminFields
	if req.AdminNotes != nil {
		fields.NotesSet = true
		if !isJSONNull(req.AdminNotes) {
			var notes string
			if err := json.Unmarshal(req.AdminNotes, &notes); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "field adminNotes must be a string or null"})
				return
			}
			fields.Notes = &notes
		}
	}
	if req.AdminOverrideRate != nil {
		fields.OverrideSet = true
		if !isJSONNull(req.AdminOverrideRate) {
			var rate float64
			if err := json.Unmarshal(req.AdminOverrideRate, &rate); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "field adminOverrideRate must be a number or null"})
				return
			}
			fields.OverrideRate = &rate
		}
	}

	q, err := h.svc.UpdateQuoteAdminFields(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quote": q})
}

// ListInquiries handles GET /contacts.
func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListInquiries(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inquiries": out, "count": len(out)})
}

// GetInquiry handles GET /contact/{id}.
func (h *Handler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	in, err := h.svc.GetInquiry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inquiry": in})
}

// SetInquiryStatus handles PATCH /contact/{id}/status.
func (h *Handler) SetInquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	in, err := h.svc.SetInquiryStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inquiry": in})
}

// UpdateInquiryNotes handles PATCH /contact/{id}/notes.
func (h *Handler) UpdateInquiryNotes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminNotes json.RawMessage `json:"adminNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	var notes *string
	if req.AdminNotes != nil && !isJSONNull(req.AdminNotes) {
		var s string
		if err := json.Unmarshal(req.AdminNotes, &s); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "field adminNotes must be a string or null"})
			return
		}
		notes = &s
	}

	in, err := h.svc.UpdateInquiryNotes(r.Context(), chi.URLParam(r, "id"), notes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inquiry": in})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *lead.ValidationError
	switch {
	case errors.Is(err, lead.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Error()})
	case errors.Is(err, quotes.ErrNotFound), errors.Is(err, inquiries.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		h.logger.Error("triage operation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "An unexpected error occurred"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
