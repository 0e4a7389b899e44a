package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/swiftfreight/forwarding-backend/internal/http/middleware"
	"github.com/swiftfreight/forwarding-backend/internal/intake"
	"github.com/swiftfreight/forwarding-backend/internal/triage"
	"github.com/swiftfreight/forwarding-backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	IntakeHandler      *intake.Handler
	TriageHandler      *triage.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// AdminAuth protects the triage routes. Nil leaves them open, which is
	// only acceptable for local development.
	AdminAuth func(http.Handler) http.Handler

	// IntakeLimit throttles the public submission endpoints. Nil disables
	// throttling.
	IntakeLimit func(http.Handler) http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (lead capture, health checks)
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Group(func(submit chi.Router) {
			if cfg.IntakeLimit != nil {
				submit.Use(cfg.IntakeLimit)
			}
			submit.Post("/quote", cfg.IntakeHandler.SubmitQuote)
			submit.Post("/contact", cfg.IntakeHandler.SubmitContact)
		})
	})

	// Admin triage routes
	r.Group(func(admin chi.Router) {
		if cfg.AdminAuth != nil {
			admin.Use(cfg.AdminAuth)
		}
		admin.Get("/quotes", cfg.TriageHandler.ListQuotes)
		admin.Route("/quote/{id}", func(q chi.Router) {
			q.Get("/", cfg.TriageHandler.GetQuote)
			q.Patch("/status", cfg.TriageHandler.SetQuoteStatus)
			q.Patch("/admin", cfg.TriageHandler.UpdateQuoteAdminFields)
		})
		admin.Get("/contacts", cfg.TriageHandler.ListInquiries)
		admin.Route("/contact/{id}", func(c chi.Router) {
			c.Get("/", cfg.TriageHandler.GetInquiry)
			c.Patch("/status", cfg.TriageHandler.SetInquiryStatus)
			c.Patch("/notes", cfg.TriageHandler.UpdateInquiryNotes)
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
