package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpmiddleware "github.com/swiftfreight/forwarding-backend/internal/http/middleware"
	"github.com/swiftfreight/forwarding-backend/internal/inquiries"
	"github.com/swiftfreight/forwarding-backend/internal/intake"
	"github.com/swiftfreight/forwarding-backend/internal/lead"
	"github.com/swiftfreight/forwarding-backend/internal/quotes"
	"github.com/swiftfreight/forwarding-backend/internal/triage"
)

func newTestRouter(t *testing.T, cfg *Config) http.Handler {
	t.Helper()

	quoteRepo := quotes.NewMemoryRepository()
	inquiryRepo := inquiries.NewMemoryRepository()

	intakeSvc := intake.NewService(quoteRepo, inquiryRepo, nil, nil, nil)
	triageSvc := triage.NewService(quoteRepo, inquiryRepo, lead.AllowAll{}, nil, nil, nil)

	if cfg == nil {
		cfg = &Config{}
	}
	cfg.IntakeHandler = intake.NewHandler(intakeSvc, nil)
	cfg.TriageHandler = triage.NewHandler(triageSvc, nil)
	return New(cfg)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestQuoteSubmissionAndTriageRoundTrip(t *testing.T) {
	r := newTestRouter(t, nil)

	body := `{
		"name": "Asha Patel",
		"email": "asha@example.com",
		"phone": "+911234567890",
		"weight": 10,
		"originCountry": "India",
		"originPincode": "400001",
		"destinationCountry": "Germany",
		"destinationPincode": "10115"
	}`
	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(intake.CSRFHeader, "token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"calculatedRate":5000`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quotes", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"asha@example.com"`)
}

func TestContactRoutesWired(t *testing.T) {
	r := newTestRouter(t, nil)

	body := `{
		"name": "Ravi Kumar",
		"email": "ravi@example.com",
		"phone": "+919812345678",
		"subject": "Customs paperwork",
		"message": "Do you handle export clearance?"
	}`
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(intake.CSRFHeader, "token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contacts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Customs paperwork"`)
}

func TestAdminAuthGuardsTriageRoutes(t *testing.T) {
	secret := "router-test-secret"
	r := newTestRouter(t, &Config{AdminAuth: httpmiddleware.AdminJWT(secret)})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quotes", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	claims := jwt.RegisteredClaims{
		Subject:   "ops-admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Public intake stays open regardless of admin auth.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIntakeRateLimitApplied(t *testing.T) {
	r := newTestRouter(t, &Config{IntakeLimit: httpmiddleware.RateLimit(0.001, 1)})

	submit := func() int {
		req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(`{}`))
		req.Header.Set(intake.CSRFHeader, "token")
		req.Header.Set("X-Real-Ip", "203.0.113.9")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	first := submit()
	assert.NotEqual(t, http.StatusTooManyRequests, first)
	assert.Equal(t, http.StatusTooManyRequests, submit())

	// Reads are not throttled.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	req.Header.Set("X-Real-Ip", "203.0.113.9")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
