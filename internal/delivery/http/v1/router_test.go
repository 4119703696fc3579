package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"trucking-quote-backend/config"
	v1 "trucking-quote-backend/internal/delivery/http/v1"
	"trucking-quote-backend/internal/usecase"
	"trucking-quote-backend/pkg/email"
	"trucking-quote-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []*email.Message
	err   error
	creds email.CredentialStatus
}

func (f *fakeMailer) Send(_ context.Context, msg *email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) Provider() string { return "smtp" }

func (f *fakeMailer) Credentials() email.CredentialStatus { return f.creds }

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type testServer struct {
	router *gin.Engine
	mailer *fakeMailer
}

func newTestServer(t *testing.T, validate, exposeDiagnostics bool) *testServer {
	t.Helper()
	mailer := &fakeMailer{creds: email.CredentialStatus{User: "present", Pass: "present"}}
	cfg := &config.Config{
		GinMode:               gin.TestMode,
		FrontendURL:           "https://raquelmartinezinsurance.com",
		ExposeDiagnostics:     exposeDiagnostics,
		ValidateQuoteRequests: validate,
	}
	quoteUC := usecase.NewQuoteUsecase(mailer, validation.New(), usecase.QuoteConfig{
		Recipient:   "quotes@example.com",
		Subject:     "New Trucking Insurance Quote Request",
		SendTimeout: 5 * time.Second,
		Validate:    validate,
	})
	router := v1.NewRouter(v1.RouterDeps{
		QuoteUC:  quoteUC,
		HealthUC: usecase.NewHealthUsecase(mailer),
		Config:   cfg,
	})
	return &testServer{router: router, mailer: mailer}
}

func (s *testServer) post(t *testing.T, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

const validQuote = `{"fullName":"Jane Doe","email":"jane@x.com","phone":"555-0100","coverageType":"cargo"}`

func TestSubmitQuoteSuccess(t *testing.T) {
	for _, path := range []string{"/v1/quote", "/api/send-email"} {
		t.Run(path, func(t *testing.T) {
			s := newTestServer(t, true, false)

			w, resp := s.post(t, path, validQuote)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, true, resp["success"])
			assert.Equal(t, "Email sent successfully", resp["message"])
			assert.NotEmpty(t, resp["request_id"])

			require.Equal(t, 1, s.mailer.count())
			sent := s.mailer.sent[0]
			assert.Equal(t, []string{"quotes@example.com"}, sent.To)
			for _, value := range []string{"Jane Doe", "jane@x.com", "555-0100", "cargo"} {
				assert.Contains(t, sent.HTMLBody, value)
			}
		})
	}
}

func TestSubmitQuoteDeliveryFailureWithDiagnostics(t *testing.T) {
	s := newTestServer(t, true, true)
	s.mailer.err = errors.New("Invalid login")

	var first map[string]interface{}
	for i := 0; i < 2; i++ {
		w, resp := s.post(t, "/v1/quote", validQuote)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Invalid login", resp["error"])
		assert.Equal(t, map[string]interface{}{"user": "present", "pass": "present"}, resp["details"])
		assert.NotEmpty(t, resp["error_id"])

		if first == nil {
			first = resp
			continue
		}
		// Same shape each time; only the per-request IDs differ
		assert.Equal(t, first["error"], resp["error"])
		assert.Equal(t, first["details"], resp["details"])
		assert.NotEqual(t, first["error_id"], resp["error_id"])
	}
}

func TestSubmitQuoteDeliveryFailureHidesDiagnostics(t *testing.T) {
	s := newTestServer(t, true, false)
	s.mailer.err = errors.New("dial tcp 74.125.0.1:465: connect: connection refused")

	w, resp := s.post(t, "/v1/quote", validQuote)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to send email", resp["error"])
	assert.NotContains(t, resp, "details")
	assert.NotEmpty(t, resp["error_id"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestSubmitQuoteRejectsInvalidInput(t *testing.T) {
	s := newTestServer(t, true, false)

	w, resp := s.post(t, "/v1/quote", `{"fullName":"Jane Doe","email":"jane@x.com","phone":"","coverageType":"boats"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid quote request", resp["error"])
	fields, ok := resp["fields"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 2)
	assert.Equal(t, 0, s.mailer.count())
}

func TestSubmitQuoteMalformedBody(t *testing.T) {
	s := newTestServer(t, true, false)

	for _, body := range []string{"", "{not json", `{"phone":5550100}`} {
		w, resp := s.post(t, "/v1/quote", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, false, resp["success"])
	}
	assert.Equal(t, 0, s.mailer.count())
}

func TestSubmitQuoteToleratesMissingFieldsWithoutValidation(t *testing.T) {
	s := newTestServer(t, false, false)

	w, resp := s.post(t, "/api/send-email", `{"fullName":"Jane Doe","coverageType":"all"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	require.Equal(t, 1, s.mailer.count())
	assert.Contains(t, s.mailer.sent[0].TextBody, "Email: "+email.MissingValue)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, true, false)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Data["status"])
	assert.Equal(t, "smtp", resp.Data["mail_provider"])
	assert.Equal(t, "true", resp.Data["mail_configured"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, true, false)
	s.post(t, "/v1/quote", validQuote)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "quote_requests_total"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, true, false)

	req := httptest.NewRequest(http.MethodPost, "/v1/quote", bytes.NewBufferString(validQuote))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "site-form-42")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, "site-form-42", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"request_id":"site-form-42"`)
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	s := newTestServer(t, true, false)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/quotes", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Route not found", resp["error"])
	assert.NotEmpty(t, resp["request_id"])
}
