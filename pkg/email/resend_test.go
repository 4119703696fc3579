package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendMailerSend(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/emails", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer srv.Close()

	m := NewResendMailer("re_test_key", "quotes@example.com", "Raquel Martinez Insurance")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	m.client.BaseURL = base

	err = m.Send(context.Background(), &Message{
		To:       []string{"broker@example.com"},
		ReplyTo:  "jane@x.com",
		Subject:  "New Trucking Insurance Quote Request",
		HTMLBody: "<p>Jane</p>",
		TextBody: "Jane",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", auth)
	assert.Equal(t, "Raquel Martinez Insurance <quotes@example.com>", got["from"])
	assert.Equal(t, "New Trucking Insurance Quote Request", got["subject"])
	assert.Equal(t, "<p>Jane</p>", got["html"])
}

func TestResendMailerMissingKey(t *testing.T) {
	m := NewResendMailer("", "quotes@example.com", "")

	err := m.Send(context.Background(), &Message{To: []string{"broker@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
	assert.Equal(t, CredentialStatus{User: "present", Pass: "missing"}, m.Credentials())
	assert.Equal(t, "resend", m.Provider())
}
