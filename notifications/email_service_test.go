package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoSend(t *testing.T) {
	var got brevoPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := &BrevoService{APIKey: "secret", SenderEmail: "office@school.test", SenderName: "Office", Endpoint: srv.URL}
	err := s.Send(context.Background(), "", "parent@home.test", "Invoice overdue", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "Invoice overdue", got.Subject)
	assert.Equal(t, "office@school.test", got.Sender["email"])
	require.Len(t, got.To, 1)
	assert.Equal(t, "parent", got.To[0]["name"])
}

func TestBrevoSendReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Key not found"}`))
	}))
	defer srv.Close()

	s := &BrevoService{APIKey: "bad", SenderEmail: "office@school.test", Endpoint: srv.URL}
	err := s.Send(context.Background(), "A", "a@b.test", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Key not found")
}

func TestBrevoSendRejectsBadAddress(t *testing.T) {
	s := &BrevoService{APIKey: "k", Endpoint: "http://127.0.0.1:0"}
	assert.Error(t, s.Send(context.Background(), "", "@nobody", "s", "b"))
	assert.Error(t, s.Send(context.Background(), "", "nobody", "s", "b"))
}

func TestNewMailerFallsBackToLog(t *testing.T) {
	m := NewMailer("", "", "")
	assert.IsType(t, LogMailer{}, m)
	assert.NoError(t, m.Send(context.Background(), "x", "x@y.test", "s", "b"))

	_, ok := NewMailer("key", "office@school.test", "Office").(*BrevoService)
	assert.True(t, ok)
}
