package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNotifierPostsMessage(t *testing.T) {
	var got telegramMessage
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.URL, "TOKEN", "42")
	require.True(t, n.Enabled())
	require.NoError(t, n.Send(context.Background(), "hello"))

	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, telegramMessage{ChatID: "42", Text: "hello", ParseMode: "Markdown"}, got)
}

func TestTelegramNotifierReportsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer server.Close()

	err := NewTelegramNotifier(server.URL, "TOKEN", "42").Send(context.Background(), "hello")
	assert.ErrorContains(t, err, "status 400")
}

func TestTelegramNotifierSkipsWhenUnconfigured(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.URL, "", "42")
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Send(context.Background(), "hello"))
	assert.False(t, called)
}

func TestEmailNotifierDisabledWithoutSMTP(t *testing.T) {
	n := NewEmailNotifier("", 587, "", "", "owner@example.com")
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Send(context.Background(), "hello"))
}
