package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMemoryDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "ssfresh", cfg.Store.Database)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 100, cfg.Notify.QueueSize)
	assert.Equal(t, 587, cfg.Notify.SMTPPort)
	assert.Equal(t, "https://api.telegram.org", cfg.Notify.TelegramAPIURL)
	assert.Equal(t, "https://www.google.com/maps", cfg.Orders.MapsBaseURL)
	assert.False(t, cfg.Orders.StrictStatus)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("ORDER_STATUS_STRICT", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Orders.StrictStatus)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("NOTIFY_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "NOTIFY_TIMEOUT")

	for _, timeout := range []string{"0s", "-5s"} {
		t.Setenv("NOTIFY_TIMEOUT", timeout)
		_, err = Load()
		assert.ErrorContains(t, err, "NOTIFY_TIMEOUT must be positive", timeout)
	}
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	assert.ErrorContains(t, err, "MONGO_URI")
}
