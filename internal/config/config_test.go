package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.GetServerAddr())
		assert.Equal(t, "memory", cfg.GetAccountStore())
		assert.Equal(t, "log", cfg.GetEmailProvider())
		assert.Equal(t, 30*time.Minute, cfg.GetFormTTL())
		assert.Equal(t, "success", cfg.GetNotifyPolicy())
	})

	t.Run("missing session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")

		_, err := Load()
		assert.ErrorContains(t, err, "SESSION_SECRET")
	})

	t.Run("surreal store needs connection settings", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")
		t.Setenv("ACCOUNT_STORE", "surreal")
		t.Setenv("SURREAL_URL", "")

		_, err := Load()
		assert.ErrorContains(t, err, "SURREAL_URL")
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")
		t.Setenv("ACCOUNT_STORE", "postgres")

		_, err := Load()
		assert.ErrorContains(t, err, "postgres")
	})

	t.Run("bad form ttl", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "test-secret")
		t.Setenv("FORM_TTL", "soon")

		_, err := Load()
		assert.ErrorContains(t, err, "FORM_TTL")
	})

	t.Run("tools load without a session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("NOTIFY_POLICY", "trigger")

		cfg, err := LoadWithoutSession()
		require.NoError(t, err)
		assert.Empty(t, cfg.GetSessionSecret())
		assert.Equal(t, "trigger", cfg.GetNotifyPolicy())
	})

	t.Run("tools still validate the store", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("ACCOUNT_STORE", "postgres")

		_, err := LoadWithoutSession()
		assert.ErrorContains(t, err, "postgres")
	})
}
