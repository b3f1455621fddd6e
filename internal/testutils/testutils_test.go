package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigForTests(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := ConfigForTests(t)
		assert.NotEmpty(t, cfg.GetSessionSecret())
		assert.Equal(t, time.Minute, cfg.GetFormTTL())
	})

	t.Run("overrides", func(t *testing.T) {
		cfg := ConfigForTests(t, "NOTIFY_POLICY", "trigger", "ACCOUNT_STORE", "file")
		assert.Equal(t, "trigger", cfg.GetNotifyPolicy())
		assert.Equal(t, "file", cfg.GetAccountStore())
	})
}
