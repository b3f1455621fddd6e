package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/nfrund/signup/internal/config"
)

// testDefaults are applied before .env.test so a missing file still yields a
// valid in-memory configuration.
var testDefaults = map[string]string{
	"SESSION_SECRET": "a-very-secret-key-for-testing-!",
	"SERVER_ADDR":    "127.0.0.1:0",
	"APP_BASE_URL":   "http://localhost:8080",
	"ACCOUNT_STORE":  "memory",
	"EMAIL_PROVIDER": "log",
	"FORM_TTL":       "1m",
	"NOTIFY_POLICY":  "success",
}

// ConfigForTests returns a config for tests. Values from .env.test at the
// project root, when present, override the defaults; overrides win over
// both. Variables are set with t.Setenv so they are restored afterwards.
func ConfigForTests(t *testing.T, overrides ...string) *config.Config {
	t.Helper()
	if len(overrides)%2 != 0 {
		t.Fatalf("overrides must be key/value pairs")
	}

	for key, value := range testDefaults {
		t.Setenv(key, value)
	}
	if root, ok := projectRoot(); ok {
		env, err := godotenv.Read(filepath.Join(root, ".env.test"))
		if err == nil {
			for key, value := range env {
				t.Setenv(key, value)
			}
		}
	}
	for i := 0; i < len(overrides); i += 2 {
		t.Setenv(overrides[i], overrides[i+1])
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}
	return cfg
}

// projectRoot walks up from the working directory to the go.mod.
func projectRoot() (string, bool) {
	path, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, true
		}
		if path == filepath.Dir(path) {
			return "", false
		}
		path = filepath.Dir(path)
	}
}
