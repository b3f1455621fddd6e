package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nfrund/signup/internal/accounts"
	"github.com/nfrund/signup/internal/registration"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	t.Run("valid flags", func(t *testing.T) {
		out, err := execute(t, newValidateCmd(), "",
			"--full-name", "John Doe", "--email", "john@example.com",
			"--password", "secret1", "--retype-password", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "ok\n", out)
	})

	t.Run("errors in form order", func(t *testing.T) {
		out, err := execute(t, newValidateCmd(), "", "--full-name", "John", "--password", "abc")
		assert.ErrorIs(t, err, errInvalid)
		assert.Equal(t, strings.Join([]string{
			"fullName: Please enter at least two words",
			"email: Email is required",
			"password: Please enter at least 6 characters",
			"retypePassword: Retype Password is required",
		}, "\n")+"\n", out)
	})

	t.Run("json from stdin in vietnamese", func(t *testing.T) {
		doc := `{"fullName":"John Doe","email":"john@","password":"secret1","retypePassword":"secret1"}`
		out, err := execute(t, newValidateCmd(), doc, "--json", "-", "--lang", "vi")
		assert.ErrorIs(t, err, errInvalid)
		assert.Contains(t, out, "email: Vui lòng nhập email hợp lệ")
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := execute(t, newValidateCmd(), "{", "--json", "-")
		assert.ErrorContains(t, err, "decode registration")
	})
}

func TestRunRegister(t *testing.T) {
	valid := registration.Input{FullName: "John Doe", Email: "john@example.com", Password: "secret1", RetypePassword: "secret1"}
	svc := accounts.NewService(accounts.NewMemoryStore(), accounts.WithBcryptCost(bcrypt.MinCost))

	t.Run("success prints the notice", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRegisterCmd()
		cmd.SetOut(&out)
		cmd.SetContext(context.Background())

		require.NoError(t, runRegister(cmd, svc.Register, valid, registration.NewLocalizer("en")))
		assert.Equal(t, "Register successfully\n", out.String())
	})

	t.Run("duplicate", func(t *testing.T) {
		cmd := newRegisterCmd()
		cmd.SetContext(context.Background())
		err := runRegister(cmd, svc.Register, valid, registration.NewLocalizer("en"))
		assert.ErrorContains(t, err, "already registered")
	})

	t.Run("store failure", func(t *testing.T) {
		cmd := newRegisterCmd()
		cmd.SetContext(context.Background())
		boom := errors.New("disk full")
		err := runRegister(cmd, func(context.Context, registration.Input) error { return boom }, valid, registration.NewLocalizer("en"))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("invalid input", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRegisterCmd()
		cmd.SetOut(&out)
		cmd.SetContext(context.Background())
		err := runRegister(cmd, svc.Register, registration.Input{}, registration.NewLocalizer("en"))
		assert.ErrorIs(t, err, errInvalid)
		assert.Contains(t, out.String(), "fullName: Full Name is required")
	})
}

func TestRunRegister_TriggerPolicy(t *testing.T) {
	var out bytes.Buffer
	cmd := newRegisterCmd()
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	svc := accounts.NewService(accounts.NewMemoryStore(), accounts.WithBcryptCost(bcrypt.MinCost))

	err := runRegister(cmd, svc.Register, registration.Input{}, registration.NewLocalizer("en"),
		registration.WithNotifyPolicy(registration.NotifyOnTrigger))
	assert.ErrorIs(t, err, errInvalid)
	assert.True(t, strings.HasPrefix(out.String(), "Register successfully\n"), out.String())
	assert.Contains(t, out.String(), "email: Email is required")
}

func TestRegisterCmd(t *testing.T) {
	args := []string{"--full-name", "John Doe", "--email", "john@example.com", "--password", "secret1", "--retype-password", "secret1"}

	t.Run("memory store needs no session secret and warns", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("ACCOUNT_STORE", "memory")

		out, err := execute(t, newRegisterCmd(), "", args...)
		require.NoError(t, err)
		assert.Contains(t, out, "warning: ACCOUNT_STORE=memory")
		assert.Contains(t, out, "Register successfully")
	})

	t.Run("file store persists without a warning", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "accounts.json")
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("ACCOUNT_STORE", "file")
		t.Setenv("ACCOUNT_FILE", path)

		out, err := execute(t, newRegisterCmd(), "", args...)
		require.NoError(t, err)
		assert.NotContains(t, out, "warning")

		_, err = execute(t, newRegisterCmd(), "", args...)
		assert.ErrorContains(t, err, "already registered")
	})

	t.Run("unknown notify policy", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("ACCOUNT_STORE", "memory")
		t.Setenv("NOTIFY_POLICY", "sometimes")

		_, err := execute(t, newRegisterCmd(), "", args...)
		assert.ErrorContains(t, err, "sometimes")
	})
}
