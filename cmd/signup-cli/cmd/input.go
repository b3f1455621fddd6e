package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nfrund/signup/internal/registration"
	"github.com/spf13/cobra"
)

// inputFlags collects a registration from flags or from a JSON document.
type inputFlags struct {
	in       registration.Input
	jsonPath string
	lang     string
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.in.FullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&f.in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&f.in.Password, "password", "", "password")
	cmd.Flags().StringVar(&f.in.RetypePassword, "retype-password", "", "password confirmation")
	cmd.Flags().StringVar(&f.jsonPath, "json", "", `read the registration from a JSON file ("-" for stdin)`)
	cmd.Flags().StringVar(&f.lang, "lang", "en", "language of the messages (en, vi)")
}

// input returns the registration. A JSON document replaces the field flags.
func (f *inputFlags) input(cmd *cobra.Command) (registration.Input, error) {
	if f.jsonPath == "" {
		return f.in, nil
	}
	var r io.Reader = cmd.InOrStdin()
	if f.jsonPath != "-" {
		file, err := os.Open(f.jsonPath)
		if err != nil {
			return registration.Input{}, fmt.Errorf("open registration: %w", err)
		}
		defer file.Close()
		r = file
	}
	var in registration.Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return registration.Input{}, fmt.Errorf("decode registration: %w", err)
	}
	return in, nil
}

// printErrors writes one "field: message" line per failing field, in form
// order.
func printErrors(w io.Writer, l *registration.Localizer, errs registration.Errors) {
	for _, field := range registration.Fields {
		if fe, ok := errs[field]; ok {
			fmt.Fprintf(w, "%s: %s\n", field, l.FieldMessage(fe))
		}
	}
}
