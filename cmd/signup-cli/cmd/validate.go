package cmd

import (
	"errors"
	"fmt"

	"github.com/nfrund/signup/internal/registration"
	"github.com/spf13/cobra"
)

var errInvalid = errors.New("registration is invalid")

func newValidateCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a registration against the form rules",
		Example: `  signup-cli validate --full-name "John Doe" --email john@example.com --password secret1 --retype-password secret1
  echo '{"email":"bad"}' | signup-cli validate --json - --lang vi`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(cmd)
			if err != nil {
				return err
			}
			l := registration.NewLocalizer(flags.lang)
			errs := registration.Validate(in)
			if errs.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			printErrors(cmd.OutOrStdout(), l, errs)
			return errInvalid
		},
	}
	flags.bind(cmd)
	return cmd
}
