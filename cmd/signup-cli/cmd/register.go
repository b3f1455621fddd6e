package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/nfrund/signup/internal/accounts"
	"github.com/nfrund/signup/internal/config"
	"github.com/nfrund/signup/internal/domain"
	"github.com/nfrund/signup/internal/registration"
	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account in the configured account store",
		Long: `register runs a registration through the same form lifecycle as the web
form and stores the account in the store selected by ACCOUNT_STORE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadWithoutSession()
			if err != nil {
				return err
			}
			policy, err := registration.ParseNotifyPolicy(cfg.GetNotifyPolicy())
			if err != nil {
				return err
			}
			if cfg.GetAccountStore() == "memory" {
				cmd.PrintErrln("warning: ACCOUNT_STORE=memory, the account is discarded when this command exits")
			}
			repo, closeRepo, err := accounts.NewRepository(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeRepo()
			return runRegister(cmd, accounts.NewService(repo).Register, in, registration.NewLocalizer(flags.lang),
				registration.WithNotifyPolicy(policy))
		},
	}
	flags.bind(cmd)
	return cmd
}

func runRegister(cmd *cobra.Command, submit registration.SubmitHandler, in registration.Input, l *registration.Localizer, opts ...registration.Option) error {
	var notice *registration.Notice
	opts = append(opts, registration.WithNotifier(registration.NotifierFunc(
		func(_ context.Context, n registration.Notice) { notice = &n },
	)))
	form := registration.NewForm(submit, opts...)
	for _, f := range registration.Fields {
		if err := form.Set(f, in.Get(f)); err != nil {
			return err
		}
	}

	errs, err := form.Submit(cmd.Context())
	// With NotifyOnTrigger the notice is sent before the outcome is known.
	if notice != nil {
		fmt.Fprintln(cmd.OutOrStdout(), l.Notice(*notice))
	}
	switch {
	case errors.Is(err, domain.ErrAccountExists):
		return fmt.Errorf("%s is already registered", in.Email)
	case err != nil:
		return err
	case !errs.Empty():
		printErrors(cmd.OutOrStdout(), l, errs)
		return errInvalid
	}
	return nil
}
