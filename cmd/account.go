package cmd

import (
	"fmt"

	"github.com/bnema/unich-miner/internal/application"
	"github.com/spf13/cobra"
)

func newAccountCmd(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect configured accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(load),
	)

	return cmd
}

func newAccountListCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts from the credential file with their assigned proxy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.close()

			accounts, err := application.LoadAccounts(cmd.Context(), app.credentials)
			if err != nil {
				return err
			}
			proxies := application.LoadProxies(cmd.Context(), app.proxies)

			if len(accounts) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No valid tokens found in %s.\n", app.credentials.Path())
				return nil
			}

			for i, account := range accounts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", account.ID, maskCredential(account.Credential), proxies.Assign(i).Summary())
			}

			return nil
		},
	}
}

func maskCredential(credential string) string {
	if len(credential) <= 12 {
		return "****"
	}

	return credential[:6] + "..." + credential[len(credential)-4:]
}
