package cmd

import (
	"fmt"

	"github.com/bnema/unich-miner/internal/application"
	"github.com/spf13/cobra"
)

func newProxyCmd(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Inspect the proxy file",
	}

	cmd.AddCommand(
		newProxyListCmd(load),
	)

	return cmd
}

func newProxyListCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resolved proxies and every line that failed to parse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.close()

			resolution := application.LoadProxies(cmd.Context(), app.proxies)

			out := cmd.OutOrStdout()
			if resolution.Direct() {
				_, _ = fmt.Fprintln(out, "proxies: none (direct)")
			} else {
				_, _ = fmt.Fprintf(out, "proxies: %d\n", len(resolution.Proxies))
				for i, proxy := range resolution.Proxies {
					_, _ = fmt.Fprintf(out, "%d\t%s\n", i+1, proxy.Summary())
				}
			}

			for _, diagnostic := range resolution.Diagnostics {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", diagnostic)
			}

			return nil
		},
	}
}
