package cmd

import (
	"context"

	"github.com/bnema/unich-miner/internal/application"
	"github.com/bnema/unich-miner/internal/domain"
	"github.com/spf13/cobra"
)

func newCheckCmd(load appLoader) *cobra.Command {
	var (
		asJSON   bool
		showLogs bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Bootstrap every account once and print the result",
		Long:  "check runs a single bootstrap pass per account (IP lookup, account info and a cycle start when idle) and prints each account's state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.close()

			sources, err := application.LoadSources(cmd.Context(), app.credentials, app.proxies)
			if err != nil {
				return err
			}
			logSourceProblems(app.logger, sources)

			orchestrator := app.newOrchestrator(nil)

			var snapshots []domain.Snapshot
			check := func(ctx context.Context, onChecked func(domain.Snapshot)) error {
				var checkErr error
				snapshots, checkErr = orchestrator.Probe(ctx, sources.Accounts, sources.Proxies, onChecked)
				return checkErr
			}

			if asJSON {
				err = check(cmd.Context(), nil)
			} else {
				err = runCheckProgress(cmd.Context(), cmd.ErrOrStderr(), len(sources.Accounts), check)
			}
			if err != nil {
				return err
			}

			return writeSnapshotsOutput(cmd, app, snapshots, showLogs, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")
	cmd.Flags().BoolVar(&showLogs, "logs", false, "include each account's log lines")

	return cmd
}
