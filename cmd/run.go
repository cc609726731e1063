package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	statusadapter "github.com/bnema/unich-miner/internal/adapters/render/status"
	"github.com/bnema/unich-miner/internal/adapters/source/file"
	"github.com/bnema/unich-miner/internal/application"
	"github.com/bnema/unich-miner/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(load appLoader) *cobra.Command {
	var (
		watch    bool
		inline   bool
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start every account and open the live dashboard",
		Long:  "run starts one mining agent per account and shows them in a dashboard. Without a terminal on stdin and stdout, or with --headless, agents run until interrupted and report to the log file only.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sources, err := application.LoadSources(ctx, app.credentials, app.proxies)
			if err != nil {
				return err
			}
			logSourceProblems(app.logger, sources)

			var (
				orchestrator *application.Orchestrator
				wait         func(context.Context) error
			)
			if !headless && isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout()) {
				display := statusadapter.NewDisplay()
				orchestrator = app.newOrchestrator(display)
				dashboard := statusadapter.NewDashboard(orchestrator, display, statusadapter.DashboardOptions{
					Input:  cmd.InOrStdin(),
					Output: cmd.OutOrStdout(),
					Inline: inline,
				})
				wait = dashboard.Run
			} else {
				orchestrator = app.newOrchestrator(nil)
				wait = waitForShutdown
				announceHeadless(cmd, app, len(sources.Accounts))
			}

			orchestrator.Start(ctx, sources.Accounts, sources.Proxies)

			if !cmd.Flags().Changed("watch") {
				watch = app.config.Watch
			}
			reload := &reloader{app: app, orchestrator: orchestrator}
			if watch {
				paths := []string{app.credentials.Path(), app.proxies.Path()}
				if err := file.Watch(ctx, paths, file.DefaultDebounce, app.logger, func() { reload.run(ctx) }); err != nil {
					app.logger.Warn("source watch disabled", zap.Error(err))
				}
			}

			runErr := wait(ctx)
			reload.close()
			orchestrator.Stop()
			logFinalStates(app.logger, orchestrator.Snapshots())

			return runErr
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "rebuild all accounts when the credential or proxy file changes")
	cmd.Flags().BoolVar(&inline, "inline", false, "render in the current screen instead of the alternate screen")
	cmd.Flags().BoolVar(&headless, "headless", false, "run without the dashboard even when a terminal is attached")

	return cmd
}

// waitForShutdown blocks until ctx is cancelled. Shutdown is a clean exit.
func waitForShutdown(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func announceHeadless(cmd *cobra.Command, app *app, accounts int) {
	logPath := app.config.Log.Path
	if strings.TrimSpace(logPath) == "" {
		logPath = "nowhere (log.path is empty)"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Running %d account(s) headless without the dashboard. Agent logs go to %s.\n", accounts, logPath)
}

func logFinalStates(logger *zap.Logger, snapshots []domain.Snapshot) {
	for _, snapshot := range snapshots {
		logger.Info("final account state",
			zap.Int("account", int(snapshot.ID)),
			zap.Stringer("status", snapshot.Status),
			zap.Float64("total_points", snapshot.TotalPoints),
		)
	}
}

// reloader rebuilds the agent set from the sources. After close no further
// rebuild starts, and close waits for one in flight.
type reloader struct {
	app          *app
	orchestrator *application.Orchestrator

	mu     sync.Mutex
	closed bool
}

func (r *reloader) run(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || ctx.Err() != nil {
		return
	}

	sources, err := application.LoadSources(ctx, r.app.credentials, r.app.proxies)
	if err != nil {
		r.app.logger.Warn("reload skipped", zap.Error(err))
		return
	}
	logSourceProblems(r.app.logger, sources)

	r.app.logger.Info("sources changed, rebuilding agents", zap.Int("accounts", len(sources.Accounts)))
	r.orchestrator.Rebuild(ctx, sources.Accounts, sources.Proxies)
}

func (r *reloader) close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
}

func logSourceProblems(logger *zap.Logger, sources application.Sources) {
	if sources.CredentialErr != nil {
		logger.Warn("credential source unreadable, running with no accounts", zap.Error(sources.CredentialErr))
	}
	if sources.Proxies.ReadErr != nil {
		logger.Warn("proxy source unreadable, running direct", zap.Error(sources.Proxies.ReadErr))
	}
}
