package application

import (
	"context"
	"sync"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/bnema/unich-miner/internal/ports"
	"go.uber.org/zap"
)

const emptyStateReason = "No valid tokens found in credential source."

type OrchestratorOptions struct {
	Agent  AgentOptions
	Logger *zap.Logger
}

// Orchestrator owns the agent set and the single display cursor. Agents
// never see the cursor; the orchestrator decides which agent's updates
// reach the display.
type Orchestrator struct {
	api     ports.MiningAPI
	display ports.Display
	clock   ports.Clock
	opts    OrchestratorOptions
	logger  *zap.Logger

	// mu guards agents, cursor and cancel, and serializes display calls so
	// a cursor change and an agent update never interleave.
	mu     sync.Mutex
	agents []*Agent
	cursor int
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrchestrator(api ports.MiningAPI, display ports.Display, clock ports.Clock, opts OrchestratorOptions) *Orchestrator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if display == nil {
		display = nopDisplay{}
	}

	return &Orchestrator{
		api:     api,
		display: display,
		clock:   clock,
		opts:    opts,
		logger:  logger,
	}
}

// Start builds one agent per account, in order, and runs each on its own
// goroutine. An empty account list only reports the empty state.
func (o *Orchestrator) Start(ctx context.Context, accounts []domain.Account, proxies ProxyResolution) {
	agents := o.buildAgents(accounts, proxies)

	for _, diagnostic := range proxies.Diagnostics {
		o.logger.Warn("proxy diagnostic", zap.String("detail", diagnostic))
	}

	// Seed logs before any observer is attached; the goroutines have not
	// started yet so this is still single-owner.
	for _, agent := range agents {
		if proxies.Direct() {
			agent.log(proxies.Combined())
		}
	}
	if len(agents) > 0 {
		agents[0].log("Miner initialized successfully")
		for _, agent := range agents {
			agent.publish()
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.agents = agents
	o.cursor = 0

	if len(agents) == 0 {
		o.logger.Warn("no accounts to run")
		o.display.ShowEmpty(emptyStateReason)
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for _, agent := range agents {
		agent.observer = o
	}

	o.display.ShowCursor(0, len(agents))
	o.display.ShowSnapshot(agents[0].Snapshot())

	o.logger.Info("starting agents", zap.Int("accounts", len(agents)), zap.Int("proxies", len(proxies.Proxies)))
	o.wg.Add(len(agents))
	for _, agent := range agents {
		go func(agent *Agent) {
			defer o.wg.Done()
			agent.Run(runCtx)
		}(agent)
	}
}

// Rebuild replaces the whole agent set, for example after the credential
// or proxy source changed.
func (o *Orchestrator) Rebuild(ctx context.Context, accounts []domain.Account, proxies ProxyResolution) {
	o.logger.Info("rebuilding agents")
	o.Stop()
	o.Start(ctx, accounts, proxies)
}

// Stop cancels every agent and waits until their timers are released.
// Each stopped agent logs "Miner stopped".
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	agents := append([]*Agent(nil), o.agents...)
	o.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	o.wg.Wait()

	// The agent goroutines have returned, so their logs are ours again.
	for _, agent := range agents {
		agent.log("Miner stopped")
		agent.publish()
	}
	o.logger.Info("agents stopped", zap.Int("accounts", len(agents)))
}

// Probe bootstraps every account once, concurrently, without ticking, and
// returns the resulting snapshots in account order. onProbed, when set, is
// called from the probing goroutine as each account finishes.
func (o *Orchestrator) Probe(ctx context.Context, accounts []domain.Account, proxies ProxyResolution, onProbed func(domain.Snapshot)) ([]domain.Snapshot, error) {
	if len(accounts) == 0 {
		return nil, domain.ErrNoAccounts
	}

	agents := o.buildAgents(accounts, proxies)
	var wg sync.WaitGroup
	wg.Add(len(agents))
	for _, agent := range agents {
		go func(agent *Agent) {
			defer wg.Done()
			agent.Bootstrap(ctx)
			agent.cancelResync()
			if onProbed != nil {
				onProbed(agent.Snapshot())
			}
		}(agent)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshots := make([]domain.Snapshot, 0, len(agents))
	for _, agent := range agents {
		snapshots = append(snapshots, agent.Snapshot())
	}

	return snapshots, nil
}

func (o *Orchestrator) Next() int {
	return o.moveCursor(1)
}

func (o *Orchestrator) Previous() int {
	return o.moveCursor(-1)
}

func (o *Orchestrator) Current() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.cursor
}

func (o *Orchestrator) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.agents)
}

// Snapshots returns the latest snapshot of every agent in account order.
func (o *Orchestrator) Snapshots() []domain.Snapshot {
	o.mu.Lock()
	agents := append([]*Agent(nil), o.agents...)
	o.mu.Unlock()

	snapshots := make([]domain.Snapshot, 0, len(agents))
	for _, agent := range agents {
		snapshots = append(snapshots, agent.Snapshot())
	}
	return snapshots
}

func (o *Orchestrator) moveCursor(step int) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	count := len(o.agents)
	if count == 0 {
		return 0
	}

	o.cursor = ((o.cursor+step)%count + count) % count
	o.display.ShowCursor(o.cursor, count)
	o.display.ShowSnapshot(o.agents[o.cursor].Snapshot())

	return o.cursor
}

func (o *Orchestrator) buildAgents(accounts []domain.Account, proxies ProxyResolution) []*Agent {
	agents := make([]*Agent, 0, len(accounts))
	for i, account := range accounts {
		agents = append(agents, NewAgent(account, proxies.Assign(i), o.api, o.clock, o.opts.Agent))
	}
	return agents
}

func (o *Orchestrator) displayed(agent *Agent) bool {
	return len(o.agents) > 0 && o.agents[o.cursor] == agent
}

func (o *Orchestrator) agentChanged(agent *Agent, snapshot domain.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.displayed(agent) {
		o.display.ShowSnapshot(snapshot)
	}
}

func (o *Orchestrator) agentLogged(agent *Agent, line string) {
	o.logger.Info("agent log", zap.Int("account", int(agent.ID())), zap.String("line", line))

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.displayed(agent) {
		o.display.AppendLog(agent.ID(), line)
	}
}

type nopDisplay struct{}

func (nopDisplay) ShowSnapshot(domain.Snapshot)       {}
func (nopDisplay) AppendLog(domain.AccountID, string) {}
func (nopDisplay) ShowCursor(int, int)                {}
func (nopDisplay) ShowEmpty(string)                   {}
