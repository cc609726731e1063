package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/bnema/unich-miner/internal/ports"
)

const (
	DefaultTickInterval = time.Second
	DefaultResyncDelay  = 10 * time.Second

	unknownIP = "Unknown"
)

type AgentOptions struct {
	TickInterval time.Duration
	ResyncDelay  time.Duration
	LogCapacity  int
}

func (o AgentOptions) withDefaults() AgentOptions {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.ResyncDelay <= 0 {
		o.ResyncDelay = DefaultResyncDelay
	}
	if o.LogCapacity <= 0 {
		o.LogCapacity = domain.DefaultLogCapacity
	}
	return o
}

// agentObserver receives every published snapshot and log line. Calls
// come from the agent's own goroutine.
type agentObserver interface {
	agentChanged(agent *Agent, snapshot domain.Snapshot)
	agentLogged(agent *Agent, line string)
}

// Agent runs the mining state machine of one account. Everything below the
// mu field is owned by the goroutine running Run (or Bootstrap) and is
// never touched from outside; readers get copies through Snapshot.
type Agent struct {
	account  domain.Account
	proxy    domain.Proxy
	api      ports.MiningAPI
	clock    ports.Clock
	opts     AgentOptions
	observer agentObserver

	mu        sync.RWMutex
	published domain.Snapshot

	state  domain.Snapshot
	logs   *domain.LogBuffer
	resync ports.Timer
}

func NewAgent(account domain.Account, proxy domain.Proxy, api ports.MiningAPI, clock ports.Clock, opts AgentOptions) *Agent {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	opts = opts.withDefaults()

	state := domain.NewSnapshot(account.ID, proxy)
	return &Agent{
		account:   account,
		proxy:     proxy,
		api:       api,
		clock:     clock,
		opts:      opts,
		state:     state,
		published: state,
		logs:      domain.NewLogBuffer(opts.LogCapacity),
	}
}

func (a *Agent) ID() domain.AccountID {
	return a.account.ID
}

func (a *Agent) Proxy() domain.Proxy {
	return a.proxy
}

// Snapshot returns the last published state.
func (a *Agent) Snapshot() domain.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snapshot := a.published
	snapshot.Logs = append([]string(nil), a.published.Logs...)
	return snapshot
}

// Run bootstraps the account and then drives the tick loop and the
// delayed resync until ctx is cancelled. Both timers are stopped on return.
func (a *Agent) Run(ctx context.Context) {
	a.Bootstrap(ctx)

	ticker := a.clock.NewTicker(a.opts.TickInterval)
	defer ticker.Stop()
	defer a.cancelResync()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			a.tick()
		case <-a.resyncC():
			a.runResync(ctx)
		}
	}
}

// Bootstrap resolves the public IP, fetches account info and starts a
// cycle when none is running.
func (a *Agent) Bootstrap(ctx context.Context) {
	if a.proxy.IsDirect() {
		a.log("No proxy configured")
	} else {
		a.log(fmt.Sprintf("Using proxy: %s", a.proxy.Summary()))
	}

	ip, err := a.api.FetchPublicIP(ctx, a.proxy)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		a.state.IPAddress = unknownIP
		a.log(fmt.Sprintf("Failed to fetch IP: %v", err))
	} else {
		a.state.IPAddress = ip
	}
	a.publish()

	a.syncAccount(ctx, true)
}

func (a *Agent) tick() {
	if a.state.Status != domain.StatusMiningActive {
		return
	}

	a.state.RemainingMillis -= a.opts.TickInterval.Milliseconds()
	if a.state.RemainingMillis > 0 {
		a.publish()
		return
	}

	a.state.RemainingMillis = 0
	a.state.Status = domain.StatusIdle
	a.log("Mining is not running")
	a.scheduleResync()
	a.publish()
}

func (a *Agent) runResync(ctx context.Context) {
	a.resync = nil
	a.syncAccount(ctx, true)
}

// syncAccount fetches authoritative state and applies it. startIfIdle is
// false right after a successful start so a slow remote flag flip does not
// trigger a second start request.
func (a *Agent) syncAccount(ctx context.Context, startIfIdle bool) {
	info, err := a.api.FetchAccountInfo(ctx, a.proxy, a.account.Credential)
	if err != nil {
		a.fail(ctx, "Failed to fetch user info", err)
		return
	}

	a.state.Email = info.Email
	a.state.TotalPoints = info.TotalPoints
	a.log("User info fetched successfully")

	if info.Mining.Started {
		a.state.Status = domain.StatusMiningActive
		a.state.RemainingMillis = max(info.Mining.RemainingMillis, 0)
		a.log("Mining is running")
		a.publish()
		return
	}

	a.state.Status = domain.StatusIdle
	a.state.RemainingMillis = 0
	a.log("Mining is not running")
	a.publish()

	if !startIfIdle {
		a.scheduleResync()
		return
	}

	if err := a.api.StartMiningCycle(ctx, a.proxy, a.account.Credential); err != nil {
		a.fail(ctx, "Failed to start mining", err)
		return
	}
	a.log("Mining started successfully")

	a.syncAccount(ctx, false)
}

// fail records a remote-call failure. Auth failures are terminal; anything
// else keeps the current state and, outside an active cycle, retries at the
// next resync.
func (a *Agent) fail(ctx context.Context, action string, err error) {
	if ctx.Err() != nil {
		return
	}

	a.log(fmt.Sprintf("%s: %v", action, err))

	if domain.IsAuth(err) {
		a.log("Invalid token: Unauthorized (401)")
		a.state.Status = domain.StatusError
		a.state.RemainingMillis = 0
		a.cancelResync()
		a.publish()
		return
	}

	if a.state.Status == domain.StatusIdle {
		a.scheduleResync()
	}
	a.publish()
}

func (a *Agent) scheduleResync() {
	if a.resync != nil || a.state.Status == domain.StatusError {
		return
	}

	a.resync = a.clock.NewTimer(a.opts.ResyncDelay)
}

func (a *Agent) cancelResync() {
	if a.resync == nil {
		return
	}

	a.resync.Stop()
	a.resync = nil
}

// resyncC is nil while no resync is pending, which blocks forever in select.
func (a *Agent) resyncC() <-chan time.Time {
	if a.resync == nil {
		return nil
	}
	return a.resync.C()
}

func (a *Agent) log(message string) {
	line := fmt.Sprintf("[%s] [Account %s] %s", a.clock.Now().Format("15:04:05"), a.account.ID, message)
	a.logs.Append(line)

	if a.observer != nil {
		a.observer.agentLogged(a, line)
	}
}

func (a *Agent) publish() {
	snapshot := a.state
	snapshot.Logs = a.logs.Lines()

	a.mu.Lock()
	a.published = snapshot
	a.mu.Unlock()

	if a.observer != nil {
		a.observer.agentChanged(a, snapshot)
	}
}
