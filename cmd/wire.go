package cmd

import (
	"fmt"

	"github.com/bnema/unich-miner/internal/adapters/api/unich"
	"github.com/bnema/unich-miner/internal/adapters/config"
	"github.com/bnema/unich-miner/internal/adapters/logging"
	statusadapter "github.com/bnema/unich-miner/internal/adapters/render/status"
	"github.com/bnema/unich-miner/internal/adapters/source/file"
	"github.com/bnema/unich-miner/internal/application"
	"github.com/bnema/unich-miner/internal/domain"
	"github.com/bnema/unich-miner/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	config         config.Config
	logger         *zap.Logger
	closeLog       func() error
	api            *unich.Client
	credentials    *file.Lines
	proxies        *file.Lines
	clock          ports.Clock
	statusRenderer func([]domain.Snapshot, statusadapter.RenderOptions) (string, error)
}

type appLoader func() (*app, error)

func wireApp(configPath string) (*app, error) {
	cfg, err := config.Load(viper.New(), configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	client := unich.NewClient(unich.Config{
		BaseURL: cfg.API.BaseURL,
		IPURL:   cfg.API.IPURL,
		Timeout: cfg.API.Timeout,
	})

	logger.Info("configuration loaded",
		zap.String("file", cfg.File),
		zap.String("credentials", cfg.CredentialsPath),
		zap.String("proxies", cfg.ProxiesPath),
	)

	return &app{
		config:         cfg,
		logger:         logger,
		closeLog:       closeLog,
		api:            client,
		credentials:    file.NewLines(cfg.CredentialsPath),
		proxies:        file.NewLines(cfg.ProxiesPath),
		clock:          ports.SystemClock{},
		statusRenderer: statusadapter.Render,
	}, nil
}

func (a *app) newOrchestrator(display ports.Display) *application.Orchestrator {
	return application.NewOrchestrator(a.api, display, a.clock, application.OrchestratorOptions{
		Agent: application.AgentOptions{
			TickInterval: a.config.Schedule.Tick,
			ResyncDelay:  a.config.Schedule.ResyncDelay,
		},
		Logger: a.logger,
	})
}

func (a *app) close() {
	a.api.Close()
	_ = a.closeLog()
}
