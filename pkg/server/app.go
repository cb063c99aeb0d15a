package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RiskPulse/internal/handler/api"
	"RiskPulse/internal/usecase"
	pkgch "RiskPulse/pkg/clickhouse"
	"RiskPulse/pkg/config"
	xhttp "RiskPulse/pkg/http"
	applogger "RiskPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle: the periodic
// collection loop, the HTTP API, and infrastructure clients.
type App struct {
	cfg        *config.Config
	collector  *usecase.Collector
	handler    *api.AssessmentEchoHandler
	chClient   *pkgch.Client
	log        *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	collector *usecase.Collector,
	handler *api.AssessmentEchoHandler,
	chClient *pkgch.Client,
	log *applogger.Logger,
) *App {
	return &App{
		cfg:       cfg,
		collector: collector,
		handler:   handler,
		chClient:  chClient,
		log:       log,
	}
}

// RunOnce executes a single collection cycle and exits. Used by schedulers
// (cron) that own the interval themselves.
func (a *App) RunOnce(ctx context.Context) error {
	defer a.collector.Close()
	_, err := a.collector.Collect(ctx)
	return err
}

// Run starts the collection loop and HTTP server, blocking until
// interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	go a.collectLoop(ctx)
	a.log.Info("collector started",
		applogger.Duration("interval", a.interval()),
		applogger.String("backend", a.cfg.Backend.Type),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

func (a *App) interval() time.Duration {
	if a.cfg.Collector.Interval > 0 {
		return a.cfg.Collector.Interval
	}
	return time.Hour
}

// collectLoop runs one cycle immediately, then one per interval.
func (a *App) collectLoop(ctx context.Context) {
	a.runCycle(ctx)

	ticker := time.NewTicker(a.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runCycle(ctx)
		}
	}
}

func (a *App) runCycle(ctx context.Context) {
	if _, err := a.collector.Collect(ctx); err != nil && ctx.Err() == nil {
		a.log.Error("collection cycle failed", applogger.Error(err))
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	a.collector.Close()

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	a.log.RemoveCollector()
	return nil
}
