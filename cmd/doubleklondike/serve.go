package main

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"doubleklondike/cmd/doubleklondike/shared"
	"doubleklondike/internal/server"
	"doubleklondike/internal/session"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Addr        string        `kong:"help='Listen address, overrides the config file'"`
	Config      string        `kong:"default='doubleklondike.hcl',help='HCL config file path'"`
	Debug       bool          `kong:"help='Enable debug logging'"`
	SessionTTL  time.Duration `kong:"help='Idle session lifetime, overrides the config file'"`
	MaxSessions int           `kong:"help='Live session cap, negative for unlimited, overrides the config file'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The config file sets the level unless --debug asks for more
	if !c.Debug {
		if level, err := zerolog.ParseLevel(cfg.Server.LogLevel); err == nil {
			logger = logger.Level(level)
		}
	}

	// Flags override file values
	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}
	managerCfg := cfg.ManagerConfig()
	if c.SessionTTL > 0 {
		managerCfg.TTL = c.SessionTTL
	}
	if c.MaxSessions > 0 {
		managerCfg.MaxSessions = c.MaxSessions
	} else if c.MaxSessions < 0 {
		managerCfg.MaxSessions = 0
	}

	manager := session.NewManager(logger, quartz.NewReal(), managerCfg)
	srv := server.NewServer(logger, manager, cfg)

	logger.Info().
		Str("address", addr).
		Dur("session_ttl", managerCfg.TTL).
		Dur("sweep_interval", managerCfg.SweepInterval).
		Int("max_sessions", managerCfg.MaxSessions).
		Bool("validate_after_move", cfg.Game.ValidateAfterMove).
		Msg("Starting Double Klondike server")

	// Setup graceful shutdown
	ctx := shared.SetupSignalHandlerWithLogger(logger)
	g, ctx := errgroup.WithContext(ctx)

	manager.StartReaper(ctx)
	defer manager.StopReaper()

	g.Go(func() error {
		return srv.Start(addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
