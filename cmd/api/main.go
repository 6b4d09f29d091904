package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"employee-management/internal/app"
	"employee-management/internal/bootstrap"
	"employee-management/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config failed", zap.Error(err))
	}

	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.BuildApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("close resources failed", zap.Error(err))
		}
	}()

	err = bootstrap.StartHTTPServer(
		ctx,
		a.Router,
		bootstrap.ServerConfig{
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		bootstrap.NewZapAuditLogger(logger),
	)
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
