package main

import (
	"context"
	"os"
	"os/signal"

	"employee-management/internal/cli"

	"go.uber.org/zap"
)

func main() {
	logger := zap.NewNop()
	if os.Getenv("EMPLOYEECTL_DEBUG") != "" {
		logger, _ = zap.NewDevelopment()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, logger)
	stop()
	_ = logger.Sync()
	os.Exit(code)
}
