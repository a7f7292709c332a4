package main

import (
	"context"
	"github.com/naieum/omni/internal/command"
	"github.com/naieum/omni/internal/logginglevel"
	"go.uber.org/zap"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Initialize logger
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = logginglevel.Level

	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	zap.ReplaceGlobals(logger)

	// Terminate gracefully on SIGINT and SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := command.NewRootCommand().ExecuteContext(ctx); err != nil {
		//nolint:gocritic // zap's Fatal calls os.Exit, which is fine here
		zap.S().Fatal(err)
	}
}
