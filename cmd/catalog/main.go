package main

import (
	"context"
	"fmt"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"go.uber.org/zap"

	"github.com/davidroman0O/firm-catalog/catalog"
	"github.com/davidroman0O/firm-catalog/internal/config"
	"github.com/davidroman0O/firm-catalog/internal/logging"
	"github.com/davidroman0O/firm-catalog/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	// Create mono application with configuration
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		logger.Fatal("Failed to create mono application", zap.Error(err))
	}

	app.Register(web.NewModule(web.Config{
		Addr:       cfg.Addr,
		SessionTTL: cfg.SessionTTL,
	}, logger, catalog.WithLoadDelay(cfg.LoadDelay)))

	if err := app.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start application", zap.Error(err))
	}

	logger.Info("Catalog started",
		zap.String("addr", cfg.Addr),
		zap.String("mode", cfg.LogMode),
		zap.Duration("load_delay", cfg.LoadDelay),
	)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	logger.Info("Application exited", zap.Int("code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}
