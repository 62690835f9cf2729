package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadolammi/careerpilot/internal/config"
	"github.com/muhammadolammi/careerpilot/internal/logger"
	"github.com/muhammadolammi/careerpilot/internal/observability"
	"github.com/muhammadolammi/careerpilot/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOtel := observability.InitOTel(ctx, lg, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: appName,
		Environment: cfg.Env,
	})

	app, err := newApp(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to start", "error", err)
	}
	defer app.Close()

	go app.Sessions.Run(ctx, sweepInterval)

	srv := server.NewServer(cfg.Addr(), app.routerConfig())
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			lg.Warn("http shutdown failed", "error", err)
		}
		if err := shutdownOtel(shutdownCtx); err != nil {
			lg.Warn("otel shutdown failed", "error", err)
		}
	}()

	lg.Info("careerpilot listening", "addr", cfg.Addr(), "model", cfg.GeminiModel, "env", cfg.Env)
	if err := srv.Run(); err != nil {
		lg.Error("server stopped", "error", err)
	}
}
