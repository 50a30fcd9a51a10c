package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skywings/config"
	"github.com/Domenick1991/skywings/internal/bootstrap"
	"github.com/Domenick1991/skywings/internal/logger"
	"github.com/Domenick1991/skywings/internal/tracing"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	shutdownTracing, err := tracing.Init(cfg.Tracing.Enabled, cfg.Tracing.ServiceName)
	if err != nil {
		lg.Fatal("init tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			lg.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := bootstrap.NewServices(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("build services", zap.Error(err))
	}
	defer func() {
		if err := services.Close(); err != nil {
			lg.Warn("close services", zap.Error(err))
		}
	}()

	lg.Info("starting skywings",
		zap.String("env", cfg.Env),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("kafka", cfg.Kafka.Enabled()),
	)
	if err := bootstrap.Run(ctx, cfg, lg, services); err != nil {
		lg.Error("server error", zap.Error(err))
		return
	}
	lg.Info("skywings stopped")
}
