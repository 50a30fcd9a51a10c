package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skywings/config"
	"github.com/Domenick1991/skywings/internal/email"
	"github.com/Domenick1991/skywings/internal/kafka"
	"github.com/Domenick1991/skywings/internal/logger"
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

	if !cfg.Kafka.Enabled() {
		lg.Fatal("worker needs kafka.brokers to be configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, lg)
	defer func() {
		if err := consumer.Close(); err != nil {
			lg.Warn("close consumer", zap.Error(err))
		}
	}()

	sender := email.NewSender(lg)

	lg.Info("notifications worker started",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.NotificationsTopic),
		zap.String("group_id", cfg.Kafka.GroupID),
	)
	if err := consumer.Consume(ctx, sender.HandleMessage); err != nil {
		lg.Error("consumer stopped", zap.Error(err))
		return
	}
	lg.Info("notifications worker stopped")
}
