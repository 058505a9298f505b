package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"Go-Recipe-Chat/cmd/config"
	"Go-Recipe-Chat/cmd/database/seed"
	"Go-Recipe-Chat/internal/realtime"
	"Go-Recipe-Chat/internal/utils"
	"Go-Recipe-Chat/internal/utils/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	flag.Parse()

	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("error loading .env: %v", err)
	}

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(cfg utils.Config) error {
	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeDB, err := config.OpenRepositories(cfg)
	if err != nil {
		return fmt.Errorf("storage setup (%s): %w", cfg.StorageDriver, err)
	}
	defer func() {
		if err := closeDB(); err != nil {
			appLog.Warn("close database", "error", err)
		}
	}()

	if cfg.SeedDemoData {
		if err := seed.Seed(ctx, repos.User, repos.Recipe, repos.Chat, appLog); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	bus := realtime.NewLocalBus()
	if cfg.RedisAddr != "" {
		if bus, err = realtime.NewRedisBus(appLog, cfg.RedisAddr, cfg.RedisChannel); err != nil {
			return fmt.Errorf("redis bus setup: %w", err)
		}
	}
	defer bus.Close()

	app, err := config.NewApp(ctx, cfg, repos, bus, appLog)
	if err != nil {
		return fmt.Errorf("app setup: %w", err)
	}

	go func() {
		<-ctx.Done()
		appLog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLog.Warn("shutdown", "error", err)
		}
	}()

	appLog.Info("server starting", "port", cfg.AppPort, "storage", cfg.StorageDriver)
	return app.Listen(":" + cfg.AppPort)
}
