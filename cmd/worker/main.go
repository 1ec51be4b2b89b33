package main

import (
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/hugh/go-desk/internal/tasks"
	"github.com/hugh/go-desk/pkg/config"
	"github.com/hugh/go-desk/pkg/queue"
	"github.com/hugh/go-desk/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting Go-Desk worker", "env", cfg.Server.Env)

	srv := queue.NewServer(&cfg.Redis, 10)

	handler := tasks.NewHandler(&tasks.LogNotifier{Logger: logger}, logger)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRecoveryNotice, handler.HandleRecoveryNotice)

	if err := srv.Run(mux); err != nil {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}
