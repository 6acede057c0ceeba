package main

import (
	"context"
	"os"

	"monument-backend/internal/config"
	"monument-backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		logger.Error("configuration error", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment)

	srv, err := newServer(context.Background(), cfg)
	if err != nil {
		logger.Error("startup failed", err)
		os.Exit(1)
	}

	if err := srv.run(); err != nil {
		logger.Error("server exited with error", err)
		os.Exit(1)
	}
}
