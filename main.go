package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"unoroom/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := server.LoadConfig()
	if err != nil {
		sugar.Fatalw("config error", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, sugar)
	sugar.Infow("uno server starting", "addr", cfg.Addr)
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("server error", "err", err)
	}
	sugar.Infow("uno server stopped")
}
