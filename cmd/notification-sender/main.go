// Точка входа воркера отправки писем о сбросе пароля.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	notificationsender "github.com/magabrotheeeer/magazine-subscription/internal/app/notification-sender"
	"github.com/magabrotheeeer/magazine-subscription/internal/config"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting notification-sender", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := notificationsender.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize notification-sender", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("notification-sender stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("notification-sender stopped gracefully")
}
