// Точка входа основного HTTP-сервиса подписок на журналы.
//
// @title Magazine Subscription API
// @version 1.0
// @description Сервис подписок на журналы: пользователи, каталог, подписки.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	magazinesubscription "github.com/magabrotheeeer/magazine-subscription/internal/app/magazine-subscription"
	"github.com/magabrotheeeer/magazine-subscription/internal/config"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting magazine-subscription", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := magazinesubscription.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("app stopped gracefully")
}
