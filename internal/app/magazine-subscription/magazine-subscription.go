// Package magazinesubscription собирает и запускает основное HTTP-приложение:
// хранилище, кеш, очередь уведомлений, сервисы и маршруты.
package magazinesubscription

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/magazine-subscription/internal/cache"
	"github.com/magabrotheeeer/magazine-subscription/internal/config"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/jwt"
	"github.com/magabrotheeeer/magazine-subscription/internal/migrations"
	"github.com/magabrotheeeer/magazine-subscription/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/magazine-subscription/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/magazine-subscription/internal/services/catalog"
	subscriptionservice "github.com/magabrotheeeer/magazine-subscription/internal/services/subscription"
	"github.com/magabrotheeeer/magazine-subscription/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение из конфигурации: подключает PostgreSQL,
// применяет миграции, поднимает Redis и RabbitMQ, создает сервисы
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, err
	}
	notifier := rabbitmq.NewNotifier(ch)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey)
	authService := authservice.NewAuthService(db, jwtMaker, notifier, logger,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, catalogService, cacheRedis, logger)

	limiter := rate.NewLimiter(rate.Every(time.Second), 10)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, catalogService, subscriptionService, db, limiter)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или фатальной ошибки сервера. При отмене выполняется graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
