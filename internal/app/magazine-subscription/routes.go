// Package magazinesubscription предоставляет маршруты для основного приложения.
package magazinesubscription

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/auth/deactivate"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/auth/resetpassword"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/health"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/magazine/magazinecreate"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/magazine/magazinelist"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/magazine/magazineread"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/magazine/magazineremove"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/magazine/magazineupdate"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/plan/plancreate"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/plan/planlist"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/plan/planread"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/plan/planremove"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/plan/planupdate"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/magazine-subscription/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/magazine-subscription/internal/services/catalog"
	subscriptionservice "github.com/magabrotheeeer/magazine-subscription/internal/services/subscription"
	"github.com/magabrotheeeer/magazine-subscription/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	catalogService *catalogservice.CatalogService,
	subscriptionService *subscriptionservice.SubscriptionService,
	db *repository.Storage, limiter *rate.Limiter) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/users/register", register.New(logger, authService).ServeHTTP)
	r.Post("/users/login", login.New(logger, authService).ServeHTTP)
	r.Post("/users/reset-password", resetpassword.New(logger, authService).ServeHTTP)
	r.Post("/users/token/refresh", refresh.New(logger, authService).ServeHTTP)

	// Каталог журналов и тарифных планов
	r.Route("/magazines", func(r chi.Router) {
		r.Post("/", magazinecreate.New(logger, catalogService).ServeHTTP)
		r.Get("/", magazinelist.New(logger, catalogService).ServeHTTP)
		r.Get("/{id}", magazineread.New(logger, catalogService).ServeHTTP)
		r.Put("/{id}", magazineupdate.New(logger, catalogService).ServeHTTP)
		r.Delete("/{id}", magazineremove.New(logger, catalogService).ServeHTTP)
	})
	r.Route("/plans", func(r chi.Router) {
		r.Post("/", plancreate.New(logger, catalogService).ServeHTTP)
		r.Get("/", planlist.New(logger, catalogService).ServeHTTP)
		r.Get("/{id}", planread.New(logger, catalogService).ServeHTTP)
		r.Put("/{id}", planupdate.New(logger, catalogService).ServeHTTP)
		r.Delete("/{id}", planremove.New(logger, catalogService).ServeHTTP)
	})

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

		r.Get("/users/me", me.New(logger, authService).ServeHTTP)
		r.Delete("/users/deactivate/{username}", deactivate.New(logger, authService).ServeHTTP)

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/", create.New(logger, subscriptionService).ServeHTTP)
			r.Get("/", list.New(logger, subscriptionService).ServeHTTP)
			r.Get("/{id}", read.New(logger, subscriptionService).ServeHTTP)
			r.Put("/{id}", update.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/{id}", remove.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
