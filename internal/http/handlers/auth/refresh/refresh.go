// Package refresh реализует HTTP-обработчик обновления пары токенов.
//
// Refresh-токен приходит в заголовке Authorization. Сервис повторно
// проверяет, что пользователь существует и активен, и выдает свежую пару.
package refresh

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы обновления токенов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления токенов.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Error("missing or invalid authorization header")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}
	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	tokens, err := h.service.Refresh(r.Context(), refreshToken)
	if err != nil {
		log.Error("failed to refresh tokens", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid or expired token"))
		return
	}

	log.Info("success to refresh tokens")
	render.JSON(w, r, response.OKWithData(tokens))
}
