// Package resetpassword реализует HTTP-обработчик запуска сброса пароля.
//
// Email приходит query-параметром. Отправка письма выполняется отдельным
// воркером через очередь, запрос не ждет доставки.
package resetpassword

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы сброса пароля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сброса пароля.
type Service interface {
	ResetPassword(ctx context.Context, email string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := r.URL.Query().Get("email")
	if email == "" {
		log.Error("email is empty")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("email is required"))
		return
	}

	if err := h.service.ResetPassword(r.Context(), email); err != nil {
		log.Error("failed to reset password", sl.Err(err))
		if errors.Is(err, models.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to reset password"))
		return
	}

	log.Info("password reset initiated")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "password reset process initiated",
	}))
}
