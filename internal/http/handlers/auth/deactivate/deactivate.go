// Package deactivate реализует HTTP-обработчик мягкого удаления пользователя.
// Запись сохраняется, is_active переводится в false.
package deactivate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы деактивации пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики деактивации.
type Service interface {
	Deactivate(ctx context.Context, username string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.deactivate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	if username == "" {
		log.Error("username is empty")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("username is required"))
		return
	}

	if err := h.service.Deactivate(r.Context(), username); err != nil {
		log.Error("failed to deactivate user", sl.Err(err))
		if errors.Is(err, models.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to deactivate user"))
		return
	}

	log.Info("success to deactivate user", slog.String("username", username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "user deactivated successfully",
	}))
}
