// Package me реализует HTTP-обработчик получения текущего пользователя.
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/middlewarectx"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс получения данных пользователя.
type Service interface {
	Me(ctx context.Context, userID int) (*models.UserOut, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		log.Error("failed to get current user", sl.Err(err))
		if errors.Is(err, models.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get current user"))
		return
	}

	render.JSON(w, r, response.OKWithData(user))
}
