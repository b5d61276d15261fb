// Package remove реализует HTTP-обработчик отмены подписки.
//
// Отмена логическая: запись остается в хранилище с is_active = false.
// Чужая подписка неотличима от отсутствующей.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/middlewarectx"
	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы отмены подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	Deactivate(ctx context.Context, id, callerUserID int) (*models.Subscription, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отмена подписки
// @Description Логически удаляет подписку текущего пользователя: is_active = false.
// @Tags Subscriptions
// @Security BearerAuth
// @Produce  json
// @Param id path int true "ID подписки"
// @Success 200 {object} models.Subscription "Отмененная подписка"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Router /subscriptions/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid subscription id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid subscription id"))
		return
	}

	sub, err := h.service.Deactivate(r.Context(), id, userID)
	if err != nil {
		log.Error("failed to deactivate subscription", sl.Err(err))
		if errors.Is(err, models.ErrSubscriptionNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to deactivate subscription"))
		return
	}

	log.Info("success to deactivate subscription", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(sub))
}
