// Package planremove реализует HTTP-обработчик удаления тарифного плана.
// План с активными подписками удалить нельзя.
package planremove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы удаления тарифного плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики тарифных планов.
type Service interface {
	RemovePlan(ctx context.Context, id int) error
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление тарифного плана
// @Description Удаляет тарифный план. Запрещено при наличии активных подписок.
// @Tags Plans
// @Produce  json
// @Param id path int true "ID плана"
// @Success 200 {object} response.Response "План удален"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 409 {object} response.ErrorResponse "На план есть активные подписки"
// @Router /plans/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid plan id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid plan id"))
		return
	}

	if err := h.service.RemovePlan(r.Context(), id); err != nil {
		log.Error("failed to remove plan", sl.Err(err))
		switch {
		case errors.Is(err, models.ErrPlanNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))
		case errors.Is(err, models.ErrCatalogInUse):
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("plan has active subscriptions"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to remove plan"))
		}
		return
	}

	log.Info("success to remove plan", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "plan removed successfully",
	}))
}
