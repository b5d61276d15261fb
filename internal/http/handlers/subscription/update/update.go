// Package update реализует HTTP-обработчик изменения подписки.
// Цена пересчитывается из актуальных данных каталога.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/response"
	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// Handler обрабатывает HTTP-запросы обновления подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	Update(ctx context.Context, id int, req models.DummySubscription) (*models.Subscription, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление подписки
// @Description Меняет журнал, план и дату продления подписки. Цена пересчитывается.
// @Tags Subscriptions
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "ID подписки"
// @Param request body models.DummySubscription true "Новые данные подписки"
// @Success 200 {object} models.Subscription "Обновленная подписка"
// @Failure 404 {object} response.ErrorResponse "Подписка, журнал или план не найдены"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или некорректная цена"
// @Router /subscriptions/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid subscription id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid subscription id"))
		return
	}

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	sub, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update subscription", sl.Err(err))
		switch {
		case errors.Is(err, models.ErrSubscriptionNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
		case errors.Is(err, models.ErrMagazineNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("magazine not found"))
		case errors.Is(err, models.ErrPlanNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))
		case errors.Is(err, models.ErrInvalidPrice):
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("calculated price must be positive"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update subscription"))
		}
		return
	}

	log.Info("success to update subscription", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(sub))
}
